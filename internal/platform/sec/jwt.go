// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec checks the admin tokens that guard gallery imports and cache drops.

galleryinfo never issues tokens. The main Yomira API signs RS256 access tokens;
this service holds only the public key and checks signature, issuer and expiry.
*/
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims mirrors the access-token payload of the main Yomira API.
// Custom claim names are abbreviated there to keep tokens small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenVerifier is safe for concurrent use.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

// NewTokenVerifier accepts RSA-signed tokens from issuer that carry an expiry.
func NewTokenVerifier(publicKey *rsa.PublicKey, issuer string) *TokenVerifier {
	return &TokenVerifier{
		publicKey: publicKey,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// LoadTokenVerifier reads a PEM RSA public key from path.
func LoadTokenVerifier(path, issuer string) (*TokenVerifier, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", path, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}
	return NewTokenVerifier(publicKey, issuer), nil
}

// VerifyToken returns the claims of a valid token. Failures wrap [ErrInvalidToken].
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := verifier.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return verifier.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
