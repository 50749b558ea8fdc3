// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, issuer, role string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "importer-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		UserID: "importer-1",
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func signHMAC(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "yomira.app",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	require.NoError(t, err)
	return signed
}

/*
TestVerifyToken_Valid accepts a fresh token from the expected issuer.
*/
func TestVerifyToken_Valid(t *testing.T) {
	key := newKey(t)
	verifier := sec.NewTokenVerifier(&key.PublicKey, "yomira.app")

	claims, err := verifier.VerifyToken(sign(t, key, "yomira.app", "admin", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "importer-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

/*
TestVerifyToken_Rejections covers expiry, issuer, foreign keys and non-RSA algorithms.
*/
func TestVerifyToken_Rejections(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	verifier := sec.NewTokenVerifier(&key.PublicKey, "yomira.app")

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, key, "yomira.app", "admin", -time.Minute)},
		{"wrong_issuer", sign(t, key, "elsewhere", "admin", time.Hour)},
		{"foreign_key", sign(t, other, "yomira.app", "admin", time.Hour)},
		{"hmac_signed", signHMAC(t)},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestLoadTokenVerifier reads a PEM public key from disk.
*/
func TestLoadTokenVerifier(t *testing.T) {
	key := newKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	verifier, err := sec.LoadTokenVerifier(path, "yomira.app")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(sign(t, key, "yomira.app", "admin", time.Hour))
	assert.NoError(t, err)

	_, err = sec.LoadTokenVerifier(filepath.Join(t.TempDir(), "missing.pub"), "yomira.app")
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.False(t, sec.RoleModerator.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleMember))
	assert.False(t, sec.UserRole("owner").AtLeast(sec.RoleMember))
}
