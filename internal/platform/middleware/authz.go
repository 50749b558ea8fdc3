// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/respond"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
)

// TokenVerifier checks a raw bearer token. [*sec.TokenVerifier] satisfies it.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

/*
Authenticate resolves the caller from an optional bearer token.

Reading galleries and rendering ComicInfo are public, so a request without an
Authorization header passes through anonymously. A header that is present but
malformed or carries a token that fails verification is rejected with 401
rather than silently downgraded to anonymous.

On success the claims and a logger tagged with user_id are placed in the
request context.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Debug("token_rejected", slog.Any("error", err))
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Bearer <token>", scheme case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}

// RequireRole admits callers whose role ranks at least role. It must run after
// [Authenticate]: anonymous callers get 401, under-privileged ones 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}
