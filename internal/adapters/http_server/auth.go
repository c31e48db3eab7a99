package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

type authClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Auth verifies the caller's token and stashes the user id in the
// request context. Tokens arrive either in the auth_token cookie (the
// web client) or as a Bearer header.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing token")
				return
			}

			claims := &authClaims{}
			parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !parsed.Valid || claims.UserID == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie("auth_token"); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
