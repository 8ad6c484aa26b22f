package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtLib "github.com/golang-jwt/jwt/v5"

	"realgo/internal/shared/models"
	"realgo/internal/shared/util"
)

const (
	SubjectKey contextKey = "subject"
	RoleKey    contextKey = "role"
)

// Auth verifies the bearer token issued by the identity provider and puts
// the subject id and role into the request context. Capability checks
// (driver-only, ownership) belong to the services, not here.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				util.WriteErrorMessage(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				util.WriteErrorMessage(w, "invalid Authorization format", http.StatusUnauthorized)
				return
			}

			claims := &models.Claims{}
			token, err := jwtLib.ParseWithClaims(parts[1], claims, func(token *jwtLib.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				util.WriteErrorMessage(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.Subject == "" {
				util.WriteErrorMessage(w, "token missing sub claim", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated user id from the context.
func Subject(ctx context.Context) string {
	if id, ok := ctx.Value(SubjectKey).(string); ok {
		return id
	}
	return ""
}

// Role returns the authenticated role from the context.
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}
