package middleware

import (
	"context"
	"net/http"
	"strings"

	"team-attendance/backend/app/apperr"
	jwtutil "team-attendance/backend/app/jwt"
	"team-attendance/backend/app/models"
)

type ctxKey int

const ClaimsKey ctxKey = 1

type Auth struct{ Signer *jwtutil.Signer }

// RequireAuth rejects requests without a bearer token (401) or with a token
// that fails verification or has expired (403), and attaches the decoded
// claims to the request context otherwise.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.claims(r)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole layers a role check on top of RequireAuth.
func (a *Auth) RequireRole(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.claims(r)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}
		if claims.Role != role {
			apperr.Write(w, r, apperr.Forbidden())
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) claims(r *http.Request) (*jwtutil.Claims, error) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, apperr.NoCredential()
	}
	token := strings.TrimPrefix(authz, "Bearer ")
	claims, err := a.Signer.Parse(token)
	if err != nil {
		return nil, apperr.InvalidCredential()
	}
	return claims, nil
}
