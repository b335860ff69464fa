package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

type contextKey string

const principalContextKey contextKey = "principal"

// PrincipalFromContext extracts the verified principal from the request
// context. Returns the zero principal and false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(domain.Principal)
	return p, ok
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the Authorization bearer token, verifies it, and injects the
// resulting principal into the request context. Returns 401 for
// unauthenticated requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := authenticateRequest(r, auth)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not
// block anonymous requests. If a valid token is present, the principal is
// injected into context; otherwise the request proceeds without one.
func OptionalAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, err := authenticateRequest(r, auth); err == nil {
			ctx := context.WithValue(r.Context(), principalContextKey, principal)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func authenticateRequest(r *http.Request, auth *service.AuthService) (domain.Principal, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return auth.VerifyToken(token)
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
