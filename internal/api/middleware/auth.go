package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/calebmcg/deadeye/internal/api/apierr"
	"github.com/calebmcg/deadeye/internal/services/auth"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Auth creates authentication middleware. It validates the bearer token and
// attaches the caller identity to the request context. Ownership of
// individual sessions is enforced again inside the session service.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			caller, err := authService.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetCaller returns the authenticated caller from the request context
func GetCaller(ctx context.Context) *auth.Caller {
	caller, _ := ctx.Value(callerContextKey).(*auth.Caller)
	return caller
}

// MustGetCaller returns the authenticated caller or panics
func MustGetCaller(ctx context.Context) *auth.Caller {
	caller := GetCaller(ctx)
	if caller == nil {
		panic("no caller in context - auth middleware not applied?")
	}
	return caller
}
