// internal/common/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"
)

// RoleAdmin is the only role granting access to the submissions view.
const RoleAdmin = "ADMIN"

// Principal is the caller identity attached to a request by the upstream
// auth layer. The gateway performs no token validation itself; it trusts the
// identity headers the auth proxy injects after verifying the session.
type Principal struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the principal carries the administrative role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type contextKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal attached to ctx, or nil when the
// request was unauthenticated.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKey{}).(*Principal)
	return p
}

// Headers the upstream auth proxy sets on verified requests.
const (
	headerUserID = "X-Auth-User"
	headerRole   = "X-Auth-Role"
)

// Middleware lifts the upstream identity headers into a Principal on the
// request context. Requests without them pass through unauthenticated;
// handlers that need a role reject those themselves.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := strings.TrimSpace(r.Header.Get(headerRole))
		user := strings.TrimSpace(r.Header.Get(headerUserID))
		if role != "" || user != "" {
			r = r.WithContext(WithPrincipal(r.Context(), &Principal{
				UserID: user,
				Role:   strings.ToUpper(role),
			}))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthenticated rejects requests with no principal at all. Used by
// the tool-proxy surface, which has no role requirement beyond "logged in".
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
