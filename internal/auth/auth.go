// Package auth is the identity/access boundary. Authentication itself lives
// upstream (session gateway, social login); by the time a request reaches
// this service the gateway has resolved it to a user id and a role, carried
// in trusted headers. The rest of the codebase only ever sees an Identity.
package auth

import (
	"context"
	"net/http"
)

const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"

	RoleAdmin = "admin"
)

type Identity struct {
	UserID string
	Admin  bool
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Middleware attaches the gateway-resolved identity to the request context.
// Requests without a user id pass through anonymous; route groups decide
// what they require.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(HeaderUserID); userID != "" {
			id := Identity{
				UserID: userID,
				Admin:  r.Header.Get(HeaderRole) == RoleAdmin,
			}
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			writeUnauthenticated(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok {
			writeUnauthenticated(w)
			return
		}
		if !id.Admin {
			writeDenied(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeDenied(w, http.StatusUnauthorized, "unauthenticated")
}

func writeDenied(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
