package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"playvault/internal/domain"
)

type callerKey struct{}

// Middleware resolves the caller identity established by the session layer in
// front of this service. We trust the headers it sets; issuing and validating
// sessions is not this service's job.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-Id")
		role := domain.Role(r.Header.Get("X-User-Role"))

		if id == "" {
			writeUnauthenticated(w, "missing caller identity")
			return
		}
		if role != domain.RoleCustomer && role != domain.RoleOperator {
			writeUnauthenticated(w, "unknown caller role")
			return
		}

		caller := domain.Caller{ID: id, Role: role}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
