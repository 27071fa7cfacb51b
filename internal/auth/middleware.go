package auth

import (
	"context"
	"net/http"
	"strconv"

	"concert-ticketing/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver looks up a user by id; nil when absent.
type UserResolver interface {
	FindOne(id int) (*models.User, error)
}

// Middleware resolves the caller from the user-id header. The raw id
// stands in for identity; in a real deployment this would come from a
// JWT or session. Resolved users go through the cache when one is
// configured.
func Middleware(users UserResolver, cache *UserCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, status, msg := resolve(r, users, cache)
			if user == nil {
				http.Error(w, msg, status)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly resolves the caller like Middleware and additionally
// requires the admin role.
func AdminOnly(users UserResolver, cache *UserCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, status, msg := resolve(r, users, cache)
			if user == nil {
				http.Error(w, msg, status)
				return
			}
			if user.Role != models.RoleAdmin {
				http.Error(w, "Admin role required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(r *http.Request, users UserResolver, cache *UserCache) (*models.User, int, string) {
	rawID := r.Header.Get("user-id")
	if rawID == "" {
		return nil, http.StatusUnauthorized, "Authentication required: user-id header missing"
	}

	userID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid user-id format"
	}

	if user := cache.Get(r.Context(), userID); user != nil {
		return user, 0, ""
	}

	user, err := users.FindOne(userID)
	if err != nil {
		return nil, http.StatusInternalServerError, "Failed to resolve user"
	}
	if user == nil {
		return nil, http.StatusUnauthorized, "User not found"
	}

	cache.Set(r.Context(), user)
	return user, 0, ""
}

// WithUser returns a context carrying the resolved caller, the same
// way the middleware stores it.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the resolved caller stored by the middleware, or
// nil when the request never passed through it.
func UserFrom(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}
