package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	users map[int]*models.User
}

func (s *stubResolver) FindOne(id int) (*models.User, error) {
	return s.users[id], nil
}

func newResolver() *stubResolver {
	return &stubResolver{users: map[int]*models.User{
		1: {ID: 1, Name: "Admin Account", Role: models.RoleAdmin},
		2: {ID: 2, Name: "User Account", Role: models.RoleUser},
	}}
}

func callWithHeader(t *testing.T, middleware func(http.Handler) http.Handler, userID string) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	var resolved *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = auth.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userID != "" {
		req.Header.Set("user-id", userID)
	}
	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, req)
	return rec, resolved
}

func TestMiddlewareMissingHeader(t *testing.T) {
	rec, _ := callWithHeader(t, auth.Middleware(newResolver(), nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	rec, _ := callWithHeader(t, auth.Middleware(newResolver(), nil), "not-a-number")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareUnknownUser(t *testing.T) {
	rec, _ := callWithHeader(t, auth.Middleware(newResolver(), nil), "99")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareResolvesCallerIntoContext(t *testing.T) {
	rec, resolved := callWithHeader(t, auth.Middleware(newResolver(), nil), "2")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resolved)
	assert.Equal(t, 2, resolved.ID)
	assert.Equal(t, models.RoleUser, resolved.Role)
}

func TestAdminOnlyRejectsRegularUser(t *testing.T) {
	rec, _ := callWithHeader(t, auth.AdminOnly(newResolver(), nil), "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyAcceptsAdmin(t *testing.T) {
	rec, resolved := callWithHeader(t, auth.AdminOnly(newResolver(), nil), "1")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resolved)
	assert.Equal(t, models.RoleAdmin, resolved.Role)
}

func TestAdminOnlyMissingHeader(t *testing.T) {
	rec, _ := callWithHeader(t, auth.AdminOnly(newResolver(), nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
