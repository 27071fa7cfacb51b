package users_test

import (
	"testing"

	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
	"concert-ticketing/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, seeded []models.User) *users.Service {
	t.Helper()
	st := store.NewMemStore()
	require.NoError(t, st.Write(store.Users, seeded))
	return users.NewService(st)
}

var testUsers = []models.User{
	{ID: 1, Name: "Admin Account", Role: models.RoleAdmin},
	{ID: 2, Name: "User Account", Role: models.RoleUser},
	{ID: 3, Name: "Second User", Role: models.RoleUser},
}

func TestFindAll(t *testing.T) {
	svc := newTestService(t, testUsers)

	all, err := svc.FindAll()
	require.NoError(t, err)
	assert.Equal(t, testUsers, all)
}

func TestFindOne(t *testing.T) {
	svc := newTestService(t, testUsers)

	user, err := svc.FindOne(2)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "User Account", user.Name)

	missing, err := svc.FindOne(99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetUsersByRolePreservesOrder(t *testing.T) {
	svc := newTestService(t, testUsers)

	regulars, err := svc.GetUsersByRole(models.RoleUser)
	require.NoError(t, err)
	require.Len(t, regulars, 2)
	assert.Equal(t, 2, regulars[0].ID)
	assert.Equal(t, 3, regulars[1].ID)
}

func TestGetUserAndGetAdmin(t *testing.T) {
	svc := newTestService(t, testUsers)

	user, err := svc.GetUser()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 2, user.ID)

	admin, err := svc.GetAdmin()
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, 1, admin.ID)
}

func TestGetAdminWithNoAdminsReturnsNil(t *testing.T) {
	svc := newTestService(t, []models.User{{ID: 1, Name: "Only User", Role: models.RoleUser}})

	admin, err := svc.GetAdmin()
	require.NoError(t, err)
	assert.Nil(t, admin)
}
