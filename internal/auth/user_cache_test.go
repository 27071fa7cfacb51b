package auth_test

import (
	"context"
	"os"
	"testing"
	"time"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNilUserCacheBehavesAsMiss(t *testing.T) {
	var cache *auth.UserCache

	assert.Nil(t, cache.Get(context.Background(), 1))
	// Set on a nil cache must be a no-op, not a panic.
	cache.Set(context.Background(), &models.User{ID: 1})
}

// TestUserCacheIntegration exercises the cache against a real Redis
// container. Requires Docker; enable with REDIS_INTEGRATION=1.
func TestUserCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}
	if os.Getenv("REDIS_INTEGRATION") == "" {
		t.Skip("Set REDIS_INTEGRATION=1 to run the Redis integration test")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	endpoint, err := redisC.Endpoint(ctx, "")
	require.NoError(t, err)

	cache, err := auth.NewUserCache(endpoint, time.Minute, logger.NewNop())
	require.NoError(t, err)

	// Miss before set.
	assert.Nil(t, cache.Get(ctx, 1))

	user := &models.User{ID: 1, Name: "Admin Account", Role: models.RoleAdmin}
	cache.Set(ctx, user)

	cached := cache.Get(ctx, 1)
	require.NotNil(t, cached)
	assert.Equal(t, user.Name, cached.Name)
	assert.Equal(t, user.Role, cached.Role)
}
