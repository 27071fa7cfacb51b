package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"

	"github.com/go-redis/redis/v8"
)

const userCacheKeyPrefix = "user_cache:"

// UserCache keeps resolved users in Redis for the configured TTL so
// the middleware doesn't hit the store on every request. A nil
// *UserCache (Redis disabled) is valid and behaves as a miss.
type UserCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

// NewUserCache connects to Redis and verifies the connection.
func NewUserCache(addr string, ttl time.Duration, log *logger.Logger) (*UserCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}

	if log != nil {
		log.Info("AUTH", fmt.Sprintf("Connected to Redis at %s for user caching", addr))
	}
	return &UserCache{Client: client, TTL: ttl, Logger: log}, nil
}

// Get returns the cached user or nil on any miss or cache error.
func (c *UserCache) Get(ctx context.Context, userID int) *models.User {
	if c == nil || c.Client == nil {
		return nil
	}

	raw, err := c.Client.Get(ctx, cacheKey(userID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("AUTH", fmt.Sprintf("user cache read failed for %d: %v", userID, err))
		}
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// Set stores the user; cache errors are logged, never surfaced.
func (c *UserCache) Set(ctx context.Context, user *models.User) {
	if c == nil || c.Client == nil || user == nil {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, cacheKey(user.ID), raw, c.TTL).Err(); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("AUTH", fmt.Sprintf("user cache write failed for %d: %v", user.ID, err))
		}
	}
}

func cacheKey(userID int) string {
	return fmt.Sprintf("%s%d", userCacheKeyPrefix, userID)
}
