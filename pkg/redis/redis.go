package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// RevocationStore remembers logged-out admin token IDs until they would
// have expired anyway.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(c *redis.Client) *RevocationStore {
	return &RevocationStore{client: c}
}

func revocationKey(tokenID string) string {
	return fmt.Sprintf("admin:revoked:%s", tokenID)
}

// Revoke marks tokenID revoked for ttl.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revocationKey(tokenID), "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to revoke admin token", err)
		return err
	}

	logger.Debug("Admin token revoked", map[string]interface{}{
		"ttl": ttl.String(),
	})
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	val, err := s.client.Get(ctx, revocationKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check admin token revocation", err)
		return false, err
	}
	return val == "revoked", nil
}
