package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/caretrack/patientflow/backend/pkg/config"
	apperrors "github.com/caretrack/patientflow/backend/pkg/errors"
	"github.com/caretrack/patientflow/backend/pkg/retry"
)

// Client represents a Redis client
type Client struct {
	client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection; Redis is optional, so fail fast with a
	// shorter retry budget than the database.
	retryConfig := retry.DefaultConfig()
	retryConfig.MaxAttempts = 3
	retryConfig.MaxTotalTimeout = 5 * retryConfig.MaxDelay

	err := retry.Do(context.Background(), retryConfig, func() error {
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		return nil, apperrors.NewExternalError("failed to connect to Redis", err)
	}

	return &Client{client: client}, nil
}

// Client returns the underlying Redis client
func (c *Client) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Ping verifies the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
