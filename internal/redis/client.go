package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pos_system/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Client struct {
	rdb        *redis.Client
	sessionTTL time.Duration
}

// SessionData is the login state stored behind a cookie token.
type SessionData struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string, sessionTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, sessionTTL: sessionTTL}, nil
}

// Session management

// CreateSession stores the login state and returns the opaque cookie token.
func (c *Client) CreateSession(user *models.User) (string, error) {
	token := uuid.NewString()
	data := &SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session data: %w", err)
	}

	ctx := context.Background()
	if err := c.rdb.Set(ctx, "session:"+token, jsonData, c.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (c *Client) GetSession(token string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Catalog cache

const catalogKey = "catalog:active"

func (c *Client) GetCatalog() ([]models.InventoryItem, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, catalogKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("catalog not cached")
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	var items []models.InventoryItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return items, nil
}

func (c *Client) SetCatalog(items []models.InventoryItem) error {
	jsonData, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	ctx := context.Background()
	return c.rdb.Set(ctx, catalogKey, jsonData, 30*time.Minute).Err()
}

func (c *Client) InvalidateCatalog() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, catalogKey).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
