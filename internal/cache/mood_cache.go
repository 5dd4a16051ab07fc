package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mindscreen/internal/model"
)

// MoodCache stores sentiment classifications keyed by the analysed text
type MoodCache interface {
	// Get returns the cached result; ok is false on a miss.
	Get(ctx context.Context, text string) (result *model.MoodResult, ok bool, err error)
	Set(ctx context.Context, text string, result *model.MoodResult) error
}

type moodCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoodCache creates a Redis-backed mood cache
func NewMoodCache(client *redis.Client, ttl time.Duration) MoodCache {
	return &moodCache{
		client: client,
		ttl:    ttl,
	}
}

// MoodKey hashes the text so raw user input never appears in Redis keys
func MoodKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "mood:" + hex.EncodeToString(sum[:])
}

func (c *moodCache) Get(ctx context.Context, text string) (*model.MoodResult, bool, error) {
	data, err := c.client.Get(ctx, MoodKey(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result model.MoodResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

func (c *moodCache) Set(ctx context.Context, text string, result *model.MoodResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, MoodKey(text), data, c.ttl).Err()
}
