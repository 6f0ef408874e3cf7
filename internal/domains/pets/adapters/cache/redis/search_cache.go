// Package redis caches search pages in Redis. Keys embed a generation number;
// bumping it on every listing write makes all earlier pages unreachable.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

const (
	keyPrefix     = "pets:search"
	generationKey = keyPrefix + ":generation"
	DefaultTTL    = 30 * time.Second
)

var (
	_ ports.SearchCache    = (*SearchCache)(nil)
	_ ports.EventPublisher = (*SearchCache)(nil)
)

// SearchCache implements ports.SearchCache and invalidates itself on listing events.
type SearchCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewSearchCache wraps a Redis client. A non-positive ttl falls back to DefaultTTL.
func NewSearchCache(client goredis.Cmdable, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchCache{client: client, ttl: ttl}
}

// Key pins the criteria to the generation current at call time.
func (c *SearchCache) Key(ctx context.Context, criteria pettypes.SearchCriteria) (string, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return "", fmt.Errorf("read search generation: %w", err)
	}
	digest, err := criteriaDigest(criteria)
	if err != nil {
		return "", err
	}
	return keyPrefix + ":" + strconv.FormatInt(generation, 10) + ":" + digest, nil
}

// Get loads the page stored under key.
func (c *SearchCache) Get(ctx context.Context, key string) (*pettypes.SearchPage, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read search page: %w", err)
	}
	var page pettypes.SearchPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, fmt.Errorf("decode search page: %w", err)
	}
	if page.Items == nil {
		page.Items = []*domain.Pet{}
	}
	return &page, true, nil
}

// Set stores the page under key for the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, page *pettypes.SearchPage) error {
	if page == nil {
		return nil
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode search page: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write search page: %w", err)
	}
	return nil
}

// Publish bumps the generation once per batch of listing events.
func (c *SearchCache) Publish(ctx context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump search generation: %w", err)
	}
	return nil
}

func criteriaDigest(criteria pettypes.SearchCriteria) (string, error) {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("encode search criteria: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
