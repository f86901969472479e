package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/CandidateX/sentinel/pkg/common"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Cache wraps the Redis client with a process-local write-through layer and
// named TTL maps for hot lookups.
type Cache struct {
	client     *redis.Client
	localCache sync.Map
	ttlMaps    sync.Map
	ttl        time.Duration
}

const (
	SessionKeyPattern    = "session:%s"
	ReviewFlagKeyPattern = "violations:review:%s"

	SessionTTLName = "session"
)

func NewCache(config common.CacheConfig) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	client := redis.NewClient(options)

	return &Cache{
		client:     client,
		localCache: sync.Map{},
		ttlMaps:    sync.Map{},
		ttl:        5 * time.Minute,
	}, nil
}

// NewCacheWithClient wraps an already constructed Redis client.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{
		client:     client,
		localCache: sync.Map{},
		ttlMaps:    sync.Map{},
		ttl:        5 * time.Minute,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if value, ok := c.localCache.Load(key); ok {
		str, err := safeStringCast(value)
		if err != nil {
			return "", fmt.Errorf("cache value error: %w", err)
		}
		return str, nil
	}
	return c.client.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return err
	}
	c.localCache.Store(key, value)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	c.localCache.Delete(key)
	return nil
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

func (c *Cache) CreateTTLMap(name string, ttl time.Duration) *common.TTLMap {
	ttlMap := common.NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *Cache) GetTTLMap(name string) *common.TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		ttlMap, err := safeTTLMapCast(value)
		if err != nil {
			return nil
		}
		return ttlMap
	}
	return nil
}

func (c *Cache) SaveSession(ctx context.Context, session *interview.Session) error {
	sessionKey := fmt.Sprintf(SessionKeyPattern, session.ID)
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.Set(ctx, sessionKey, string(sessionJSON), common.SessionCacheTTL)
}

func (c *Cache) GetSession(ctx context.Context, sessionID uuid.UUID) (*interview.Session, error) {
	sessionKey := fmt.Sprintf(SessionKeyPattern, sessionID)
	res, err := c.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	entity := new(interview.Session)
	if err := json.Unmarshal([]byte(res), entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (c *Cache) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return c.Delete(ctx, fmt.Sprintf(SessionKeyPattern, sessionID))
}

func safeStringCast(value interface{}) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid type assertion to string")
	}
	return str, nil
}

func safeTTLMapCast(value interface{}) (*common.TTLMap, error) {
	ttlMap, ok := value.(*common.TTLMap)
	if !ok {
		return nil, fmt.Errorf("invalid type assertion to TTLMap")
	}
	return ttlMap, nil
}
