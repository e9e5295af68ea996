package jsonlogic

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRuleSetCache is a RuleSetCache backed by Redis, for hosts
// running more than one process that want to share one fetched copy
// of each rule set rather than every process hitting the rule-set
// endpoint independently. Grounded on the teacher's
// demo/redis_cache_demo.go RedisFeatureCache, generalized from
// *FeatureAPIResponse to RuleSetCacheEntry.
type RedisRuleSetCache struct {
	client *redis.Client
	prefix string
}

// NewRedisRuleSetCache builds a RedisRuleSetCache. prefix namespaces
// keys within a shared Redis instance (e.g. "jsonlogic:rulesets:").
func NewRedisRuleSetCache(client *redis.Client, prefix string) *RedisRuleSetCache {
	return &RedisRuleSetCache{client: client, prefix: prefix}
}

func (c *RedisRuleSetCache) Initialize() {}

func (c *RedisRuleSetCache) Clear() {
	ctx := context.Background()
	keys, err := c.client.Keys(ctx, c.prefix+"*").Result()
	if err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": "redis-clear", "error": err.Error()})
		return
	}
	if len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

func (c *RedisRuleSetCache) Get(key RuleSetKey) *RuleSetCacheEntry {
	ctx := context.Background()
	raw, err := c.client.Get(ctx, c.prefix+string(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		}
		return nil
	}

	var wire redisCacheEntry
	if err := json.Unmarshal(raw, &wire); err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		return nil
	}
	rule, err := FromJSON(wire.Rule)
	if err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		return nil
	}
	return &RuleSetCacheEntry{
		RuleSet: &RuleSet{Name: wire.Name, Rule: rule, Version: wire.Version, FetchedAt: wire.FetchedAt},
		StaleAt: wire.StaleAt,
	}
}

func (c *RedisRuleSetCache) Set(key RuleSetKey, entry *RuleSetCacheEntry) {
	ruleJSON, err := ToJSON(entry.RuleSet.Rule)
	if err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		return
	}
	wire := redisCacheEntry{
		Name:      entry.RuleSet.Name,
		Rule:      ruleJSON,
		Version:   entry.RuleSet.Version,
		FetchedAt: entry.RuleSet.FetchedAt,
		StaleAt:   entry.StaleAt,
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		return
	}

	ctx := context.Background()
	ttl := entry.StaleAt.Sub(entry.RuleSet.FetchedAt)
	if err := c.client.Set(ctx, c.prefix+string(key), raw, ttl).Err(); err != nil {
		logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
	}
}

// redisCacheEntry is the JSON wire shape stored in Redis: RuleSet.Rule
// (a JsValue) is serialized through ToJSON/FromJSON rather than
// encoding/json directly, so key order survives the round trip.
type redisCacheEntry struct {
	Name      string          `json:"name"`
	Rule      json.RawMessage `json:"rule"`
	Version   string          `json:"version"`
	FetchedAt time.Time       `json:"fetched_at"`
	StaleAt   time.Time       `json:"stale_at"`
}
