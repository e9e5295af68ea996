package jsonlogic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	deepcopy "github.com/barkimedes/go-deepcopy"
)

// RuleSetKey names a cached rule set: "<endpoint>||<name>".
type RuleSetKey string

func makeRuleSetKey(endpoint, name string) RuleSetKey {
	return RuleSetKey(endpoint + "||" + name)
}

// RuleSet is a single named JsonLogic rule document as fetched from a
// RuleSetRepository, along with the metadata needed to decide whether
// a cached copy is still usable.
type RuleSet struct {
	Name      string
	Rule      JsValue
	Version   string
	FetchedAt time.Time
}

// Clone deep-copies a RuleSet so a cached entry handed to one caller
// can't be mutated by another. Grounded on the teacher's use of
// barkimedes/go-deepcopy for exactly this purpose (avoiding aliasing
// bugs when the same cache entry backs several subscribers).
func (rs *RuleSet) Clone() *RuleSet {
	if rs == nil {
		return nil
	}
	ruleCopy, err := deepcopy.Anything(rs.Rule)
	if err != nil {
		ruleCopy = rs.Rule
	}
	clone := *rs
	clone.Rule = ruleCopy.(JsValue)
	return &clone
}

// RuleSetCache is the pluggable caching backend for RuleSetRepository.
// The default is an in-memory map; RedisRuleSetCache (cache_redis.go)
// is the distributed alternative.
type RuleSetCache interface {
	Initialize()
	Clear()
	Get(key RuleSetKey) *RuleSetCacheEntry
	Set(key RuleSetKey, entry *RuleSetCacheEntry)
}

// RuleSetCacheEntry is what RuleSetCache stores: the rule set itself
// plus the time at which it should be considered stale and eligible
// for a background refresh.
type RuleSetCacheEntry struct {
	RuleSet *RuleSet  `json:"rule_set"`
	StaleAt time.Time `json:"stale_at"`
}

// memoryRuleSetCache is the default in-memory RuleSetCache.
type memoryRuleSetCache struct {
	mu   sync.RWMutex
	data map[RuleSetKey]*RuleSetCacheEntry
}

func newMemoryRuleSetCache() *memoryRuleSetCache {
	return &memoryRuleSetCache{data: map[RuleSetKey]*RuleSetCacheEntry{}}
}

func (c *memoryRuleSetCache) Initialize() {}

func (c *memoryRuleSetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[RuleSetKey]*RuleSetCacheEntry{}
}

func (c *memoryRuleSetCache) Get(key RuleSetKey) *RuleSetCacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *memoryRuleSetCache) Set(key RuleSetKey, entry *RuleSetCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry
}

// RuleSetRepository fetches named JsonLogic rule documents from a
// remote HTTP endpoint, with caching, single-flight request dedup, and
// an optional background refresh (driven by PollDatasource or
// SSEDatasource). None of this is needed to call Apply directly; it
// exists for hosts that want their rule documents to live centrally
// and update without a redeploy, grounded on the teacher's
// repository.go feature-fetching machinery.
type RuleSetRepository struct {
	Endpoint   string
	HTTPClient *http.Client
	StaleTTL   time.Duration

	cache RuleSetCache

	mu                 sync.Mutex
	outstanding        map[RuleSetKey][]chan *RuleSet
	subscribers        map[RuleSetKey][]chan *RuleSet
	backgroundSyncDone map[RuleSetKey]chan struct{}
}

// NewRuleSetRepository builds a RuleSetRepository backed by an
// in-memory cache with a 60-second stale TTL; use ConfigureCache to
// install a different backend (e.g. RedisRuleSetCache) and
// ConfigureStaleTTL to change the TTL.
func NewRuleSetRepository(endpoint string) *RuleSetRepository {
	return &RuleSetRepository{
		Endpoint:           endpoint,
		HTTPClient:         http.DefaultClient,
		StaleTTL:           60 * time.Second,
		cache:              newMemoryRuleSetCache(),
		outstanding:        map[RuleSetKey][]chan *RuleSet{},
		subscribers:        map[RuleSetKey][]chan *RuleSet{},
		backgroundSyncDone: map[RuleSetKey]chan struct{}{},
	}
}

// ConfigureCache installs a caching backend. Passing nil resets to the
// default in-memory cache.
func (r *RuleSetRepository) ConfigureCache(c RuleSetCache) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c == nil {
		c = newMemoryRuleSetCache()
	}
	r.cache = c
	r.cache.Initialize()
}

// ConfigureStaleTTL sets how long a cached rule set is served without
// triggering a background refresh.
func (r *RuleSetRepository) ConfigureStaleTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StaleTTL = ttl
}

// Fetch returns the named rule set, preferring a fresh cache entry,
// falling back to a stale one while refreshing in the background, and
// otherwise performing a single-flight HTTP request shared by any
// concurrent callers asking for the same name.
func (r *RuleSetRepository) Fetch(ctx context.Context, name string) (*RuleSet, error) {
	key := makeRuleSetKey(r.Endpoint, name)
	r.cache.Initialize()

	now := time.Now()
	if existing := r.cache.Get(key); existing != nil {
		if existing.StaleAt.After(now) {
			return existing.RuleSet.Clone(), nil
		}
		r.triggerBackgroundRefresh(ctx, key, name)
		return existing.RuleSet.Clone(), nil
	}

	rs, err := r.singleFlightFetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return rs.Clone(), nil
}

// triggerBackgroundRefresh starts at most one background doFetch per
// key at a time. Grounded on the teacher's refreshData.runBackgroundRefresh,
// which refuses to start a second SSE refresh goroutine for a
// repository key that already has one running (`r.shutdown[key] !=
// nil`); backgroundSyncDone plays the same role here for one-shot
// stale-refetch goroutines rather than long-lived SSE connections.
func (r *RuleSetRepository) triggerBackgroundRefresh(ctx context.Context, key RuleSetKey, name string) {
	r.mu.Lock()
	if _, running := r.backgroundSyncDone[key]; running {
		r.mu.Unlock()
		return
	}
	done := make(chan struct{})
	r.backgroundSyncDone[key] = done
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.backgroundSyncDone, key)
			r.mu.Unlock()
			close(done)
		}()
		if _, err := r.doFetch(ctx, name); err != nil {
			logError(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
		}
	}()
}

// singleFlightFetch ensures only one HTTP request is in flight at a
// time per rule-set key; concurrent callers for the same key share its
// result instead of hammering the endpoint.
func (r *RuleSetRepository) singleFlightFetch(ctx context.Context, name string) (*RuleSet, error) {
	key := makeRuleSetKey(r.Endpoint, name)

	r.mu.Lock()
	chans := r.outstanding[key]
	myChan := make(chan *RuleSet, 1)
	first := chans == nil
	r.outstanding[key] = append(r.outstanding[key], myChan)
	r.mu.Unlock()

	if !first {
		rs := <-myChan
		if rs == nil {
			return nil, &UnexpectedError{Message: "rule set fetch failed for " + name}
		}
		return rs, nil
	}

	rs, err := r.doFetch(ctx, name)

	r.mu.Lock()
	waiters := r.outstanding[key]
	delete(r.outstanding, key)
	r.mu.Unlock()

	for _, ch := range waiters {
		if ch != myChan {
			ch <- rs
		}
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// doFetch performs the HTTP request, updates the cache, and notifies
// any subscribers registered via Subscribe.
func (r *RuleSetRepository) doFetch(ctx context.Context, name string) (*RuleSet, error) {
	endpoint := r.Endpoint + "/rulesets/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("jsonlogic: building rule set request: %w", err)
	}
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		logError(LogRepositoryFetchError, LogData{"key": string(makeRuleSetKey(r.Endpoint, name)), "error": err.Error()})
		return nil, fmt.Errorf("jsonlogic: fetching rule set %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jsonlogic: fetching rule set %q: HTTP %d: %s", name, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jsonlogic: reading rule set %q response: %w", name, err)
	}

	var wire struct {
		Rule    json.RawMessage `json:"rule"`
		Version string          `json:"version"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("jsonlogic: parsing rule set %q response: %w", name, err)
	}
	rule, err := FromJSON(wire.Rule)
	if err != nil {
		return nil, fmt.Errorf("jsonlogic: parsing rule set %q document: %w", name, err)
	}

	rs := &RuleSet{Name: name, Rule: rule, Version: wire.Version, FetchedAt: time.Now()}
	r.store(name, rs)
	return rs, nil
}

// store installs a freshly-fetched rule set into the cache and pushes
// it to any subscribers.
func (r *RuleSetRepository) store(name string, rs *RuleSet) {
	key := makeRuleSetKey(r.Endpoint, name)
	r.mu.Lock()
	staleTTL := r.StaleTTL
	r.mu.Unlock()

	r.cache.Set(key, &RuleSetCacheEntry{RuleSet: rs, StaleAt: time.Now().Add(staleTTL)})
	logInfo(LogRepositoryNewRuleSet, LogData{"key": string(key), "version": rs.Version})

	r.mu.Lock()
	subs := append([]chan *RuleSet(nil), r.subscribers[key]...)
	r.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- rs.Clone():
		default:
		}
	}
}

// Subscribe registers a channel to receive every subsequent fetched
// RuleSet for name, used by PollDatasource and SSEDatasource to push
// updates without the caller polling Fetch itself.
func (r *RuleSetRepository) Subscribe(name string) <-chan *RuleSet {
	key := makeRuleSetKey(r.Endpoint, name)
	ch := make(chan *RuleSet, 1)
	r.mu.Lock()
	r.subscribers[key] = append(r.subscribers[key], ch)
	r.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel previously returned by Subscribe.
func (r *RuleSetRepository) Unsubscribe(name string, ch <-chan *RuleSet) {
	key := makeRuleSetKey(r.Endpoint, name)
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.subscribers[key]
	for i, c := range subs {
		if c == ch {
			r.subscribers[key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}
