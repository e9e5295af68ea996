package jsonlogic

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PollDatasource periodically calls RuleSetRepository.Fetch for one
// named rule set and notifies subscribers of changes via the
// repository's own Subscribe mechanism (doFetch pushes on every
// successful fetch, changed or not). Grounded on the teacher's
// datasource_poll.go, generalized from a *Client-bound feature poller
// to a repository-bound rule-set poller.
type PollDatasource struct {
	repo     *RuleSetRepository
	name     string
	interval time.Duration
	cancel   context.CancelFunc

	mu    sync.RWMutex
	ready bool
}

// NewPollDatasource builds a PollDatasource that refreshes name every
// interval.
func NewPollDatasource(repo *RuleSetRepository, name string, interval time.Duration) *PollDatasource {
	return &PollDatasource{repo: repo, name: name, interval: interval}
}

// Start performs an initial fetch, then begins polling in the
// background.
func (ds *PollDatasource) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	ds.cancel = cancel

	if _, err := ds.repo.Fetch(ctx, ds.name); err != nil {
		cancel()
		return err
	}

	ds.mu.Lock()
	ds.ready = true
	ds.mu.Unlock()
	go ds.poll(ctx)
	return nil
}

// Close stops the polling goroutine.
func (ds *PollDatasource) Close() error {
	ds.mu.RLock()
	ready := ds.ready
	ds.mu.RUnlock()
	if !ready {
		return fmt.Errorf("jsonlogic: poll datasource is not started")
	}
	ds.cancel()
	return nil
}

func (ds *PollDatasource) poll(ctx context.Context) {
	ticker := time.NewTicker(ds.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ds.mu.Lock()
			ds.ready = false
			ds.mu.Unlock()
			return
		case <-ticker.C:
			key := makeRuleSetKey(ds.repo.Endpoint, ds.name)
			if _, err := ds.repo.doFetch(ctx, ds.name); err != nil {
				logWarn(LogRepositoryFetchError, LogData{"key": string(key), "error": err.Error()})
			}
		}
	}
}
