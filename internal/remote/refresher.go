package remote

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/upcycle/internal/logger"
)

// DefaultPollInterval is how often the Refresher reloads
const DefaultPollInterval = 30 * time.Second

// LoadFunc reloads one mirrored collection
type LoadFunc func(ctx context.Context) error

// Refresher periodically reloads collections other sessions may change,
// such as the shared community feed.
type Refresher struct {
	loads        []LoadFunc
	pollInterval time.Duration
	log          *logger.Logger

	mu        sync.Mutex
	onRefresh func()
	stopCh    chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

// NewRefresher starts polling the given loads every interval
func NewRefresher(interval time.Duration, log *logger.Logger, loads ...LoadFunc) *Refresher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Default()
	}
	r := &Refresher{
		loads:        loads,
		pollInterval: interval,
		log:          log,
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}

	go r.pollLoop()

	return r
}

// SetOnRefresh sets a callback run after each round with at least one
// successful load
func (r *Refresher) SetOnRefresh(callback func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRefresh = callback
}

func (r *Refresher) pollLoop() {
	defer close(r.done)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RefreshNow(context.Background())
		case <-r.stopCh:
			return
		}
	}
}

// RefreshNow runs every load once and reports how many succeeded
func (r *Refresher) RefreshNow(ctx context.Context) int {
	ok := 0
	for _, load := range r.loads {
		if err := load(ctx); err != nil {
			r.log.Debug("Refresh failed", logger.Err(err))
			continue
		}
		ok++
	}

	if ok > 0 {
		r.mu.Lock()
		callback := r.onRefresh
		r.mu.Unlock()

		if callback != nil {
			callback()
		}
	}
	return ok
}

// Stop stops polling and waits for the loop to exit
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	<-r.done
}
