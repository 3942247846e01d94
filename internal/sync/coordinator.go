// Package sync keeps the derived collections consistent with the quote
// collection. Every quote change triggers a recomputation: customers are
// rebuilt wholesale, projects are seeded once when empty.
package sync

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/abtweb/studio-api/internal/aggregate"
	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/repository"
	"go.uber.org/zap"
)

// Coordinator listens for quote changes and rewrites the derived customer
// and project collections. In-process writes arrive over the store's change
// bus; a revision poll catches writes made by other processes sharing the
// store. Only the quote key is watched, so the coordinator's own derived
// writes never re-trigger it.
type Coordinator struct {
	store     *recordstore.Store
	quotes    *repository.QuoteRepository
	customers *repository.CustomerRepository
	projects  *repository.ProjectRepository
	interval  time.Duration
	logger    *zap.Logger

	now func() time.Time
	rng *rand.Rand

	mu           sync.Mutex
	lastRevision int64
	cancel       context.CancelFunc
	done         chan struct{}
}

func NewCoordinator(
	store *recordstore.Store,
	quotes *repository.QuoteRepository,
	customers *repository.CustomerRepository,
	projects *repository.ProjectRepository,
	cfg *config.SyncConfig,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		store:     store,
		quotes:    quotes,
		customers: customers,
		projects:  projects,
		interval:  cfg.PollIntervalDuration(),
		logger:    logger,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start runs an initial refresh, then watches for quote changes until Stop
// is called or ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	if err := c.Refresh(ctx); err != nil {
		c.logger.Error("Initial aggregation refresh failed", zap.Error(err))
	}

	go c.watch(ctx)
	c.logger.Info("Sync coordinator started",
		zap.Duration("poll_interval", c.interval))
}

// Stop halts the watcher and waits for it to exit.
func (c *Coordinator) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.logger.Info("Sync coordinator stopped")
}

func (c *Coordinator) watch(ctx context.Context) {
	defer close(c.done)

	changes, cancel := c.store.Bus().Subscribe(recordstore.KeyQuotes)
	defer cancel()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Error("Aggregation refresh failed", zap.Error(err))
			}
		case <-ticker.C:
			changed, err := c.revisionChanged(ctx)
			if err != nil {
				c.logger.Warn("Failed to poll quote revision", zap.Error(err))
				continue
			}
			if changed {
				if err := c.Refresh(ctx); err != nil {
					c.logger.Error("Aggregation refresh failed", zap.Error(err))
				}
			}
		}
	}
}

// Refresh recomputes and persists the derived collections from the current
// quote set. Safe to call concurrently; passes serialize on the mutex so
// derived writes never interleave.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	quotes, err := c.quotes.List(ctx)
	if err != nil {
		return err
	}

	result := aggregate.Recompute(quotes, c.projects.List(ctx), c.now(), c.rng)

	if err := c.customers.Replace(ctx, result.Customers); err != nil {
		return err
	}
	if err := c.projects.Replace(ctx, result.Projects); err != nil {
		return err
	}

	revision, err := c.store.Revision(ctx, recordstore.KeyQuotes)
	if err == nil {
		c.lastRevision = revision
	}

	c.logger.Debug("Derived collections refreshed",
		zap.Int("quotes", len(quotes)),
		zap.Int("customers", len(result.Customers)),
		zap.Int("projects", len(result.Projects)),
	)
	return nil
}

func (c *Coordinator) revisionChanged(ctx context.Context) (bool, error) {
	revision, err := c.store.Revision(ctx, recordstore.KeyQuotes)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return revision != c.lastRevision, nil
}
