package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

// DashboardSource computes a fresh dashboard snapshot.
type DashboardSource interface {
	Dashboard(ctx context.Context, period model.Period) (*model.Dashboard, error)
}

// DashboardRefresher recomputes dashboard snapshots in the background so
// reads can be served from memory. Snapshots older than twice the interval
// are treated as missing.
type DashboardRefresher struct {
	source   DashboardSource
	interval time.Duration
	periods  []model.Period
	workers  int
	logger   *slog.Logger
	now      func() time.Time

	jobs   chan model.Period
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	cacheMu sync.RWMutex
	cache   map[model.Period]*model.Dashboard
}

// NewDashboardRefresher constructs the refresher. A non-positive interval
// disables background refreshing.
func NewDashboardRefresher(source DashboardSource, interval time.Duration, workers int, logger *slog.Logger) *DashboardRefresher {
	if workers <= 0 {
		workers = 1
	}
	periods := []model.Period{model.PeriodWeekly, model.PeriodMonthly}
	return &DashboardRefresher{
		source:   source,
		interval: interval,
		periods:  periods,
		workers:  workers,
		logger:   logger,
		now:      time.Now,
		jobs:     make(chan model.Period, len(periods)),
		cache:    make(map[model.Period]*model.Dashboard, len(periods)),
	}
}

// Enabled reports whether Start launches anything.
func (r *DashboardRefresher) Enabled() bool {
	return r.interval > 0
}

// Start launches background refreshing.
func (r *DashboardRefresher) Start(ctx context.Context) {
	if !r.Enabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *DashboardRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Snapshot returns the cached dashboard for period if it is fresh enough.
func (r *DashboardRefresher) Snapshot(period model.Period) (*model.Dashboard, bool) {
	if !r.Enabled() {
		return nil, false
	}

	r.cacheMu.RLock()
	d, ok := r.cache[period]
	r.cacheMu.RUnlock()

	if !ok || r.now().Sub(d.GeneratedAt) > 2*r.interval {
		return nil, false
	}
	return d, true
}

func (r *DashboardRefresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.enqueue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.enqueue(ctx)
		}
	}
}

func (r *DashboardRefresher) enqueue(ctx context.Context) {
	for _, p := range r.periods {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- p:
		}
	}
}

func (r *DashboardRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case period, ok := <-r.jobs:
			if !ok {
				return
			}
			r.refresh(ctx, period)
		}
	}
}

func (r *DashboardRefresher) refresh(ctx context.Context, period model.Period) {
	d, err := r.source.Dashboard(ctx, period)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("dashboard refresh failed", slog.String("period", string(period)), slog.String("error", err.Error()))
		}
		return
	}

	r.cacheMu.Lock()
	r.cache[period] = d
	r.cacheMu.Unlock()

	r.logger.Debug("dashboard refreshed", slog.String("period", string(period)))
}
