package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/forest"
)

// Snapshot holds every view computed from one fetch of the account source.
// It is never modified after it is published.
type Snapshot struct {
	Forest      *forest.Forest
	Flat        []forest.FlatRecord
	Tree        []forest.ViewNode
	Treemap     forest.TreemapNode
	Summary     forest.Summary
	Orphans     int
	LastRefresh time.Time
}

// Options configures a Service.
type Options struct {
	// Strict fails a refresh when any account's parent is missing.
	Strict bool
	// Logger receives request and refresh logs. Nil discards them.
	Logger *slog.Logger
	// Registry collects the service metrics. Nil uses a private registry.
	Registry *prometheus.Registry
}

// Service serves the account views from a cached snapshot.
type Service struct {
	source   accounts.Source
	strict   bool
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics

	refreshGroup singleflight.Group

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService creates a Service. The cache starts empty; call Refresh to fill it.
func NewService(source accounts.Source, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Service{
		source:   source,
		strict:   opts.Strict,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// Refresh replaces the snapshot with a fresh load from the source. Concurrent
// calls share one load. On error the previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Service) rebuild(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		s.metrics.refreshDuration.Observe(time.Since(start).Seconds())
	}()

	f, err := accounts.Load(ctx, s.source, s.strict)
	if err != nil {
		s.metrics.refreshes.WithLabelValues("error").Inc()
		s.logger.Error("refresh failed", "error", err)
		return nil, fmt.Errorf("refreshing accounts: %w", err)
	}

	flat := f.Flatten()
	snap := &Snapshot{
		Forest:      f,
		Flat:        flat,
		Tree:        f.BuildTree(),
		Treemap:     f.Treemap(),
		Summary:     forest.Summarize(flat),
		Orphans:     len(f.Orphans()),
		LastRefresh: time.Now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.metrics.refreshes.WithLabelValues("ok").Inc()
	s.metrics.accounts.Set(float64(f.Len()))
	s.metrics.orphans.Set(float64(snap.Orphans))
	s.logger.Info("refresh complete",
		"accounts", f.Len(),
		"orphans", snap.Orphans,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// Snapshot returns the current snapshot, if any.
func (s *Service) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}
