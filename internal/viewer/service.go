package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
	"github.com/couchcryptid/solar-flare-service/internal/observability"
)

// ErrSuperseded is returned by Refresh when a newer refresh began before
// this one finished; its result was discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Fetcher lists the flares in a date range.
type Fetcher interface {
	FetchFlares(ctx context.Context, r domain.DateRange) ([]domain.FlareRecord, error)
}

// Publisher announces an applied selection to downstream consumers.
type Publisher interface {
	PublishSelection(ctx context.Context, sel domain.Selection) error
}

// Settings tunes the refresh service.
type Settings struct {
	// RefreshInterval re-fetches the trailing default range periodically.
	// Zero disables polling; Run then refreshes once.
	RefreshInterval time.Duration
	// DefaultRangeDays is the length of the range used when none is given.
	DefaultRangeDays int
	// Clock drives the polling ticker and the default range. Nil means real time.
	Clock clockwork.Clock
}

// Service fetches flares, applies them to the store, and publishes each
// applied selection. Only the latest refresh may change state: starting a
// refresh cancels the one in flight, and late results are discarded.
type Service struct {
	fetcher   Fetcher
	publisher Publisher
	store     *Store
	logger    *slog.Logger
	metrics   *observability.Metrics
	settings  Settings
	clock     clockwork.Clock

	mu          sync.Mutex
	inFlight    context.CancelFunc
	inFlightGen uint64

	ready atomic.Bool
}

// New creates a Service. Pass a nil publisher to disable publishing.
func New(f Fetcher, p Publisher, store *Store, logger *slog.Logger, metrics *observability.Metrics, settings Settings) *Service {
	clock := settings.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if settings.DefaultRangeDays < 1 {
		settings.DefaultRangeDays = 30
	}
	return &Service{
		fetcher:   f,
		publisher: p,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		settings:  settings,
		clock:     clock,
	}
}

// CheckReadiness returns nil once a refresh has been applied successfully.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no flare data has been loaded yet")
	}
	return nil
}

// Current returns the current viewer state.
func (s *Service) Current() State {
	return s.store.Snapshot()
}

// Radius is the sphere radius markers are projected onto.
func (s *Service) Radius() float64 {
	return s.store.Radius()
}

// DefaultRange is the trailing range ending today.
func (s *Service) DefaultRange() domain.DateRange {
	return domain.TrailingDays(s.clock.Now(), s.settings.DefaultRangeDays)
}

// Refresh fetches the flares in r and applies them. It returns the state
// right after its own transition, ErrSuperseded if a newer refresh won, or
// the fetch error (prior selection kept).
func (s *Service) Refresh(ctx context.Context, r domain.DateRange) (State, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	ticket := s.store.Begin(r)
	if s.inFlight != nil {
		s.inFlight()
	}
	s.inFlight = cancel
	s.inFlightGen = ticket.Generation
	s.mu.Unlock()
	defer s.release(ticket.Generation)

	fetchID := uuid.NewString()
	logger := s.logger.With("fetch_id", fetchID, "range", r.String())
	logger.Debug("fetching flares")

	start := time.Now()
	records, err := s.fetcher.FetchFlares(fetchCtx, r)

	state, applied := s.store.Apply(ticket, fetchID, records, err)
	if !applied {
		s.metrics.Fetches.WithLabelValues("superseded").Inc()
		logger.Debug("discarding superseded fetch result")
		return s.store.Snapshot(), ErrSuperseded
	}
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.Fetches.WithLabelValues("error").Inc()
		logger.Warn("flare fetch failed, keeping previous selection", "error", err)
		return state, fmt.Errorf("fetch flares %s: %w", r, err)
	}

	s.metrics.Fetches.WithLabelValues("success").Inc()
	s.metrics.FlaresReceived.Add(float64(len(records)))
	s.ready.Store(true)

	sel := state.Selection
	s.metrics.SelectedScore.Set(sel.Score)
	if sel.HasFlare() {
		logger.Info("flare selected",
			"flare_id", sel.Flare.ID,
			"class_type", sel.Flare.ClassType,
			"source_location", sel.Flare.SourceLocation,
			"has_marker", sel.Marker != nil,
			"flare_count", sel.FlareCount,
		)
	} else {
		logger.Info("no flares in range")
	}

	s.publish(ctx, *sel, logger)
	return state, nil
}

// Run refreshes the default range once and then, if a refresh interval is
// set, on every tick until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("viewer started",
		"refresh_interval", s.settings.RefreshInterval,
		"default_range_days", s.settings.DefaultRangeDays,
	)
	s.metrics.ServiceRunning.Set(1)
	defer s.metrics.ServiceRunning.Set(0)

	s.refreshDefault(ctx)

	if s.settings.RefreshInterval <= 0 {
		<-ctx.Done()
		s.logger.Info("viewer stopping", "reason", ctx.Err())
		return nil
	}

	ticker := s.clock.NewTicker(s.settings.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("viewer stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.refreshDefault(ctx)
		}
	}
}

func (s *Service) refreshDefault(ctx context.Context) {
	_, err := s.Refresh(ctx, s.DefaultRange())
	if err == nil || errors.Is(err, ErrSuperseded) || ctx.Err() != nil {
		return
	}
	s.logger.Error("scheduled refresh failed", "error", err)
}

func (s *Service) publish(ctx context.Context, sel domain.Selection, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSelection(ctx, sel); err != nil {
		s.metrics.PublishErrors.Inc()
		logger.Error("publish selection failed", "error", err)
		return
	}
	s.metrics.SelectionsPublished.Inc()
}

// release forgets the in-flight cancel func if it still belongs to gen.
func (s *Service) release(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlightGen == gen {
		s.inFlight = nil
	}
}
