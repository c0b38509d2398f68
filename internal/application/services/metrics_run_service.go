package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
	"github.com/NorrieF/jp-search-quality/internal/domain/providers"
	"github.com/NorrieF/jp-search-quality/internal/domain/repositories"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/observability"
	"github.com/NorrieF/jp-search-quality/internal/metrics"
)

// MetricsRunService orchestrates one full metrics run: load the input
// snapshot, derive every metric table, replace the output tables, then cache
// and announce the run summary. Cache and bus are optional; a run that
// cannot reach Redis still fully replaces the postgres tables.
type MetricsRunService struct {
	events  repositories.EventLogRepository
	metrics repositories.MetricsRepository
	runner  *metrics.Runner
	cache   providers.CacheProvider
	bus     providers.EventBus
	obs     *observability.Metrics
	tracer  trace.Tracer

	snapshotTTLSec int
}

// NewMetricsRunService creates a new metrics run service
func NewMetricsRunService(
	events repositories.EventLogRepository,
	metricsRepo repositories.MetricsRepository,
	runner *metrics.Runner,
) *MetricsRunService {
	return &MetricsRunService{
		events:         events,
		metrics:        metricsRepo,
		runner:         runner,
		tracer:         otel.Tracer("github.com/NorrieF/jp-search-quality/internal/application/services"),
		snapshotTTLSec: 24 * 3600,
	}
}

// SetCache enables caching of the latest run summary
func (s *MetricsRunService) SetCache(cache providers.CacheProvider, ttlSec int) {
	s.cache = cache
	if ttlSec > 0 {
		s.snapshotTTLSec = ttlSec
	}
}

// SetEventBus enables publishing of run summaries
func (s *MetricsRunService) SetEventBus(bus providers.EventBus) {
	s.bus = bus
}

// SetObservability enables OTel instruments
func (s *MetricsRunService) SetObservability(obs *observability.Metrics) {
	s.obs = obs
}

// Run executes one full batch recomputation over the current snapshot.
func (s *MetricsRunService) Run(ctx context.Context) (*entities.RunSummary, error) {
	runID := uuid.New().String()
	started := time.Now()

	ctx, span := s.tracer.Start(ctx, "metrics.run", trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	logger := observability.LoggerFromContext(ctx)
	logger.Info().Str("run_id", runID).Msg("starting metrics run")

	catalog, searchEvents, clickEvents, err := s.loadSnapshot(ctx)
	if err != nil {
		s.recordFailure(ctx)
		return nil, err
	}
	if s.obs != nil {
		s.obs.RowsRead.Add(ctx, int64(len(catalog)+len(searchEvents)+len(clickEvents)))
	}
	logger.Info().
		Str("run_id", runID).
		Int("catalog_items", len(catalog)).
		Int("search_events", len(searchEvents)).
		Int("click_events", len(clickEvents)).
		Msg("loaded input snapshot")

	result, err := s.compute(ctx, searchEvents, clickEvents)
	if err != nil {
		s.recordFailure(ctx)
		return nil, err
	}

	tableRows, err := s.store(ctx, result)
	if err != nil {
		s.recordFailure(ctx)
		return nil, err
	}

	finished := time.Now()
	summary := &entities.RunSummary{
		RunID:        runID,
		StartedAt:    started,
		FinishedAt:   finished,
		DurationMs:   finished.Sub(started).Milliseconds(),
		CatalogItems: len(catalog),
		SearchEvents: len(searchEvents),
		ClickEvents:  len(clickEvents),
		Sessions:     result.Sessions,
		TableRows:    tableRows,
	}

	if s.obs != nil {
		s.obs.RunDuration.Record(ctx, float64(summary.DurationMs))
		total := 0
		for _, n := range tableRows {
			total += n
		}
		s.obs.RowsWritten.Add(ctx, int64(total))
	}

	s.announce(ctx, summary)

	logger.Info().
		Str("run_id", runID).
		Int64("duration_ms", summary.DurationMs).
		Int("sessions", summary.Sessions).
		Msg("metrics run completed")

	return summary, nil
}

// Validate checks the referential integrity of the current snapshot without
// touching the output tables.
func (s *MetricsRunService) Validate(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "metrics.validate")
	defer span.End()

	searchEvents, err := s.events.ListSearchEvents(ctx)
	if err != nil {
		return err
	}
	clickEvents, err := s.events.ListClickEvents(ctx)
	if err != nil {
		return err
	}

	_, err = metrics.SummarizeClicks(searchEvents, clickEvents)
	return err
}

// TopBadQueries reads back the ranked problematic queries, best-ranked first.
func (s *MetricsRunService) TopBadQueries(ctx context.Context, limit int) ([]entities.BadQuery, error) {
	return s.metrics.TopBadQueries(ctx, limit)
}

func (s *MetricsRunService) loadSnapshot(ctx context.Context) ([]entities.ContentItem, []entities.SearchEvent, []entities.ClickEvent, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.load")
	defer span.End()

	catalog, err := s.events.ListContentItems(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	searchEvents, err := s.events.ListSearchEvents(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	clickEvents, err := s.events.ListClickEvents(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return catalog, searchEvents, clickEvents, nil
}

func (s *MetricsRunService) compute(ctx context.Context, searchEvents []entities.SearchEvent, clickEvents []entities.ClickEvent) (*metrics.Result, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.compute")
	defer span.End()

	return s.runner.Run(ctx, searchEvents, clickEvents)
}

func (s *MetricsRunService) store(ctx context.Context, result *metrics.Result) (map[string]int, error) {
	ctx, span := s.tracer.Start(ctx, "metrics.store")
	defer span.End()

	segmentTables := []struct {
		name string
		rows []entities.SegmentMetric
	}{
		{repositories.TableOverall, result.Overall},
		{repositories.TableByVertical, result.ByVertical},
		{repositories.TableByDevice, result.ByDevice},
		{repositories.TableByScriptFlags, result.ByScriptFlags},
		{repositories.TableByLengthBucket, result.ByLengthBucket},
		{repositories.TableDaily, result.Daily},
	}

	tableRows := make(map[string]int, len(segmentTables)+2)
	for _, t := range segmentTables {
		if err := s.metrics.ReplaceSegmentMetrics(ctx, t.name, t.rows); err != nil {
			return nil, err
		}
		tableRows[t.name] = len(t.rows)
	}

	if err := s.metrics.ReplaceTopBadQueries(ctx, result.TopBadQueries); err != nil {
		return nil, err
	}
	tableRows[repositories.TableTopBadQueries] = len(result.TopBadQueries)

	if err := s.metrics.ReplaceReformulationDrivers(ctx, result.ReformulationDrivers); err != nil {
		return nil, err
	}
	tableRows[repositories.TableReformulationDrivers] = len(result.ReformulationDrivers)

	return tableRows, nil
}

// announce caches and publishes the summary. Both are best effort: the
// output tables are already committed at this point.
func (s *MetricsRunService) announce(ctx context.Context, summary *entities.RunSummary) {
	logger := observability.LoggerFromContext(ctx)

	data, err := json.Marshal(summary)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to marshal run summary")
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, providers.CacheKeyLatestRun, data, s.snapshotTTLSec); err != nil {
			logger.Warn().Err(err).Msg("failed to cache run summary")
		}
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, providers.EventChannelRunCompleted, summary); err != nil {
			logger.Warn().Err(err).Msg("failed to publish run summary")
		}
	}
}

func (s *MetricsRunService) recordFailure(ctx context.Context) {
	if s.obs != nil {
		s.obs.RunFailures.Add(ctx, 1)
	}
}
