package repositories

import (
	"context"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// Output table names. The export collaborator reads the finished tables by
// these names, so they are part of the repository contract.
const (
	TableOverall              = "search_quality_overall"
	TableByVertical           = "search_quality_by_vertical"
	TableByDevice             = "search_quality_by_device"
	TableByScriptFlags        = "search_quality_by_script_flags"
	TableByLengthBucket       = "search_quality_by_length_bucket"
	TableDaily                = "search_quality_daily"
	TableTopBadQueries        = "search_quality_top_bad_queries"
	TableReformulationDrivers = "search_quality_reformulation_drivers"
)

// MetricsRepository persists the derived metric tables. Every Replace method
// rebuilds its table atomically: on error the previous contents survive
// untouched, readers never observe a half-written table.
type MetricsRepository interface {
	// ReplaceSegmentMetrics replaces one of the segment tables with rows
	ReplaceSegmentMetrics(ctx context.Context, table string, rows []entities.SegmentMetric) error

	// ReplaceTopBadQueries replaces the ranked problematic-query table
	ReplaceTopBadQueries(ctx context.Context, rows []entities.BadQuery) error

	// ReplaceReformulationDrivers replaces the prior-state breakdown table
	ReplaceReformulationDrivers(ctx context.Context, rows []entities.ReformulationDriverMetric) error

	// TopBadQueries reads back the ranked problematic queries, best-ranked first
	TopBadQueries(ctx context.Context, limit int) ([]entities.BadQuery, error)
}
