package entities

import "time"

// SegmentMetric is one row of a segmented quality-metrics table: a segment
// identifier, the number of searches in it, and the rate percentages (two
// decimal places) derived from the outcome flags.
type SegmentMetric struct {
	Segment                   string  `json:"segment" db:"segment"`
	Searches                  int     `json:"searches" db:"searches"`
	ZeroResultsRatePct        float64 `json:"zero_results_rate_pct" db:"zero_results_rate_pct"`
	ClickThroughRatePct       float64 `json:"click_through_rate_pct" db:"click_through_rate_pct"`
	NoClickWithResultsRatePct float64 `json:"no_click_with_results_rate_pct" db:"no_click_with_results_rate_pct"`
	SatClickRatePct           float64 `json:"sat_click_rate_pct" db:"sat_click_rate_pct"`
	ReformulationRatePct      float64 `json:"reformulation_rate_pct" db:"reformulation_rate_pct"`
}

// BadQuery is one row of the ranked problematic-query table.
type BadQuery struct {
	QueryNorm                 string  `json:"query_norm" db:"query_norm"`
	Searches                  int     `json:"searches" db:"searches"`
	ZeroResultsRatePct        float64 `json:"zero_results_rate_pct" db:"zero_results_rate_pct"`
	NoClickWithResultsRatePct float64 `json:"no_click_with_results_rate_pct" db:"no_click_with_results_rate_pct"`
	SatClickRatePct           float64 `json:"sat_click_rate_pct" db:"sat_click_rate_pct"`
}

// ReformulationDriverMetric reports, for searches whose session predecessor
// was in a given state, how often the next search reformulates, zero-results,
// or gets a click.
type ReformulationDriverMetric struct {
	PriorState              string  `json:"prior_state" db:"prior_state"`
	Searches                int     `json:"searches" db:"searches"`
	ReformulationRatePct    float64 `json:"reformulation_rate_pct" db:"reformulation_rate_pct"`
	NextZeroResultsRatePct  float64 `json:"next_zero_results_rate_pct" db:"next_zero_results_rate_pct"`
	NextClickThroughRatePct float64 `json:"next_click_through_rate_pct" db:"next_click_through_rate_pct"`
}

// RunSummary records one full pipeline run: input sizes, output table sizes,
// and timing. The latest summary is cached in Redis and published on the
// event bus when a run completes.
type RunSummary struct {
	RunID        string         `json:"run_id"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	DurationMs   int64          `json:"duration_ms"`
	CatalogItems int            `json:"catalog_items"`
	SearchEvents int            `json:"search_events"`
	ClickEvents  int            `json:"click_events"`
	Sessions     int            `json:"sessions"`
	TableRows    map[string]int `json:"table_rows"`
}
