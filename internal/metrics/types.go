package metrics

import "github.com/NorrieF/jp-search-quality/internal/domain/entities"

// ClickSummary is the per-search-event aggregate of its clicks. BestRank and
// MaxDwellSec are nil when the event received no clicks; a nil dwell is not
// the same thing as a zero-second dwell.
type ClickSummary struct {
	HasClick    bool
	BestRank    *int
	MaxDwellSec *int
}

// ScoredSearchEvent is a SearchEvent extended with its click summary and the
// outcome flags derived from it. It exists only for the duration of a run.
type ScoredSearchEvent struct {
	entities.SearchEvent

	HasClick    bool
	BestRank    *int
	MaxDwellSec *int

	SatClick             bool
	IsZeroResults        bool
	IsNoClickWithResults bool
}

// SequencedSearchEvent is a ScoredSearchEvent extended with the state of the
// immediately preceding event in the same session. All Prev fields are nil
// for the first event of a session.
type SequencedSearchEvent struct {
	ScoredSearchEvent

	PrevQueryNorm    *string
	PrevResultsCount *int
	PrevHasClick     *bool
	IsReformulation  bool
}

// PriorState classifies what happened on the session's previous search.
type PriorState string

const (
	PriorStateFirstQuery         PriorState = "first_query"
	PriorStateZeroResults        PriorState = "prev_zero_results"
	PriorStateNoClickWithResults PriorState = "prev_no_click_with_results"
	PriorStateHadClick           PriorState = "prev_had_click"
	// PriorStateOther is reachable only if an event's predecessor escapes the
	// results_count/has_click partition, which upstream data should not
	// produce. Kept so such rows are reported instead of dropped.
	PriorStateOther PriorState = "other"
)

// priorStateOrder fixes the row order of the driver table.
var priorStateOrder = []PriorState{
	PriorStateFirstQuery,
	PriorStateZeroResults,
	PriorStateNoClickWithResults,
	PriorStateHadClick,
	PriorStateOther,
}

// Config holds the tunable constants of the pipeline.
type Config struct {
	SatClickDwellSec int

	LenBucketShort int
	LenBucketMed   int
	LenBucketLong  int

	RankerMinVolume         int
	RankerZeroResultsWeight float64
	RankerNoClickWeight     float64
	RankerLimit             int
}

// DefaultConfig returns the calibrated defaults: 30s satisfied-click dwell,
// 3/6/10 length buckets, volume floor 50, 0.7/0.3 weighting, top 50.
func DefaultConfig() Config {
	return Config{
		SatClickDwellSec:        30,
		LenBucketShort:          3,
		LenBucketMed:            6,
		LenBucketLong:           10,
		RankerMinVolume:         50,
		RankerZeroResultsWeight: 0.7,
		RankerNoClickWeight:     0.3,
		RankerLimit:             50,
	}
}

// Result holds every derived table of one run, fully materialized.
type Result struct {
	Overall              []entities.SegmentMetric
	ByVertical           []entities.SegmentMetric
	ByDevice             []entities.SegmentMetric
	ByScriptFlags        []entities.SegmentMetric
	ByLengthBucket       []entities.SegmentMetric
	Daily                []entities.SegmentMetric
	TopBadQueries        []entities.BadQuery
	ReformulationDrivers []entities.ReformulationDriverMetric

	Sessions int
}
