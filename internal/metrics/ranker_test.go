package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryEvents(queryNorm string, n int, mutate func(*SequencedSearchEvent)) []SequencedSearchEvent {
	events := make([]SequencedSearchEvent, n)
	for i := range events {
		e := sequencedEvent(mutate)
		e.QueryNorm = queryNorm
		events[i] = e
	}
	return events
}

func TestRankQueries_VolumeFloor(t *testing.T) {
	zeroResults := func(e *SequencedSearchEvent) { e.IsZeroResults = true }

	events := queryEvents("below floor", 49, zeroResults)
	events = append(events, queryEvents("at floor", 50, zeroResults)...)

	rows := RankQueries(events, DefaultConfig())
	require.Len(t, rows, 1)

	assert.Equal(t, "at floor", rows[0].QueryNorm)
	assert.Equal(t, 50, rows[0].Searches)
	assert.Equal(t, 100.0, rows[0].ZeroResultsRatePct)
}

func TestRankQueries_CompositeScoreDescending(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerMinVolume = 10

	// zr=100 scores 70, nc=100 scores 30, clean scores 0.
	events := queryEvents("all zero results", 10, func(e *SequencedSearchEvent) { e.IsZeroResults = true })
	events = append(events, queryEvents("all no click", 10, func(e *SequencedSearchEvent) { e.IsNoClickWithResults = true })...)
	events = append(events, queryEvents("all satisfied", 10, func(e *SequencedSearchEvent) { e.HasClick = true; e.SatClick = true })...)

	rows := RankQueries(events, cfg)
	require.Len(t, rows, 3)

	assert.Equal(t, "all zero results", rows[0].QueryNorm)
	assert.Equal(t, "all no click", rows[1].QueryNorm)
	assert.Equal(t, "all satisfied", rows[2].QueryNorm)
	assert.Equal(t, 100.0, rows[2].SatClickRatePct)

	for i := 1; i < len(rows); i++ {
		prev := cfg.RankerZeroResultsWeight*rows[i-1].ZeroResultsRatePct + cfg.RankerNoClickWeight*rows[i-1].NoClickWithResultsRatePct
		cur := cfg.RankerZeroResultsWeight*rows[i].ZeroResultsRatePct + cfg.RankerNoClickWeight*rows[i].NoClickWithResultsRatePct
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestRankQueries_TieBrokenByVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerMinVolume = 5

	zeroResults := func(e *SequencedSearchEvent) { e.IsZeroResults = true }
	events := queryEvents("rare query", 5, zeroResults)
	events = append(events, queryEvents("common query", 20, zeroResults)...)

	rows := RankQueries(events, cfg)
	require.Len(t, rows, 2)
	assert.Equal(t, "common query", rows[0].QueryNorm)
}

func TestRankQueries_Limit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerMinVolume = 1
	cfg.RankerLimit = 3

	var events []SequencedSearchEvent
	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		events = append(events, queryEvents(q, 2, func(e *SequencedSearchEvent) { e.IsZeroResults = true })...)
	}

	rows := RankQueries(events, cfg)
	assert.Len(t, rows, 3)
}

func TestRankQueries_FloorIsTunable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerMinVolume = 3

	events := queryEvents("きめつのやいば", 3, func(e *SequencedSearchEvent) { e.IsZeroResults = true })
	rows := RankQueries(events, cfg)
	require.Len(t, rows, 1)
	assert.Equal(t, "きめつのやいば", rows[0].QueryNorm)
}
