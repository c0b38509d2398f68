package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

func TestScoreEvents_ZeroResults(t *testing.T) {
	events := []entities.SearchEvent{{EventID: "se_1", ResultsCount: 0}}

	scored := ScoreEvents(events, map[string]ClickSummary{}, DefaultConfig())
	require.Len(t, scored, 1)

	assert.True(t, scored[0].IsZeroResults)
	assert.False(t, scored[0].IsNoClickWithResults)
	assert.False(t, scored[0].SatClick)
	assert.False(t, scored[0].HasClick)
}

func TestScoreEvents_NoClickWithResults(t *testing.T) {
	events := []entities.SearchEvent{{EventID: "se_1", ResultsCount: 10}}

	scored := ScoreEvents(events, map[string]ClickSummary{}, DefaultConfig())
	require.Len(t, scored, 1)

	assert.False(t, scored[0].IsZeroResults)
	assert.True(t, scored[0].IsNoClickWithResults)
	assert.False(t, scored[0].SatClick)
}

func TestScoreEvents_SatClickThreshold(t *testing.T) {
	events := []entities.SearchEvent{
		{EventID: "se_sat", ResultsCount: 5},
		{EventID: "se_short", ResultsCount: 5},
		{EventID: "se_exact", ResultsCount: 5},
	}
	summaries := map[string]ClickSummary{
		"se_sat":   clickSummary(1, 40),
		"se_short": clickSummary(1, 29),
		"se_exact": clickSummary(1, 30),
	}

	scored := ScoreEvents(events, summaries, DefaultConfig())
	byID := make(map[string]ScoredSearchEvent)
	for _, s := range scored {
		byID[s.EventID] = s
	}

	assert.True(t, byID["se_sat"].SatClick)
	assert.False(t, byID["se_short"].SatClick)
	assert.True(t, byID["se_exact"].SatClick)

	for _, s := range scored {
		assert.True(t, s.HasClick)
		assert.False(t, s.IsNoClickWithResults)
	}
}

func TestScoreEvents_TunableDwellThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SatClickDwellSec = 60

	events := []entities.SearchEvent{{EventID: "se_1", ResultsCount: 5}}
	summaries := map[string]ClickSummary{"se_1": clickSummary(1, 40)}

	scored := ScoreEvents(events, summaries, cfg)
	assert.False(t, scored[0].SatClick)
}

func TestScoreEvents_FlagsNeverBothTrue(t *testing.T) {
	events := []entities.SearchEvent{
		{EventID: "se_1", ResultsCount: 0},
		{EventID: "se_2", ResultsCount: 1},
		{EventID: "se_3", ResultsCount: 25},
	}
	summaries := map[string]ClickSummary{"se_3": clickSummary(2, 12)}

	for _, s := range ScoreEvents(events, summaries, DefaultConfig()) {
		assert.False(t, s.IsZeroResults && s.IsNoClickWithResults,
			"event %s sets both zero-results and no-click-with-results", s.EventID)
	}
}

func clickSummary(rank, dwell int) ClickSummary {
	return ClickSummary{HasClick: true, BestRank: &rank, MaxDwellSec: &dwell}
}
