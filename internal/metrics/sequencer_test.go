package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

func scoredEvent(id, session, ts, queryNorm string, resultsCount int, hasClick bool) ScoredSearchEvent {
	return ScoredSearchEvent{
		SearchEvent: entities.SearchEvent{
			EventID:      id,
			SessionID:    session,
			Timestamp:    ts,
			QueryNorm:    queryNorm,
			ResultsCount: resultsCount,
		},
		HasClick: hasClick,
	}
}

func TestSequenceSessions_FirstEventHasNoPrevState(t *testing.T) {
	scored := []ScoredSearchEvent{
		scoredEvent("se_1", "s_1", "2026-08-01T10:00:00", "yoasobi", 5, true),
	}

	seq, sessions, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, 1, sessions)

	assert.Nil(t, seq[0].PrevQueryNorm)
	assert.Nil(t, seq[0].PrevResultsCount)
	assert.Nil(t, seq[0].PrevHasClick)
	assert.False(t, seq[0].IsReformulation)
}

func TestSequenceSessions_CarriesPrevState(t *testing.T) {
	scored := []ScoredSearchEvent{
		scoredEvent("se_2", "s_1", "2026-08-01T10:01:00", "yoasobi 怪物", 8, true),
		scoredEvent("se_1", "s_1", "2026-08-01T10:00:00", "yoasobi", 0, false),
	}

	seq, _, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)
	require.Len(t, seq, 2)

	// Walk order is chronological regardless of input order.
	assert.Equal(t, "se_1", seq[0].EventID)
	assert.Equal(t, "se_2", seq[1].EventID)

	require.NotNil(t, seq[1].PrevQueryNorm)
	assert.Equal(t, "yoasobi", *seq[1].PrevQueryNorm)
	assert.Equal(t, 0, *seq[1].PrevResultsCount)
	assert.False(t, *seq[1].PrevHasClick)
	assert.True(t, seq[1].IsReformulation)
}

func TestSequenceSessions_TimestampTieBrokenByEventID(t *testing.T) {
	ts := "2026-08-01T10:00:00"
	scored := []ScoredSearchEvent{
		scoredEvent("se_b", "s_1", ts, "query b", 3, false),
		scoredEvent("se_a", "s_1", ts, "query a", 0, false),
	}

	seq, _, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)

	assert.Equal(t, "se_a", seq[0].EventID)
	assert.Equal(t, "se_b", seq[1].EventID)
	require.NotNil(t, seq[1].PrevQueryNorm)
	assert.Equal(t, "query a", *seq[1].PrevQueryNorm)
}

func TestSequenceSessions_SameQueryIsNotReformulation(t *testing.T) {
	scored := []ScoredSearchEvent{
		scoredEvent("se_1", "s_1", "2026-08-01T10:00:00", "鬼滅の刃", 0, false),
		scoredEvent("se_2", "s_1", "2026-08-01T10:00:30", "鬼滅の刃", 12, true),
	}

	seq, _, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)
	assert.False(t, seq[1].IsReformulation)
}

func TestSequenceSessions_SessionsAreIndependent(t *testing.T) {
	scored := []ScoredSearchEvent{
		scoredEvent("se_1", "s_1", "2026-08-01T10:00:00", "hero", 5, true),
		scoredEvent("se_2", "s_2", "2026-08-01T10:00:10", "hero 映画", 5, false),
	}

	seq, sessions, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)
	assert.Equal(t, 2, sessions)

	for _, e := range seq {
		assert.Nil(t, e.PrevQueryNorm, "event %s should be first in its session", e.EventID)
		assert.False(t, e.IsReformulation)
	}
}

func TestSequenceSessions_DeterministicOutput(t *testing.T) {
	var scored []ScoredSearchEvent
	sessions := []string{"s_3", "s_1", "s_2"}
	for i, session := range sessions {
		scored = append(scored,
			scoredEvent("se_a", session, "2026-08-01T10:00:00", "q1", i, false),
			scoredEvent("se_b", session, "2026-08-01T10:01:00", "q2", i, true),
		)
	}

	first, _, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)
	second, _, err := SequenceSessions(context.Background(), scored)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
