package metrics

import "github.com/NorrieF/jp-search-quality/internal/domain/entities"

// ScoreEvents attaches each event's click summary and derives the outcome
// flags. The three flags are evaluated independently; zero-results and
// no-click-with-results can never both hold since they partition on
// results_count, and sat_click is gated on HasClick so an absent dwell can
// never count as satisfied.
func ScoreEvents(events []entities.SearchEvent, summaries map[string]ClickSummary, cfg Config) []ScoredSearchEvent {
	scored := make([]ScoredSearchEvent, 0, len(events))
	for _, e := range events {
		s := summaries[e.EventID]

		se := ScoredSearchEvent{
			SearchEvent: e,
			HasClick:    s.HasClick,
			BestRank:    s.BestRank,
			MaxDwellSec: s.MaxDwellSec,
		}
		se.IsZeroResults = e.ResultsCount == 0
		se.IsNoClickWithResults = e.ResultsCount > 0 && !s.HasClick
		se.SatClick = s.HasClick && *s.MaxDwellSec >= cfg.SatClickDwellSec

		scored = append(scored, se)
	}
	return scored
}
