package metrics

import (
	"fmt"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
	apperrors "github.com/NorrieF/jp-search-quality/pkg/errors"
)

// SummarizeClicks groups clicks by the search event they belong to and
// reduces each group to a ClickSummary. Events with no clicks get the zero
// value (HasClick false, nil rank and dwell); that is the common case for
// failed searches, not an error.
//
// A click referencing an unknown event means the ingestion contract was
// breached upstream; the whole run fails rather than silently dropping it.
func SummarizeClicks(events []entities.SearchEvent, clicks []entities.ClickEvent) (map[string]ClickSummary, error) {
	known := make(map[string]struct{}, len(events))
	for _, e := range events {
		known[e.EventID] = struct{}{}
	}

	summaries := make(map[string]ClickSummary, len(events))
	for _, c := range clicks {
		if _, ok := known[c.EventID]; !ok {
			return nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("click %s references unknown search event %s", c.ClickID, c.EventID))
		}
		if c.Rank < 1 {
			return nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("click %s has invalid rank %d", c.ClickID, c.Rank))
		}
		if c.DwellSec < 0 {
			return nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("click %s has negative dwell %d", c.ClickID, c.DwellSec))
		}

		s, seen := summaries[c.EventID]
		if !seen {
			rank, dwell := c.Rank, c.DwellSec
			summaries[c.EventID] = ClickSummary{HasClick: true, BestRank: &rank, MaxDwellSec: &dwell}
			continue
		}
		if c.Rank < *s.BestRank {
			*s.BestRank = c.Rank
		}
		if c.DwellSec > *s.MaxDwellSec {
			*s.MaxDwellSec = c.DwellSec
		}
	}

	return summaries, nil
}
