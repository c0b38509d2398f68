package metrics

import (
	"sort"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// RankQueries groups events by normalized query, keeps queries at or above
// the volume floor, and ranks them by the weighted badness score
// w_zr*zero_results_rate + w_nc*no_click_rate, worst first. Ties break by
// descending volume, then ascending query text so the order is total.
func RankQueries(events []SequencedSearchEvent, cfg Config) []entities.BadQuery {
	type counts struct {
		searches    int
		zeroResults int
		noClick     int
		satClicks   int
	}

	byQuery := make(map[string]*counts)
	for i := range events {
		e := &events[i]
		c, ok := byQuery[e.QueryNorm]
		if !ok {
			c = &counts{}
			byQuery[e.QueryNorm] = c
		}
		c.searches++
		if e.IsZeroResults {
			c.zeroResults++
		}
		if e.IsNoClickWithResults {
			c.noClick++
		}
		if e.SatClick {
			c.satClicks++
		}
	}

	type ranked struct {
		row   entities.BadQuery
		score float64
	}

	candidates := make([]ranked, 0, len(byQuery))
	for q, c := range byQuery {
		if c.searches < cfg.RankerMinVolume {
			continue
		}
		zr := RatePct(c.zeroResults, c.searches)
		nc := RatePct(c.noClick, c.searches)
		candidates = append(candidates, ranked{
			row: entities.BadQuery{
				QueryNorm:                 q,
				Searches:                  c.searches,
				ZeroResultsRatePct:        zr,
				NoClickWithResultsRatePct: nc,
				SatClickRatePct:           RatePct(c.satClicks, c.searches),
			},
			score: cfg.RankerZeroResultsWeight*zr + cfg.RankerNoClickWeight*nc,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].row.Searches != candidates[j].row.Searches {
			return candidates[i].row.Searches > candidates[j].row.Searches
		}
		return candidates[i].row.QueryNorm < candidates[j].row.QueryNorm
	})

	if len(candidates) > cfg.RankerLimit {
		candidates = candidates[:cfg.RankerLimit]
	}

	rows := make([]entities.BadQuery, len(candidates))
	for i, c := range candidates {
		rows[i] = c.row
	}
	return rows
}
