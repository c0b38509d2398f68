package metrics

import "github.com/NorrieF/jp-search-quality/internal/domain/entities"

// ClassifyPriorState buckets an event by what happened on its session's
// previous search. The tests run in order: first-query wins, then the
// previous event's zero-results, then its no-click-with-results, then its
// click. The trailing other bucket catches anything that escapes the
// partition; well-formed input never reaches it.
func ClassifyPriorState(e *SequencedSearchEvent) PriorState {
	switch {
	case e.PrevResultsCount == nil:
		return PriorStateFirstQuery
	case *e.PrevResultsCount == 0:
		return PriorStateZeroResults
	case *e.PrevResultsCount > 0 && e.PrevHasClick != nil && !*e.PrevHasClick:
		return PriorStateNoClickWithResults
	case e.PrevHasClick != nil && *e.PrevHasClick:
		return PriorStateHadClick
	default:
		return PriorStateOther
	}
}

// ClassifyDrivers groups events by prior state and reports, per bucket, how
// the following search went: how often it reformulated, returned nothing, or
// got a click. Buckets with no events are omitted; present buckets keep the
// classification order.
func ClassifyDrivers(events []SequencedSearchEvent) []entities.ReformulationDriverMetric {
	type counts struct {
		searches      int
		reformulation int
		zeroResults   int
		clicks        int
	}

	buckets := make(map[PriorState]*counts, len(priorStateOrder))
	for i := range events {
		e := &events[i]
		state := ClassifyPriorState(e)
		c, ok := buckets[state]
		if !ok {
			c = &counts{}
			buckets[state] = c
		}
		c.searches++
		if e.IsReformulation {
			c.reformulation++
		}
		if e.IsZeroResults {
			c.zeroResults++
		}
		if e.HasClick {
			c.clicks++
		}
	}

	rows := make([]entities.ReformulationDriverMetric, 0, len(buckets))
	for _, state := range priorStateOrder {
		c, ok := buckets[state]
		if !ok {
			continue
		}
		rows = append(rows, entities.ReformulationDriverMetric{
			PriorState:              string(state),
			Searches:                c.searches,
			ReformulationRatePct:    RatePct(c.reformulation, c.searches),
			NextZeroResultsRatePct:  RatePct(c.zeroResults, c.searches),
			NextClickThroughRatePct: RatePct(c.clicks, c.searches),
		})
	}
	return rows
}
