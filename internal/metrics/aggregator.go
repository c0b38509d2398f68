package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// Aggregate partitions the sequenced events by key and reduces each
// partition to one SegmentMetric row. Rows come out sorted by segment key so
// output is stable across runs; for the daily table the key is the calendar
// day, so that sort is the required ascending-by-day order.
func Aggregate(events []SequencedSearchEvent, key func(*SequencedSearchEvent) string) []entities.SegmentMetric {
	type counts struct {
		searches      int
		zeroResults   int
		clicks        int
		noClick       int
		satClicks     int
		reformulation int
	}

	partitions := make(map[string]*counts)
	for i := range events {
		e := &events[i]
		k := key(e)
		c, ok := partitions[k]
		if !ok {
			c = &counts{}
			partitions[k] = c
		}
		c.searches++
		if e.IsZeroResults {
			c.zeroResults++
		}
		if e.HasClick {
			c.clicks++
		}
		if e.IsNoClickWithResults {
			c.noClick++
		}
		if e.SatClick {
			c.satClicks++
		}
		if e.IsReformulation {
			c.reformulation++
		}
	}

	keys := make([]string, 0, len(partitions))
	for k := range partitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]entities.SegmentMetric, 0, len(keys))
	for _, k := range keys {
		c := partitions[k]
		rows = append(rows, entities.SegmentMetric{
			Segment:                   k,
			Searches:                  c.searches,
			ZeroResultsRatePct:        RatePct(c.zeroResults, c.searches),
			ClickThroughRatePct:       RatePct(c.clicks, c.searches),
			NoClickWithResultsRatePct: RatePct(c.noClick, c.searches),
			SatClickRatePct:           RatePct(c.satClicks, c.searches),
			ReformulationRatePct:      RatePct(c.reformulation, c.searches),
		})
	}
	return rows
}

// RatePct is hits over total as a percentage, rounded half-up to two
// decimals: 1 of 3 reports 33.33.
func RatePct(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(total)*10000) / 100
}

// Segment key functions.

// KeyOverall collapses everything into a single partition.
func KeyOverall(*SequencedSearchEvent) string { return "all" }

// KeyVertical partitions by search vertical.
func KeyVertical(e *SequencedSearchEvent) string { return string(e.Vertical) }

// KeyDevice partitions by device type.
func KeyDevice(e *SequencedSearchEvent) string { return e.Device }

// KeyScriptFlags partitions by the 4-tuple of query script-presence flags.
func KeyScriptFlags(e *SequencedSearchEvent) string {
	return fmt.Sprintf("kanji=%s,kana=%s,romaji=%s,hwkana=%s",
		flag(e.HasKanji), flag(e.HasKana), flag(e.HasRomaji), flag(e.HasHalfwidthKana))
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// KeyDay partitions by the calendar day of the event timestamp.
func KeyDay(e *SequencedSearchEvent) string { return e.Day() }

// LengthBucketKey returns the query-length partition function for the
// configured bucket boundaries.
func LengthBucketKey(cfg Config) func(*SequencedSearchEvent) string {
	return func(e *SequencedSearchEvent) string {
		switch {
		case e.QueryLen <= cfg.LenBucketShort:
			return fmt.Sprintf("len<=%d", cfg.LenBucketShort)
		case e.QueryLen <= cfg.LenBucketMed:
			return fmt.Sprintf("len%d-%d", cfg.LenBucketShort+1, cfg.LenBucketMed)
		case e.QueryLen <= cfg.LenBucketLong:
			return fmt.Sprintf("len%d-%d", cfg.LenBucketMed+1, cfg.LenBucketLong)
		default:
			return fmt.Sprintf("len>%d", cfg.LenBucketLong)
		}
	}
}
