package metrics

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SequenceSessions orders every session's events chronologically and carries
// the previous event's state onto each successor. Sessions are independent
// and processed concurrently; the flattened output is ordered by
// (session_id, timestamp, event_id) so repeated runs are byte-identical.
//
// Ordering within a session is ascending (timestamp, event_id); the event_id
// lexical tie-break makes the order total when timestamps collide, and it
// decides which event is "previous" in that case.
func SequenceSessions(ctx context.Context, scored []ScoredSearchEvent) ([]SequencedSearchEvent, int, error) {
	bySession := make(map[string][]ScoredSearchEvent)
	for _, e := range scored {
		bySession[e.SessionID] = append(bySession[e.SessionID], e)
	}

	sessionIDs := make([]string, 0, len(bySession))
	for id := range bySession {
		sessionIDs = append(sessionIDs, id)
	}
	sort.Strings(sessionIDs)

	// Each session writes into its own pre-assigned region of out.
	out := make([]SequencedSearchEvent, len(scored))
	offsets := make(map[string]int, len(sessionIDs))
	offset := 0
	for _, id := range sessionIDs {
		offsets[id] = offset
		offset += len(bySession[id])
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, id := range sessionIDs {
		events, base := bySession[id], offsets[id]
		g.Go(func() error {
			sequenceSession(events, out[base:base+len(events)])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return out, len(sessionIDs), nil
}

func sequenceSession(events []ScoredSearchEvent, out []SequencedSearchEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp < events[j].Timestamp
		}
		return events[i].EventID < events[j].EventID
	})

	for i, e := range events {
		seq := SequencedSearchEvent{ScoredSearchEvent: e}
		if i > 0 {
			prev := events[i-1]
			q, rc, hc := prev.QueryNorm, prev.ResultsCount, prev.HasClick
			seq.PrevQueryNorm = &q
			seq.PrevResultsCount = &rc
			seq.PrevHasClick = &hc
			seq.IsReformulation = prev.QueryNorm != e.QueryNorm
		}
		out[i] = seq
	}
}
