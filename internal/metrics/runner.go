package metrics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// Runner executes the full derivation pipeline over one immutable snapshot
// of the search and click logs. A run is a pure function of its input: the
// same snapshot always produces an identical Result.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run joins, scores, sequences and aggregates. The three upstream stages are
// sequential dependencies; the eight output tables are independent
// reductions over the sequenced events and are computed concurrently.
func (r *Runner) Run(ctx context.Context, events []entities.SearchEvent, clicks []entities.ClickEvent) (*Result, error) {
	summaries, err := SummarizeClicks(events, clicks)
	if err != nil {
		return nil, err
	}

	scored := ScoreEvents(events, summaries, r.cfg)

	sequenced, sessions, err := SequenceSessions(ctx, scored)
	if err != nil {
		return nil, err
	}

	result := &Result{Sessions: sessions}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Overall = Aggregate(sequenced, KeyOverall)
		return nil
	})
	g.Go(func() error {
		result.ByVertical = Aggregate(sequenced, KeyVertical)
		return nil
	})
	g.Go(func() error {
		result.ByDevice = Aggregate(sequenced, KeyDevice)
		return nil
	})
	g.Go(func() error {
		result.ByScriptFlags = Aggregate(sequenced, KeyScriptFlags)
		return nil
	})
	g.Go(func() error {
		result.ByLengthBucket = Aggregate(sequenced, LengthBucketKey(r.cfg))
		return nil
	})
	g.Go(func() error {
		result.Daily = Aggregate(sequenced, KeyDay)
		return nil
	})
	g.Go(func() error {
		result.TopBadQueries = RankQueries(sequenced, r.cfg)
		return nil
	})
	g.Go(func() error {
		result.ReformulationDrivers = ClassifyDrivers(sequenced)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
