package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
	"github.com/NorrieF/jp-search-quality/internal/domain/repositories"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/clients/postgres"
	apperrors "github.com/NorrieF/jp-search-quality/pkg/errors"
)

// MetricsAdapter implements MetricsRepository. Every Replace method runs
// delete-then-insert inside one transaction, so a failed run rolls back and
// the previous table contents stay visible.
type MetricsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMetricsAdapter creates a new metrics adapter
func NewMetricsAdapter(client *postgres.Client) repositories.MetricsRepository {
	return &MetricsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ReplaceSegmentMetrics replaces one of the segment tables with rows
func (a *MetricsAdapter) ReplaceSegmentMetrics(ctx context.Context, table string, rows []entities.SegmentMetric) error {
	records := make([]goqu.Record, len(rows))
	for i, r := range rows {
		records[i] = goqu.Record{
			"segment":                        r.Segment,
			"searches":                       r.Searches,
			"zero_results_rate_pct":          r.ZeroResultsRatePct,
			"click_through_rate_pct":         r.ClickThroughRatePct,
			"no_click_with_results_rate_pct": r.NoClickWithResultsRatePct,
			"sat_click_rate_pct":             r.SatClickRatePct,
			"reformulation_rate_pct":         r.ReformulationRatePct,
		}
	}
	return a.replaceTable(ctx, table, records)
}

// ReplaceTopBadQueries replaces the ranked problematic-query table
func (a *MetricsAdapter) ReplaceTopBadQueries(ctx context.Context, rows []entities.BadQuery) error {
	records := make([]goqu.Record, len(rows))
	for i, r := range rows {
		records[i] = goqu.Record{
			"rank":                           i + 1,
			"query_norm":                     r.QueryNorm,
			"searches":                       r.Searches,
			"zero_results_rate_pct":          r.ZeroResultsRatePct,
			"no_click_with_results_rate_pct": r.NoClickWithResultsRatePct,
			"sat_click_rate_pct":             r.SatClickRatePct,
		}
	}
	return a.replaceTable(ctx, repositories.TableTopBadQueries, records)
}

// ReplaceReformulationDrivers replaces the prior-state breakdown table
func (a *MetricsAdapter) ReplaceReformulationDrivers(ctx context.Context, rows []entities.ReformulationDriverMetric) error {
	records := make([]goqu.Record, len(rows))
	for i, r := range rows {
		records[i] = goqu.Record{
			"prior_state":                 r.PriorState,
			"searches":                    r.Searches,
			"reformulation_rate_pct":      r.ReformulationRatePct,
			"next_zero_results_rate_pct":  r.NextZeroResultsRatePct,
			"next_click_through_rate_pct": r.NextClickThroughRatePct,
		}
	}
	return a.replaceTable(ctx, repositories.TableReformulationDrivers, records)
}

// TopBadQueries reads back the ranked problematic queries, best-ranked first
func (a *MetricsAdapter) TopBadQueries(ctx context.Context, limit int) ([]entities.BadQuery, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := a.db.Select(
		"query_norm", "searches", "zero_results_rate_pct",
		"no_click_with_results_rate_pct", "sat_click_rate_pct",
	).From(repositories.TableTopBadQueries).
		Order(goqu.C("rank").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build top bad queries query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read top bad queries", err)
	}
	defer rows.Close()

	var result []entities.BadQuery
	for rows.Next() {
		q := entities.BadQuery{}
		err := rows.Scan(
			&q.QueryNorm,
			&q.Searches,
			&q.ZeroResultsRatePct,
			&q.NoClickWithResultsRatePct,
			&q.SatClickRatePct,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bad query row", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read top bad queries", err)
	}

	return result, nil
}

func (a *MetricsAdapter) replaceTable(ctx context.Context, table string, records []goqu.Record) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if err := a.replaceTableTx(ctx, tx, table, records); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit table replace", err)
	}
	return nil
}

func (a *MetricsAdapter) replaceTableTx(ctx context.Context, tx *sql.Tx, table string, records []goqu.Record) error {
	deleteSQL, deleteArgs, err := a.db.Delete(table).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear table "+table, err)
	}

	if len(records) == 0 {
		return nil
	}

	insertSQL, insertArgs, err := a.db.Insert(table).Rows(records).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return apperrors.NewInternalError("failed to insert into table "+table, err)
	}

	return nil
}
