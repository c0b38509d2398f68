package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
	"github.com/NorrieF/jp-search-quality/internal/domain/repositories"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/clients/postgres"
)

func setupMetricsAdapter(t *testing.T) (repositories.MetricsRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return NewMetricsAdapter(postgres.NewClientFromDB(mockDB)), mock
}

func TestReplaceSegmentMetrics_DeleteThenInsertInOneTx(t *testing.T) {
	adapter, mock := setupMetricsAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "search_quality_overall"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "search_quality_overall"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := []entities.SegmentMetric{{
		Segment:             "all",
		Searches:            3,
		ZeroResultsRatePct:  33.33,
		ClickThroughRatePct: 66.67,
	}}
	err := adapter.ReplaceSegmentMetrics(context.Background(), repositories.TableOverall, rows)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSegmentMetrics_EmptyRowsStillClearsTable(t *testing.T) {
	adapter, mock := setupMetricsAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "search_quality_daily"`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	err := adapter.ReplaceSegmentMetrics(context.Background(), repositories.TableDaily, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSegmentMetrics_RollsBackOnInsertFailure(t *testing.T) {
	adapter, mock := setupMetricsAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "search_quality_by_device"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "search_quality_by_device"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	rows := []entities.SegmentMetric{{Segment: "mobile", Searches: 10}}
	err := adapter.ReplaceSegmentMetrics(context.Background(), repositories.TableByDevice, rows)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTopBadQueries(t *testing.T) {
	adapter, mock := setupMetricsAdapter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "search_quality_top_bad_queries"`).
		WillReturnResult(sqlmock.NewResult(0, 50))
	mock.ExpectExec(`INSERT INTO "search_quality_top_bad_queries"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	rows := []entities.BadQuery{
		{QueryNorm: "ｶﾀｶﾅ query", Searches: 50, ZeroResultsRatePct: 100},
		{QueryNorm: "hero", Searches: 72, ZeroResultsRatePct: 40.28},
	}
	err := adapter.ReplaceTopBadQueries(context.Background(), rows)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopBadQueries_ReadBack(t *testing.T) {
	adapter, mock := setupMetricsAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "search_quality_top_bad_queries"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"query_norm", "searches", "zero_results_rate_pct",
			"no_click_with_results_rate_pct", "sat_click_rate_pct",
		}).
			AddRow("ｶﾀｶﾅ query", 50, 100.0, 0.0, 0.0).
			AddRow("hero", 72, 40.28, 30.56, 12.5))

	rows, err := adapter.TopBadQueries(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ｶﾀｶﾅ query", rows[0].QueryNorm)
	assert.Equal(t, 72, rows[1].Searches)
	assert.NoError(t, mock.ExpectationsWereMet())
}
