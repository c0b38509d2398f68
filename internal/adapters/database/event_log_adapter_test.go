package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
	"github.com/NorrieF/jp-search-quality/internal/domain/repositories"
	"github.com/NorrieF/jp-search-quality/internal/infrastructure/clients/postgres"
)

func setupEventLogAdapter(t *testing.T) (repositories.EventLogRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return NewEventLogAdapter(postgres.NewClientFromDB(mockDB)), mock
}

func TestListSearchEvents(t *testing.T) {
	adapter, mock := setupEventLogAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "search_events"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "ts", "user_id", "session_id", "locale", "device",
			"query_raw", "query_norm", "vertical", "results_count",
			"has_kanji", "has_kana", "has_romaji", "has_halfwidth_kana", "query_len",
		}).AddRow(
			"se_1", "2026-08-01T10:00:00", "u_1", "s_1", "JP", "mobile",
			"YOASOBI 怪物", "yoasobi 怪物", "music", 10,
			true, false, true, false, 10,
		))

	events, err := adapter.ListSearchEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "se_1", e.EventID)
	assert.Equal(t, "yoasobi 怪物", e.QueryNorm)
	assert.Equal(t, entities.VerticalMusic, e.Vertical)
	assert.Equal(t, 10, e.ResultsCount)
	assert.True(t, e.HasKanji)
	assert.False(t, e.HasKana)
	assert.Equal(t, "2026-08-01", e.Day())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClickEvents(t *testing.T) {
	adapter, mock := setupEventLogAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "click_events"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"click_id", "ts", "session_id", "event_id", "content_id", "rank", "dwell_sec",
		}).AddRow("ce_1", "2026-08-01T10:00:05", "s_1", "se_1", "c_1", 2, 45))

	clicks, err := adapter.ListClickEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, clicks, 1)

	c := clicks[0]
	assert.Equal(t, "ce_1", c.ClickID)
	assert.Equal(t, "se_1", c.EventID)
	assert.Equal(t, 2, c.Rank)
	assert.Equal(t, 45, c.DwellSec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContentItems_NullArtistOrShow(t *testing.T) {
	adapter, mock := setupEventLogAdapter(t)

	mock.ExpectQuery(`SELECT .+ FROM "content_catalog"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"content_id", "type", "title", "artist_or_show", "language",
			"explicit_flag", "release_date", "popularity",
		}).
			AddRow("c_1", "movie", "千と千尋の神隠し", nil, "ja", false, "2001-07-20", 88.5).
			AddRow("c_2", "track", "怪物", "YOASOBI", "ja", false, "2021-01-06", 95.1))

	items, err := adapter.ListContentItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "", items[0].ArtistOrShow)
	assert.Equal(t, entities.ContentTypeMovie, items[0].Type)
	assert.Equal(t, "YOASOBI", items[1].ArtistOrShow)
	assert.NoError(t, mock.ExpectationsWereMet())
}
