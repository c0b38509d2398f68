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

// EventLogAdapter implements EventLogRepository against the raw log tables
type EventLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventLogAdapter creates a new event log adapter
func NewEventLogAdapter(client *postgres.Client) repositories.EventLogRepository {
	return &EventLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListContentItems returns the full content catalog
func (a *EventLogAdapter) ListContentItems(ctx context.Context) ([]entities.ContentItem, error) {
	query, args, err := a.db.Select(
		"content_id", "type", "title", "artist_or_show", "language",
		"explicit_flag", "release_date", "popularity",
	).From("content_catalog").
		Order(goqu.C("content_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list content items", err)
	}
	defer rows.Close()

	var items []entities.ContentItem
	for rows.Next() {
		item := entities.ContentItem{}
		var artistOrShow sql.NullString

		err := rows.Scan(
			&item.ContentID,
			&item.Type,
			&item.Title,
			&artistOrShow,
			&item.Language,
			&item.ExplicitFlag,
			&item.ReleaseDate,
			&item.Popularity,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan content item", err)
		}

		item.ArtistOrShow = artistOrShow.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read content items", err)
	}

	return items, nil
}

// ListSearchEvents returns all logged search events
func (a *EventLogAdapter) ListSearchEvents(ctx context.Context) ([]entities.SearchEvent, error) {
	query, args, err := a.db.Select(
		"event_id", "ts", "user_id", "session_id", "locale", "device",
		"query_raw", "query_norm", "vertical", "results_count",
		"has_kanji", "has_kana", "has_romaji", "has_halfwidth_kana", "query_len",
	).From("search_events").
		Order(goqu.C("event_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search events query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search events", err)
	}
	defer rows.Close()

	var events []entities.SearchEvent
	for rows.Next() {
		e := entities.SearchEvent{}
		err := rows.Scan(
			&e.EventID,
			&e.Timestamp,
			&e.UserID,
			&e.SessionID,
			&e.Locale,
			&e.Device,
			&e.QueryRaw,
			&e.QueryNorm,
			&e.Vertical,
			&e.ResultsCount,
			&e.HasKanji,
			&e.HasKana,
			&e.HasRomaji,
			&e.HasHalfwidthKana,
			&e.QueryLen,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read search events", err)
	}

	return events, nil
}

// ListClickEvents returns all logged click events
func (a *EventLogAdapter) ListClickEvents(ctx context.Context) ([]entities.ClickEvent, error) {
	query, args, err := a.db.Select(
		"click_id", "ts", "session_id", "event_id", "content_id", "rank", "dwell_sec",
	).From("click_events").
		Order(goqu.C("click_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build click events query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list click events", err)
	}
	defer rows.Close()

	var clicks []entities.ClickEvent
	for rows.Next() {
		c := entities.ClickEvent{}
		err := rows.Scan(
			&c.ClickID,
			&c.Timestamp,
			&c.SessionID,
			&c.EventID,
			&c.ContentID,
			&c.Rank,
			&c.DwellSec,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan click event", err)
		}
		clicks = append(clicks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read click events", err)
	}

	return clicks, nil
}
