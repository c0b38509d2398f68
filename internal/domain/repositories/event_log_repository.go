package repositories

import (
	"context"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// EventLogRepository provides read-only access to the three input relations.
// The ingestion collaborator owns writes; a metrics run reads one full
// snapshot of each.
type EventLogRepository interface {
	// ListContentItems returns the full content catalog
	ListContentItems(ctx context.Context) ([]entities.ContentItem, error)

	// ListSearchEvents returns all logged search events
	ListSearchEvents(ctx context.Context) ([]entities.SearchEvent, error)

	// ListClickEvents returns all logged click events
	ListClickEvents(ctx context.Context) ([]entities.ClickEvent, error)
}
