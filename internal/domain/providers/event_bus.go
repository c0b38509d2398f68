package providers

import (
	"context"

	"github.com/NorrieF/jp-search-quality/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to run
// lifecycle events. The export collaborator subscribes to learn when the
// output tables have been fully replaced.
type EventBus interface {
	// Publish publishes a run summary to all subscribers on a channel
	Publish(ctx context.Context, channel string, summary *entities.RunSummary) error

	// Subscribe subscribes to run summaries on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RunSummary, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelRunCompleted carries one message per completed metrics run.
const EventChannelRunCompleted = "search_quality:runs"
