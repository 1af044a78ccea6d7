package providers

import (
	"context"

	"github.com/caretrack/patientflow/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// queue update events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event scopes
const (
	// EventChannelQueueUpdates is the channel for all queue updates
	EventChannelQueueUpdates = "queue:updates"

	// EventChannelDoctorPrefix is the prefix for doctor-specific channels
	EventChannelDoctorPrefix = "queue:doctor:"
)

// GetDoctorChannel returns the channel name for one doctor's queue
func GetDoctorChannel(doctorID string) string {
	return EventChannelDoctorPrefix + doctorID
}
