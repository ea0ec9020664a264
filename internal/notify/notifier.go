package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// EventHired is the event name pushed to a freelancer who was hired.
const EventHired = "hired"

// HireEvent describes a committed hire, addressed to the winning freelancer.
type HireEvent struct {
	FreelancerID uint64 `json:"freelancer_id"`
	GigID        uint64 `json:"gig_id"`
	GigTitle     string `json:"gig_title"`
	Message      string `json:"message"`
}

// HiredPayload is the body of the "hired" event as seen by the client.
type HiredPayload struct {
	Message  string `json:"message"`
	GigID    uint64 `json:"gigId"`
	GigTitle string `json:"gigTitle"`
}

// NewHireEvent builds the notification for a freelancer hired on a gig.
func NewHireEvent(freelancerID, gigID uint64, gigTitle string) HireEvent {
	return HireEvent{
		FreelancerID: freelancerID,
		GigID:        gigID,
		GigTitle:     gigTitle,
		Message:      fmt.Sprintf("You have been hired for %q!", gigTitle),
	}
}

// Event converts the hire into the event delivered to live connections.
func (e HireEvent) Event() Event {
	return Event{
		Name: EventHired,
		Data: HiredPayload{
			Message:  e.Message,
			GigID:    e.GigID,
			GigTitle: e.GigTitle,
		},
	}
}

// Notifier delivers hire events. Delivery is best effort: a nil error means
// the event was handed off, not that anyone received it.
type Notifier interface {
	NotifyHired(ctx context.Context, event HireEvent) error
}

// LocalNotifier delivers events to connections held by this process.
type LocalNotifier struct {
	registry *Registry
	logger   *zap.Logger
}

// NewLocalNotifier creates a notifier backed by registry.
func NewLocalNotifier(registry *Registry, logger *zap.Logger) *LocalNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalNotifier{
		registry: registry,
		logger:   logger,
	}
}

// NotifyHired pushes the event to the freelancer's room.
func (n *LocalNotifier) NotifyHired(ctx context.Context, event HireEvent) error {
	delivered := n.registry.DeliverToUser(event.FreelancerID, event.Event())
	n.logger.Debug("hire notification delivered",
		zap.Uint64("freelancer_id", event.FreelancerID),
		zap.Uint64("gig_id", event.GigID),
		zap.Int("connections", delivered),
	)
	return nil
}
