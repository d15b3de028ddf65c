// Package notify publishes workflow transition events. Delivery of the
// events is fire-and-forget; services never block on or propagate notifier
// failures.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMilestoneActivated EventType = "milestone.activated"
	EventMilestoneCompleted EventType = "milestone.completed"
	EventMilestonePaid      EventType = "milestone.paid"
	EventPhaseCompleted     EventType = "phase.completed"
	EventDeliverySubmitted  EventType = "delivery.submitted"
	EventDeliveryApproved   EventType = "delivery.approved"
	EventRevisionRequested  EventType = "delivery.revision_requested"
)

// Event describes one status transition.
type Event struct {
	Type        EventType
	ProjectID   uuid.UUID
	MilestoneID uuid.UUID
	OccurredAt  time.Time
	Detail      string
}

type Notifier interface {
	Publish(ctx context.Context, e Event)
}

// Log writes events to slog. It is the default notifier for both binaries.
type Log struct{}

func (Log) Publish(_ context.Context, e Event) {
	slog.Info("workflow event",
		"type", e.Type,
		"project_id", e.ProjectID,
		"milestone_id", e.MilestoneID,
		"detail", e.Detail,
	)
}

// Discard drops all events. Used in tests.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}
