// Package payment holds the payment record attached to a milestone.
// Payments are created by the payment provider integration; the workflow
// engine only reads their status to gate milestone completion.
package payment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a payment.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Payment represents a client payment against one milestone.
type Payment struct {
	ID            uuid.UUID
	MilestoneID   uuid.UUID
	Amount        int64 // Amount in cents
	Status        Status
	Method        string
	TransactionID string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

// Completed reports whether the funds have actually been disbursed.
func (p *Payment) Completed() bool {
	return p != nil && p.Status == StatusCompleted
}

// Settled reports whether the payment has left the pending state. Once it
// has, the owning milestone's amount is locked.
func (p *Payment) Settled() bool {
	return p != nil && p.Status != StatusPending
}

// ValidStatus reports whether s is a known payment status. Used at the
// deserialization boundary.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}

	return false
}
