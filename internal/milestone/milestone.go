// Package milestone implements the milestone lifecycle: a priced unit of
// project work moving through pending, active, completed and paid, gated on
// its phases and delivery.
package milestone

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/workflow"
)

// Status represents the lifecycle state of a milestone.
//
// The transition graph is total: pending -> active -> completed -> paid.
// No skips, no reverse transitions. Once paid, a milestone is immutable.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaid      Status = "paid"
)

// Milestone represents one payment milestone with its nested work phases,
// at most one delivery and at most one payment.
type Milestone struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Amount      int64 // Amount in cents
	Status      Status
	DueDate     time.Time
	Phases      []*phase.WorkPhase
	Delivery    *delivery.Delivery
	Payment     *payment.Payment
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// PaymentEligible reports whether the client can release payment: the
// delivery is approved and every work phase is completed.
func (m *Milestone) PaymentEligible() bool {
	if m.Delivery == nil || m.Delivery.Status != delivery.StatusApproved {
		return false
	}

	for _, p := range m.Phases {
		if p.Status != phase.StatusCompleted {
			return false
		}
	}

	return true
}

// Progress returns the percentage of completed phases.
func (m *Milestone) Progress() int {
	return phase.AggregateProgress(m.Phases)
}

// AmountLocked reports whether the amount can still change. It locks as
// soon as a payment referencing the milestone leaves the pending state.
func (m *Milestone) AmountLocked() bool {
	return m.Payment.Settled()
}

// Activate moves a pending milestone into active work.
func (m *Milestone) Activate() error {
	if m.Status != StatusPending {
		return workflow.State("milestone is %s: only a pending milestone can be activated", m.Status)
	}

	m.Status = StatusActive

	return nil
}

// MarkCompleted transitions an active milestone to completed once it is
// payment eligible.
func (m *Milestone) MarkCompleted() error {
	if m.Status != StatusActive {
		return workflow.State("milestone is %s: only an active milestone can be completed", m.Status)
	}

	if !m.PaymentEligible() {
		return workflow.Precondition("milestone %q is not payment eligible: delivery must be approved and all phases completed", m.Title)
	}

	m.Status = StatusCompleted

	return nil
}

// MarkPaid transitions a completed milestone to paid. This is the only
// path to paid: it requires a completed payment on a completed milestone.
func (m *Milestone) MarkPaid() error {
	if m.Status != StatusCompleted {
		return workflow.Precondition("milestone is %s: it must be completed before it can be marked paid", m.Status)
	}

	if !m.Payment.Completed() {
		return workflow.Precondition("milestone %q has no completed payment", m.Title)
	}

	m.Status = StatusPaid

	return nil
}

// ValidStatus reports whether s is a known milestone status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusPaid:
		return true
	}

	return false
}
