// Package phase implements work phases: ordered stages within a milestone,
// each owning a checklist of deliverables.
package phase

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/workflow"
)

// Status represents the lifecycle state of a work phase.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// WorkPhase is one ordered stage within a milestone.
type WorkPhase struct {
	ID           uuid.UUID
	MilestoneID  uuid.UUID
	Name         string
	Description  string
	Status       Status
	Order        int // Unique per milestone, defines the total order
	Deliverables []Deliverable
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

// Deliverable is one checklist item within a phase. FileIDs may reference
// delivery files that do not exist yet; completion never requires attached
// files.
type Deliverable struct {
	ID        uuid.UUID
	PhaseID   uuid.UUID
	Name      string
	Completed bool
	FileIDs   []uuid.UUID
}

// Progress returns the phase completion percentage, rounded to the nearest
// integer. A phase with no deliverables reports 0.
func Progress(p *WorkPhase) int {
	if len(p.Deliverables) == 0 {
		return 0
	}

	done := 0

	for _, d := range p.Deliverables {
		if d.Completed {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(p.Deliverables))))
}

// AggregateProgress returns the percentage of completed phases, rounded to
// the nearest integer. No phases reports 0.
func AggregateProgress(phases []*WorkPhase) int {
	if len(phases) == 0 {
		return 0
	}

	done := 0

	for _, p := range phases {
		if p.Status == StatusCompleted {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(phases))))
}

// AllDeliverablesComplete reports whether every checklist item is done.
// True for an empty checklist.
func (p *WorkPhase) AllDeliverablesComplete() bool {
	for _, d := range p.Deliverables {
		if !d.Completed {
			return false
		}
	}

	return true
}

// MarkComplete transitions the phase to completed. Completing all
// deliverables only unlocks this action; it is never triggered
// automatically.
func (p *WorkPhase) MarkComplete(now time.Time) error {
	if !p.AllDeliverablesComplete() {
		return workflow.Precondition("phase %q has incomplete deliverables", p.Name)
	}

	p.Status = StatusCompleted
	p.CompletedAt = &now

	return nil
}

// SetStatus overrides the phase status. Completed is not a valid target;
// that transition goes through MarkComplete.
func (p *WorkPhase) SetStatus(s Status) error {
	if s == StatusCompleted {
		return workflow.Validation("phase completion must go through mark-complete")
	}

	if !ValidStatus(s) {
		return workflow.Validation("unknown phase status: %s", s)
	}

	p.Status = s

	return nil
}

// ValidStatus reports whether s is a known phase status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}

	return false
}
