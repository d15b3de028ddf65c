// Package importer turns uploaded plan files into milestone and phase
// create-params. Freelancers draft project plans in a spreadsheet and upload
// the CSV export; the engine builds the pending milestones from it.
package importer

import (
	"io"
	"time"
)

type Format string

const (
	FormatPlanCSV Format = "plan_csv"
)

// PlanMilestone is one milestone row group from a plan file, not yet
// persisted.
type PlanMilestone struct {
	Title   string
	Amount  int64 // Amount in cents
	DueDate time.Time
	Phases  []PlanPhase
}

// PlanPhase is one work phase within a planned milestone.
type PlanPhase struct {
	Name         string
	Order        int
	Deliverables []string
}

type Parser interface {
	Parse(r io.Reader) ([]PlanMilestone, error)
}
