// Package ledger derives the paid/escrow/pending money view across a
// project's milestones. It is a pure projection: recomputed on every call,
// never cached, so it cannot drift from the stored state.
package ledger

import (
	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/project"
)

// Totals buckets every milestone amount exactly once, so
// Paid + Escrow + Pending always equals the project total.
type Totals struct {
	Paid    int64
	Escrow  int64
	Pending int64
}

// Sum returns the conserved total across all three buckets.
func (t Totals) Sum() int64 {
	return t.Paid + t.Escrow + t.Pending
}

// Compute derives the totals from the current milestone, delivery and
// payment state. Escrow covers milestones whose delivery is approved but
// whose funds have not been disbursed yet.
func Compute(p *project.Project) Totals {
	var t Totals

	for _, m := range p.Milestones {
		switch {
		case m.Status == milestone.StatusPaid:
			t.Paid += m.Amount
		case m.Status == milestone.StatusCompleted && approved(m):
			t.Escrow += m.Amount
		default:
			t.Pending += m.Amount
		}
	}

	return t
}

func approved(m *milestone.Milestone) bool {
	return m.Delivery != nil && m.Delivery.Status == delivery.StatusApproved
}
