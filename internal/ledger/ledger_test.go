package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/ledger"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/project"
)

func buildProject(milestones ...*milestone.Milestone) *project.Project {
	var total int64
	for _, m := range milestones {
		total += m.Amount
	}

	return &project.Project{
		ID:          uuid.New(),
		Title:       "Marketplace build",
		Currency:    "USD",
		TotalAmount: total,
		Milestones:  milestones,
	}
}

func TestCompute(t *testing.T) {
	p := buildProject(
		&milestone.Milestone{Amount: 100000, Status: milestone.StatusPaid},
		&milestone.Milestone{
			Amount:   200000,
			Status:   milestone.StatusCompleted,
			Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
		},
		&milestone.Milestone{Amount: 50000, Status: milestone.StatusActive},
		&milestone.Milestone{Amount: 25000, Status: milestone.StatusPending},
	)

	totals := ledger.Compute(p)

	assert.Equal(t, int64(100000), totals.Paid)
	assert.Equal(t, int64(200000), totals.Escrow)
	assert.Equal(t, int64(75000), totals.Pending)
}

func TestCompute_SumConservation(t *testing.T) {
	cases := []*project.Project{
		buildProject(),
		buildProject(&milestone.Milestone{Amount: 1, Status: milestone.StatusPending}),
		buildProject(
			&milestone.Milestone{Amount: 333333, Status: milestone.StatusPaid},
			&milestone.Milestone{
				Amount:   333333,
				Status:   milestone.StatusCompleted,
				Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
			},
			&milestone.Milestone{Amount: 333334, Status: milestone.StatusActive},
		),
	}

	for _, p := range cases {
		assert.Equal(t, p.TotalAmount, ledger.Compute(p).Sum())
	}
}

func TestCompute_ActiveWithApprovedDeliveryStaysPending(t *testing.T) {
	// Escrow only starts once the milestone itself is completed; approval
	// alone does not move funds.
	p := buildProject(&milestone.Milestone{
		Amount:   100000,
		Status:   milestone.StatusActive,
		Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
	})

	totals := ledger.Compute(p)
	assert.Zero(t, totals.Escrow)
	assert.Equal(t, int64(100000), totals.Pending)
}
