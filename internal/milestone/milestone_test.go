package milestone_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/workflow"
)

func TestMilestone_PaymentEligible(t *testing.T) {
	tests := []struct {
		name      string
		milestone milestone.Milestone
		want      bool
	}{
		{
			name:      "NoDelivery",
			milestone: milestone.Milestone{Phases: []*phase.WorkPhase{{Status: phase.StatusCompleted}}},
			want:      false,
		},
		{
			name: "DeliverySubmittedNotApproved",
			milestone: milestone.Milestone{
				Delivery: &delivery.Delivery{Status: delivery.StatusSubmitted},
				Phases:   []*phase.WorkPhase{{Status: phase.StatusCompleted}},
			},
			want: false,
		},
		{
			name: "ApprovedButPhaseIncomplete",
			milestone: milestone.Milestone{
				Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
				Phases: []*phase.WorkPhase{
					{Status: phase.StatusCompleted},
					{Status: phase.StatusInProgress},
				},
			},
			want: false,
		},
		{
			name: "ApprovedAndAllPhasesComplete",
			milestone: milestone.Milestone{
				Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
				Phases: []*phase.WorkPhase{
					{Status: phase.StatusCompleted},
					{Status: phase.StatusCompleted},
				},
			},
			want: true,
		},
		{
			name: "ApprovedWithNoPhases",
			milestone: milestone.Milestone{
				Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.milestone.PaymentEligible())
		})
	}
}

func TestMilestone_Activate(t *testing.T) {
	m := milestone.Milestone{Status: milestone.StatusPending}
	require.NoError(t, m.Activate())
	assert.Equal(t, milestone.StatusActive, m.Status)

	// No re-activation and no activation of later states.
	for _, status := range []milestone.Status{milestone.StatusActive, milestone.StatusCompleted, milestone.StatusPaid} {
		m := milestone.Milestone{Status: status}
		assert.ErrorIs(t, m.Activate(), workflow.ErrState)
	}
}

func TestMilestone_MarkCompleted(t *testing.T) {
	eligible := func(status milestone.Status) milestone.Milestone {
		return milestone.Milestone{
			Status:   status,
			Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
			Phases:   []*phase.WorkPhase{{Status: phase.StatusCompleted}},
		}
	}

	t.Run("Success", func(t *testing.T) {
		m := eligible(milestone.StatusActive)
		require.NoError(t, m.MarkCompleted())
		assert.Equal(t, milestone.StatusCompleted, m.Status)
	})

	t.Run("NotEligible", func(t *testing.T) {
		m := milestone.Milestone{
			Status:   milestone.StatusActive,
			Delivery: &delivery.Delivery{Status: delivery.StatusSubmitted},
		}
		assert.ErrorIs(t, m.MarkCompleted(), workflow.ErrPrecondition)
	})

	t.Run("NoSkipFromPending", func(t *testing.T) {
		m := eligible(milestone.StatusPending)
		assert.ErrorIs(t, m.MarkCompleted(), workflow.ErrState)
	})
}

func TestMilestone_MarkPaid(t *testing.T) {
	completedPayment := &payment.Payment{ID: uuid.New(), Status: payment.StatusCompleted}

	t.Run("Success", func(t *testing.T) {
		m := milestone.Milestone{Status: milestone.StatusCompleted, Payment: completedPayment}
		require.NoError(t, m.MarkPaid())
		assert.Equal(t, milestone.StatusPaid, m.Status)
	})

	t.Run("ActiveFailsRegardlessOfPayment", func(t *testing.T) {
		m := milestone.Milestone{Status: milestone.StatusActive, Payment: completedPayment}
		assert.ErrorIs(t, m.MarkPaid(), workflow.ErrPrecondition)
	})

	t.Run("NoPayment", func(t *testing.T) {
		m := milestone.Milestone{Status: milestone.StatusCompleted}
		assert.ErrorIs(t, m.MarkPaid(), workflow.ErrPrecondition)
	})

	t.Run("PaymentStillProcessing", func(t *testing.T) {
		m := milestone.Milestone{
			Status:  milestone.StatusCompleted,
			Payment: &payment.Payment{Status: payment.StatusProcessing},
		}
		assert.ErrorIs(t, m.MarkPaid(), workflow.ErrPrecondition)
	})
}

func TestMilestone_AmountLocked(t *testing.T) {
	m := milestone.Milestone{}
	assert.False(t, m.AmountLocked())

	m.Payment = &payment.Payment{Status: payment.StatusPending}
	assert.False(t, m.AmountLocked())

	m.Payment.Status = payment.StatusProcessing
	assert.True(t, m.AmountLocked())

	m.Payment.Status = payment.StatusFailed
	assert.True(t, m.AmountLocked())
}

func TestMilestone_Progress(t *testing.T) {
	// Two phases, each with two deliverables: completing everything and
	// marking both phases complete yields 100.
	m := milestone.Milestone{
		Phases: []*phase.WorkPhase{
			{Status: phase.StatusCompleted},
			{Status: phase.StatusCompleted},
		},
	}
	assert.Equal(t, 100, m.Progress())

	m.Phases[1].Status = phase.StatusInProgress
	assert.Equal(t, 50, m.Progress())
}
