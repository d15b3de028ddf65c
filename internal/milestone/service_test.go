package milestone_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/workflow"
)

func newTestService(t *testing.T) (*milestone.Service, *milestone.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := milestone.NewMockRepository(ctrl)
	svc := milestone.NewService(repo, workflow.NewGuard(), notify.Discard{})

	return svc, repo
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    milestone.CreateParams
		setupMock func(m *milestone.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: milestone.CreateParams{
				ProjectID: uuid.New(),
				Title:     "Homepage redesign",
				Amount:    200000,
				DueDate:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *milestone.MockRepository) {
				m.EXPECT().
					CreateMilestone(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ms *milestone.Milestone) error {
						ms.ID = uuid.New()
						ms.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "EmptyTitle",
			params:  milestone.CreateParams{ProjectID: uuid.New(), Title: " ", Amount: 1000},
			wantErr: workflow.ErrValidation,
		},
		{
			name:    "NonPositiveAmount",
			params:  milestone.CreateParams{ProjectID: uuid.New(), Title: "M1", Amount: 0},
			wantErr: workflow.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, milestone.StatusPending, got.Status)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Activate(t *testing.T) {
	svc, repo := newTestService(t)

	id := uuid.New()

	repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
	repo.EXPECT().
		GetMilestone(gomock.Any(), id).
		Return(&milestone.Milestone{ID: id, Status: milestone.StatusPending}, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), id, milestone.StatusActive).Return(nil)

	got, err := svc.Activate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, milestone.StatusActive, got.Status)
}

func TestService_MarkCompleted(t *testing.T) {
	id := uuid.New()

	eligible := &milestone.Milestone{
		ID:       id,
		Status:   milestone.StatusActive,
		Delivery: &delivery.Delivery{Status: delivery.StatusApproved},
		Phases: []*phase.WorkPhase{
			{Status: phase.StatusCompleted},
			{Status: phase.StatusCompleted},
		},
	}

	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		m := *eligible
		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().GetMilestone(gomock.Any(), id).Return(&m, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), id, milestone.StatusCompleted).Return(nil)

		got, err := svc.MarkCompleted(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, milestone.StatusCompleted, got.Status)
	})

	t.Run("NotEligibleSkipsSave", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().
			GetMilestone(gomock.Any(), id).
			Return(&milestone.Milestone{
				ID:       id,
				Status:   milestone.StatusActive,
				Delivery: &delivery.Delivery{Status: delivery.StatusSubmitted},
			}, nil)

		_, err := svc.MarkCompleted(context.Background(), id)
		assert.ErrorIs(t, err, workflow.ErrPrecondition)
	})
}

func TestService_MarkPaid(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().
			GetMilestone(gomock.Any(), id).
			Return(&milestone.Milestone{
				ID:      id,
				Status:  milestone.StatusCompleted,
				Payment: &payment.Payment{Status: payment.StatusCompleted},
			}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), id, milestone.StatusPaid).Return(nil)

		got, err := svc.MarkPaid(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, milestone.StatusPaid, got.Status)
	})

	t.Run("ActiveMilestone", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().
			GetMilestone(gomock.Any(), id).
			Return(&milestone.Milestone{
				ID:      id,
				Status:  milestone.StatusActive,
				Payment: &payment.Payment{Status: payment.StatusCompleted},
			}, nil)

		_, err := svc.MarkPaid(context.Background(), id)
		assert.ErrorIs(t, err, workflow.ErrPrecondition)
	})

	t.Run("UnknownMilestone", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().
			ProjectID(gomock.Any(), id).
			Return(uuid.Nil, workflow.NotFound("milestone %s not found", id))

		_, err := svc.MarkPaid(context.Background(), id)
		assert.ErrorIs(t, err, workflow.ErrNotFound)
	})
}

func TestService_UpdateAmount(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().
			GetMilestone(gomock.Any(), id).
			Return(&milestone.Milestone{ID: id, Amount: 100000, Status: milestone.StatusActive}, nil)
		repo.EXPECT().UpdateAmount(gomock.Any(), id, int64(150000)).Return(nil)

		got, err := svc.UpdateAmount(context.Background(), id, 150000)
		require.NoError(t, err)
		assert.Equal(t, int64(150000), got.Amount)
	})

	t.Run("LockedBySettledPayment", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().ProjectID(gomock.Any(), id).Return(uuid.New(), nil)
		repo.EXPECT().
			GetMilestone(gomock.Any(), id).
			Return(&milestone.Milestone{
				ID:      id,
				Amount:  100000,
				Payment: &payment.Payment{ID: uuid.New(), Status: payment.StatusProcessing},
			}, nil)

		_, err := svc.UpdateAmount(context.Background(), id, 150000)
		assert.ErrorIs(t, err, workflow.ErrState)
	})

	t.Run("NonPositive", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateAmount(context.Background(), id, -5)
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})
}

func TestService_RecordPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo := newTestService(t)

		milestoneID := uuid.New()

		repo.EXPECT().ProjectID(gomock.Any(), milestoneID).Return(uuid.New(), nil)
		repo.EXPECT().
			SavePayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *payment.Payment) error {
				p.ID = uuid.New()
				return nil
			})

		got, err := svc.RecordPayment(context.Background(), milestone.PaymentParams{
			MilestoneID:   milestoneID,
			Amount:        200000,
			Status:        payment.StatusProcessing,
			Method:        "stripe",
			TransactionID: "pi_123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.RecordPayment(context.Background(), milestone.PaymentParams{
			MilestoneID: uuid.New(),
			Amount:      100,
			Status:      payment.Status("wired"),
		})
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})

	t.Run("RepoError", func(t *testing.T) {
		svc, repo := newTestService(t)

		milestoneID := uuid.New()

		repo.EXPECT().ProjectID(gomock.Any(), milestoneID).Return(uuid.New(), nil)
		repo.EXPECT().SavePayment(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := svc.RecordPayment(context.Background(), milestone.PaymentParams{
			MilestoneID: milestoneID,
			Amount:      100,
			Status:      payment.StatusPending,
		})
		assert.Error(t, err)
	})
}
