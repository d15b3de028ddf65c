package phase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/workflow"
)

func newTestService(t *testing.T) (*phase.Service, *phase.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := phase.NewMockRepository(ctrl)
	svc := phase.NewService(repo, workflow.NewGuard(), notify.Discard{})

	return svc, repo
}

func TestService_AddPhase(t *testing.T) {
	type testCase struct {
		name      string
		params    phase.AddPhaseParams
		setupMock func(m *phase.MockRepository, milestoneID uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: phase.AddPhaseParams{Name: "Design", Order: 1},
			setupMock: func(m *phase.MockRepository, milestoneID uuid.UUID) {
				m.EXPECT().ProjectID(gomock.Any(), milestoneID).Return(uuid.New(), nil)
				m.EXPECT().ListByMilestone(gomock.Any(), milestoneID).Return(nil, nil)
				m.EXPECT().
					CreatePhase(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *phase.WorkPhase) error {
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  phase.AddPhaseParams{Name: "  ", Order: 1},
			wantErr: workflow.ErrValidation,
		},
		{
			name:   "DuplicateOrder",
			params: phase.AddPhaseParams{Name: "Build", Order: 1},
			setupMock: func(m *phase.MockRepository, milestoneID uuid.UUID) {
				m.EXPECT().ProjectID(gomock.Any(), milestoneID).Return(uuid.New(), nil)
				m.EXPECT().
					ListByMilestone(gomock.Any(), milestoneID).
					Return([]*phase.WorkPhase{{Name: "Design", Order: 1}}, nil)
			},
			wantErr: workflow.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			milestoneID := uuid.New()

			if tt.setupMock != nil {
				tt.setupMock(repo, milestoneID)
			}

			got, err := svc.AddPhase(context.Background(), milestoneID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, phase.StatusNotStarted, got.Status)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_ToggleDeliverable_Idempotence(t *testing.T) {
	svc, repo := newTestService(t)

	phaseID := uuid.New()
	deliverableID := uuid.New()

	p := &phase.WorkPhase{
		ID:     phaseID,
		Status: phase.StatusInProgress,
		Deliverables: []phase.Deliverable{
			{ID: deliverableID, PhaseID: phaseID, Name: "wireframes"},
		},
	}

	d := &p.Deliverables[0]

	repo.EXPECT().ProjectIDByDeliverable(gomock.Any(), deliverableID).Return(uuid.New(), nil).Times(2)
	repo.EXPECT().GetDeliverable(gomock.Any(), deliverableID).Return(d, nil).Times(2)
	repo.EXPECT().GetPhase(gomock.Any(), phaseID).Return(p, nil).Times(2)
	repo.EXPECT().UpdateDeliverable(gomock.Any(), d).Return(nil).Times(2)

	first, err := svc.ToggleDeliverable(context.Background(), deliverableID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	// Toggling twice returns to the original value.
	second, err := svc.ToggleDeliverable(context.Background(), deliverableID)
	require.NoError(t, err)
	assert.False(t, second.Completed)
}

func TestService_ToggleDeliverable_UnknownID(t *testing.T) {
	svc, repo := newTestService(t)

	deliverableID := uuid.New()

	repo.EXPECT().
		ProjectIDByDeliverable(gomock.Any(), deliverableID).
		Return(uuid.Nil, workflow.NotFound("deliverable %s not found", deliverableID))

	_, err := svc.ToggleDeliverable(context.Background(), deliverableID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestService_MarkComplete(t *testing.T) {
	svc, repo := newTestService(t)

	phaseID := uuid.New()

	p := &phase.WorkPhase{
		ID:          phaseID,
		MilestoneID: uuid.New(),
		Name:        "Design",
		Status:      phase.StatusInProgress,
		Deliverables: []phase.Deliverable{
			{ID: uuid.New(), Completed: true},
			{ID: uuid.New(), Completed: true},
		},
	}

	repo.EXPECT().ProjectIDByPhase(gomock.Any(), phaseID).Return(uuid.New(), nil)
	repo.EXPECT().GetPhase(gomock.Any(), phaseID).Return(p, nil)
	repo.EXPECT().UpdatePhase(gomock.Any(), p).Return(nil)

	got, err := svc.MarkComplete(context.Background(), phaseID)
	require.NoError(t, err)
	assert.Equal(t, phase.StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestService_MarkComplete_IncompleteDeliverables(t *testing.T) {
	svc, repo := newTestService(t)

	phaseID := uuid.New()

	repo.EXPECT().ProjectIDByPhase(gomock.Any(), phaseID).Return(uuid.New(), nil)
	repo.EXPECT().
		GetPhase(gomock.Any(), phaseID).
		Return(&phase.WorkPhase{
			ID:           phaseID,
			Status:       phase.StatusInProgress,
			Deliverables: []phase.Deliverable{{ID: uuid.New(), Completed: false}},
		}, nil)

	_, err := svc.MarkComplete(context.Background(), phaseID)
	assert.ErrorIs(t, err, workflow.ErrPrecondition)
}

func TestService_LinkFiles_ReplacesSet(t *testing.T) {
	svc, repo := newTestService(t)

	deliverableID := uuid.New()
	fileA := uuid.New()
	fileB := uuid.New()

	d := &phase.Deliverable{
		ID:      deliverableID,
		FileIDs: []uuid.UUID{uuid.New()},
	}

	repo.EXPECT().ProjectIDByDeliverable(gomock.Any(), deliverableID).Return(uuid.New(), nil)
	repo.EXPECT().GetDeliverable(gomock.Any(), deliverableID).Return(d, nil)
	repo.EXPECT().UpdateDeliverable(gomock.Any(), d).Return(nil)

	// Duplicates collapse; the previous set is replaced, not merged.
	got, err := svc.LinkFiles(context.Background(), deliverableID, []uuid.UUID{fileA, fileB, fileA})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fileA, fileB}, got.FileIDs)
}

func TestService_SetStatus_CompletedDisallowed(t *testing.T) {
	svc, repo := newTestService(t)

	phaseID := uuid.New()

	repo.EXPECT().ProjectIDByPhase(gomock.Any(), phaseID).Return(uuid.New(), nil)
	repo.EXPECT().
		GetPhase(gomock.Any(), phaseID).
		Return(&phase.WorkPhase{ID: phaseID, Status: phase.StatusInProgress}, nil)

	_, err := svc.SetStatus(context.Background(), phaseID, phase.StatusCompleted)
	assert.ErrorIs(t, err, workflow.ErrValidation)
}
