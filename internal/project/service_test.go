package project_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/project"
	"github.com/lbastos/worklane/internal/workflow"
)

func TestService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := project.NewMockRepository(ctrl)
	lister := project.NewMockMilestoneLister(ctrl)
	svc := project.NewService(repo, lister)

	projectID := uuid.New()

	repo.EXPECT().
		GetProject(gomock.Any(), projectID).
		Return(&project.Project{ID: projectID, Title: "Brand refresh", Currency: "EUR", TotalAmount: 500000}, nil)
	lister.EXPECT().
		ListByProject(gomock.Any(), projectID).
		Return([]*milestone.Milestone{
			{ID: uuid.New(), Title: "Logo", Amount: 200000},
			{ID: uuid.New(), Title: "Site", Amount: 300000},
		}, nil)

	got, err := svc.Load(context.Background(), projectID)
	require.NoError(t, err)
	assert.Len(t, got.Milestones, 2)
	assert.Equal(t, "Brand refresh", got.Title)
}

func TestService_Load_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := project.NewMockRepository(ctrl)
	svc := project.NewService(repo, project.NewMockMilestoneLister(ctrl))

	projectID := uuid.New()

	repo.EXPECT().
		GetProject(gomock.Any(), projectID).
		Return(nil, workflow.NotFound("project %s not found", projectID))

	_, err := svc.Load(context.Background(), projectID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
