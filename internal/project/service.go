package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/milestone"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=project
type Repository interface {
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
}

// MilestoneLister loads the fully populated milestones of a project.
// Satisfied by milestone.Service.
type MilestoneLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*milestone.Milestone, error)
}

type Service struct {
	repo       Repository
	milestones MilestoneLister
}

func NewService(repo Repository, milestones MilestoneLister) *Service {
	return &Service{repo: repo, milestones: milestones}
}

// Load returns the full aggregate in one call: the project with its
// milestones, each carrying phases, deliverables, delivery and payment.
// Missing nested entities come back as empty defaults.
func (s *Service) Load(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	ms, err := s.milestones.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Milestones = ms

	return p, nil
}
