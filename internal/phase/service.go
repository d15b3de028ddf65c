package phase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/workflow"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=phase
type Repository interface {
	ProjectID(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error)
	ProjectIDByPhase(ctx context.Context, phaseID uuid.UUID) (uuid.UUID, error)
	ProjectIDByDeliverable(ctx context.Context, deliverableID uuid.UUID) (uuid.UUID, error)

	ListByMilestone(ctx context.Context, milestoneID uuid.UUID) ([]*WorkPhase, error)
	GetPhase(ctx context.Context, id uuid.UUID) (*WorkPhase, error)
	GetDeliverable(ctx context.Context, id uuid.UUID) (*Deliverable, error)
	CreatePhase(ctx context.Context, p *WorkPhase) error
	UpdatePhase(ctx context.Context, p *WorkPhase) error
	CreateDeliverable(ctx context.Context, d *Deliverable) error
	UpdateDeliverable(ctx context.Context, d *Deliverable) error
}

type Service struct {
	repo     Repository
	guard    *workflow.Guard
	notifier notify.Notifier
}

func NewService(repo Repository, guard *workflow.Guard, notifier notify.Notifier) *Service {
	return &Service{repo: repo, guard: guard, notifier: notifier}
}

type AddPhaseParams struct {
	Name        string
	Description string
	Order       int
}

func (s *Service) List(ctx context.Context, milestoneID uuid.UUID) ([]*WorkPhase, error) {
	return s.repo.ListByMilestone(ctx, milestoneID)
}

func (s *Service) Get(ctx context.Context, phaseID uuid.UUID) (*WorkPhase, error) {
	return s.repo.GetPhase(ctx, phaseID)
}

// AddPhase appends a phase to a milestone. Order values must be unique
// within the milestone.
func (s *Service) AddPhase(ctx context.Context, milestoneID uuid.UUID, params AddPhaseParams) (*WorkPhase, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, workflow.Validation("phase name is required")
	}

	projectID, err := s.repo.ProjectID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	existing, err := s.repo.ListByMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	for _, p := range existing {
		if p.Order == params.Order {
			return nil, workflow.Validation("phase order %d already used by %q", params.Order, p.Name)
		}
	}

	p := &WorkPhase{
		MilestoneID: milestoneID,
		Name:        params.Name,
		Description: params.Description,
		Status:      StatusNotStarted,
		Order:       params.Order,
	}

	if err := s.repo.CreatePhase(ctx, p); err != nil {
		return nil, fmt.Errorf("creating phase: %w", err)
	}

	return p, nil
}

// AddDeliverable appends a checklist item to a phase.
func (s *Service) AddDeliverable(ctx context.Context, phaseID uuid.UUID, name string) (*Deliverable, error) {
	if strings.TrimSpace(name) == "" {
		return nil, workflow.Validation("deliverable name is required")
	}

	projectID, err := s.repo.ProjectIDByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	p, err := s.repo.GetPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusCompleted {
		slog.Warn("adding deliverable to a completed phase", "phase_id", p.ID, "name", name)
	}

	d := &Deliverable{
		PhaseID: phaseID,
		Name:    name,
	}

	if err := s.repo.CreateDeliverable(ctx, d); err != nil {
		return nil, fmt.Errorf("creating deliverable: %w", err)
	}

	return d, nil
}

// ToggleDeliverable flips the completion flag of one checklist item.
// Completing the last item only unlocks MarkComplete; the phase status is
// never changed here.
func (s *Service) ToggleDeliverable(ctx context.Context, deliverableID uuid.UUID) (*Deliverable, error) {
	projectID, err := s.repo.ProjectIDByDeliverable(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	d, err := s.repo.GetDeliverable(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetPhase(ctx, d.PhaseID)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusCompleted {
		slog.Warn("toggling deliverable on a completed phase", "phase_id", p.ID, "deliverable_id", deliverableID)
	}

	d.Completed = !d.Completed

	if err := s.repo.UpdateDeliverable(ctx, d); err != nil {
		return nil, fmt.Errorf("updating deliverable: %w", err)
	}

	return d, nil
}

// LinkFiles replaces the deliverable's linked file-id set. The ids are not
// validated against the delivery's file list; a deliverable may point at
// files that do not exist yet.
func (s *Service) LinkFiles(ctx context.Context, deliverableID uuid.UUID, fileIDs []uuid.UUID) (*Deliverable, error) {
	projectID, err := s.repo.ProjectIDByDeliverable(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	d, err := s.repo.GetDeliverable(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	d.FileIDs = dedupe(fileIDs)

	if err := s.repo.UpdateDeliverable(ctx, d); err != nil {
		return nil, fmt.Errorf("updating deliverable: %w", err)
	}

	return d, nil
}

// MarkComplete transitions a phase to completed once every deliverable is
// done.
func (s *Service) MarkComplete(ctx context.Context, phaseID uuid.UUID) (*WorkPhase, error) {
	projectID, err := s.repo.ProjectIDByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	p, err := s.repo.GetPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	if err := p.MarkComplete(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePhase(ctx, p); err != nil {
		return nil, fmt.Errorf("updating phase: %w", err)
	}

	s.notifier.Publish(ctx, notify.Event{
		Type:        notify.EventPhaseCompleted,
		ProjectID:   projectID,
		MilestoneID: p.MilestoneID,
		OccurredAt:  *p.CompletedAt,
		Detail:      p.Name,
	})

	return p, nil
}

// SetStatus overrides a phase status for in_progress/blocked/not_started.
func (s *Service) SetStatus(ctx context.Context, phaseID uuid.UUID, status Status) (*WorkPhase, error) {
	projectID, err := s.repo.ProjectIDByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	p, err := s.repo.GetPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	if err := p.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePhase(ctx, p); err != nil {
		return nil, fmt.Errorf("updating phase: %w", err)
	}

	return p, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		out = append(out, id)
	}

	return out
}
