package milestone

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/workflow"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=milestone
type Repository interface {
	ProjectID(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error)

	// GetMilestone returns the milestone with phases, delivery and payment
	// loaded. Cross-entity checks (eligibility, payment gating) rely on it.
	GetMilestone(ctx context.Context, id uuid.UUID) (*Milestone, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Milestone, error)
	CreateMilestone(ctx context.Context, m *Milestone) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) error
	SavePayment(ctx context.Context, p *payment.Payment) error
}

type Service struct {
	repo     Repository
	guard    *workflow.Guard
	notifier notify.Notifier
}

func NewService(repo Repository, guard *workflow.Guard, notifier notify.Notifier) *Service {
	return &Service{repo: repo, guard: guard, notifier: notifier}
}

type CreateParams struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Amount      int64
	DueDate     time.Time
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Milestone, error) {
	return s.repo.GetMilestone(ctx, id)
}

func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Milestone, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Milestone, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, workflow.Validation("milestone title is required")
	}

	if params.Amount <= 0 {
		return nil, workflow.Validation("milestone amount must be positive")
	}

	unlock := s.guard.Lock(params.ProjectID)
	defer unlock()

	m := &Milestone{
		ProjectID:   params.ProjectID,
		Title:       params.Title,
		Description: params.Description,
		Amount:      params.Amount,
		Status:      StatusPending,
		DueDate:     params.DueDate,
	}

	if err := s.repo.CreateMilestone(ctx, m); err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}

	return m, nil
}

// Activate moves a pending milestone into active work.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Milestone, error) {
	return s.transition(ctx, id, notify.EventMilestoneActivated, (*Milestone).Activate)
}

// MarkCompleted transitions a milestone to completed. Requires an approved
// delivery and all phases completed.
func (s *Service) MarkCompleted(ctx context.Context, id uuid.UUID) (*Milestone, error) {
	return s.transition(ctx, id, notify.EventMilestoneCompleted, (*Milestone).MarkCompleted)
}

// MarkPaid transitions a completed milestone to paid once its payment has
// completed.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*Milestone, error) {
	return s.transition(ctx, id, notify.EventMilestonePaid, (*Milestone).MarkPaid)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, event notify.EventType, apply func(*Milestone) error) (*Milestone, error) {
	projectID, err := s.repo.ProjectID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	m, err := s.repo.GetMilestone(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(m); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, m.Status); err != nil {
		return nil, fmt.Errorf("updating milestone status: %w", err)
	}

	s.notifier.Publish(ctx, notify.Event{
		Type:        event,
		ProjectID:   projectID,
		MilestoneID: id,
		OccurredAt:  time.Now().UTC(),
		Detail:      m.Title,
	})

	return m, nil
}

// UpdateAmount changes the milestone price. The amount locks as soon as a
// payment referencing the milestone leaves pending.
func (s *Service) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*Milestone, error) {
	if amount <= 0 {
		return nil, workflow.Validation("milestone amount must be positive")
	}

	projectID, err := s.repo.ProjectID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	m, err := s.repo.GetMilestone(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.AmountLocked() {
		return nil, workflow.State("milestone amount is locked: payment %s is %s", m.Payment.ID, m.Payment.Status)
	}

	m.Amount = amount

	if err := s.repo.UpdateAmount(ctx, id, amount); err != nil {
		return nil, fmt.Errorf("updating milestone amount: %w", err)
	}

	return m, nil
}

type PaymentParams struct {
	MilestoneID   uuid.UUID
	Amount        int64
	Status        payment.Status
	Method        string
	TransactionID string
	PaidAt        *time.Time
}

// RecordPayment persists a payment record produced by the external payment
// provider. The engine never initiates payments; it stores what the
// provider reports and reads the status when gating markPaid.
func (s *Service) RecordPayment(ctx context.Context, params PaymentParams) (*payment.Payment, error) {
	if !payment.ValidStatus(params.Status) {
		return nil, workflow.Validation("unknown payment status: %s", params.Status)
	}

	if params.Amount <= 0 {
		return nil, workflow.Validation("payment amount must be positive")
	}

	projectID, err := s.repo.ProjectID(ctx, params.MilestoneID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	p := &payment.Payment{
		MilestoneID:   params.MilestoneID,
		Amount:        params.Amount,
		Status:        params.Status,
		Method:        params.Method,
		TransactionID: params.TransactionID,
		PaidAt:        params.PaidAt,
	}

	if err := s.repo.SavePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("saving payment: %w", err)
	}

	return p, nil
}
