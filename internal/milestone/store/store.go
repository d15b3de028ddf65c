// Package store persists milestones and their payments. A milestone loads
// fully hydrated: phases, deliverables, delivery and payment come back with
// it, assembled from the phase and delivery stores.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	deliverystore "github.com/lbastos/worklane/internal/delivery/store"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/payment"
	phasestore "github.com/lbastos/worklane/internal/phase/store"
	"github.com/lbastos/worklane/internal/workflow"
)

type Store struct {
	db         *sql.DB
	phases     *phasestore.Store
	deliveries *deliverystore.Store
}

func New(db *sql.DB) *Store {
	return &Store{
		db:         db,
		phases:     phasestore.New(db),
		deliveries: deliverystore.New(db),
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanMilestone reads a milestone row without its nested aggregates.
// Expected column order: id, project_id, title, description, amount, status,
// due_date, created_at, updated_at
func scanMilestone(s scanner) (*milestone.Milestone, error) {
	var m milestone.Milestone

	var statusStr string

	if err := s.Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Amount, &statusStr,
		&m.DueDate, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Status = milestone.Status(statusStr)

	return &m, nil
}

const selectMilestoneColumns = `
	m.id, m.project_id, m.title, m.description, m.amount, m.status,
	m.due_date, m.created_at, m.updated_at
`

func (s *Store) ProjectID(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID

	err := s.db.QueryRowContext(ctx,
		`SELECT project_id FROM milestones WHERE id = $1`, milestoneID,
	).Scan(&projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, workflow.NotFound("milestone %s not found", milestoneID)
		}

		return uuid.Nil, fmt.Errorf("resolving project id: %w", err)
	}

	return projectID, nil
}

func (s *Store) GetMilestone(ctx context.Context, id uuid.UUID) (*milestone.Milestone, error) {
	query := `SELECT ` + selectMilestoneColumns + `
		FROM milestones m
		WHERE m.id = $1`

	m, err := scanMilestone(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("milestone %s not found", id)
		}

		return nil, fmt.Errorf("getting milestone: %w", err)
	}

	return s.hydrate(ctx, m)
}

func (s *Store) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*milestone.Milestone, error) {
	query := `SELECT ` + selectMilestoneColumns + `
		FROM milestones m
		WHERE m.project_id = $1
		ORDER BY m.due_date ASC, m.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*milestone.Milestone

	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}

		milestones = append(milestones, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}

	for _, m := range milestones {
		if _, err := s.hydrate(ctx, m); err != nil {
			return nil, err
		}
	}

	return milestones, nil
}

func (s *Store) CreateMilestone(ctx context.Context, m *milestone.Milestone) error {
	query := `
		INSERT INTO milestones (project_id, title, description, amount, status, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.ProjectID, m.Title, m.Description, m.Amount, m.Status, m.DueDate,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating milestone: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status milestone.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE milestones SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating milestone status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("milestone %s not found", id)
	}

	return nil
}

func (s *Store) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE milestones SET amount = $2, updated_at = NOW() WHERE id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("updating milestone amount: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("milestone %s not found", id)
	}

	return nil
}

func (s *Store) SavePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (milestone_id, amount, status, method, transaction_id, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.MilestoneID, p.Amount, p.Status, p.Method, p.TransactionID, p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving payment: %w", err)
	}

	return nil
}

func (s *Store) hydrate(ctx context.Context, m *milestone.Milestone) (*milestone.Milestone, error) {
	phases, err := s.phases.ListByMilestone(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	m.Phases = phases

	d, err := s.deliveries.GetByMilestone(ctx, m.ID)
	switch {
	case err == nil:
		m.Delivery = d
	case errors.Is(err, workflow.ErrNotFound):
		// Drafts are created lazily, absence is normal.
	default:
		return nil, err
	}

	p, err := s.latestPayment(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	m.Payment = p

	return m, nil
}

// latestPayment returns the most recent payment for the milestone, or nil
// when none has been recorded yet.
func (s *Store) latestPayment(ctx context.Context, milestoneID uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment

	var statusStr string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, milestone_id, amount, status, method, transaction_id, paid_at, created_at
		FROM payments
		WHERE milestone_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, milestoneID,
	).Scan(&p.ID, &p.MilestoneID, &p.Amount, &statusStr, &p.Method, &p.TransactionID, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	p.Status = payment.Status(statusStr)

	return &p, nil
}
