package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/workflow"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPhase reads a work phase row without its deliverables.
// Expected column order: id, milestone_id, name, description, status, ord, completed_at, created_at
func scanPhase(s scanner) (*phase.WorkPhase, error) {
	var p phase.WorkPhase

	var statusStr string

	if err := s.Scan(
		&p.ID, &p.MilestoneID, &p.Name, &p.Description, &statusStr, &p.Order,
		&p.CompletedAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = phase.Status(statusStr)

	return &p, nil
}

const selectPhaseColumns = `
	p.id, p.milestone_id, p.name, p.description, p.status, p.ord, p.completed_at, p.created_at
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

func (s *Store) ProjectIDByPhase(ctx context.Context, phaseID uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID

	err := s.db.QueryRowContext(ctx, `
		SELECT m.project_id
		FROM work_phases p
		JOIN milestones m ON m.id = p.milestone_id
		WHERE p.id = $1`, phaseID,
	).Scan(&projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, workflow.NotFound("phase %s not found", phaseID)
		}

		return uuid.Nil, fmt.Errorf("resolving project id: %w", err)
	}

	return projectID, nil
}

func (s *Store) ProjectIDByDeliverable(ctx context.Context, deliverableID uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID

	err := s.db.QueryRowContext(ctx, `
		SELECT m.project_id
		FROM phase_deliverables d
		JOIN work_phases p ON p.id = d.phase_id
		JOIN milestones m ON m.id = p.milestone_id
		WHERE d.id = $1`, deliverableID,
	).Scan(&projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, workflow.NotFound("deliverable %s not found", deliverableID)
		}

		return uuid.Nil, fmt.Errorf("resolving project id: %w", err)
	}

	return projectID, nil
}

func (s *Store) ListByMilestone(ctx context.Context, milestoneID uuid.UUID) ([]*phase.WorkPhase, error) {
	query := `SELECT ` + selectPhaseColumns + `
		FROM work_phases p
		WHERE p.milestone_id = $1
		ORDER BY p.ord ASC`

	rows, err := s.db.QueryContext(ctx, query, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*phase.WorkPhase

	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}

		phases = append(phases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}

	for _, p := range phases {
		deliverables, err := s.listDeliverables(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		p.Deliverables = deliverables
	}

	return phases, nil
}

func (s *Store) GetPhase(ctx context.Context, id uuid.UUID) (*phase.WorkPhase, error) {
	query := `SELECT ` + selectPhaseColumns + `
		FROM work_phases p
		WHERE p.id = $1`

	p, err := scanPhase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("phase %s not found", id)
		}

		return nil, fmt.Errorf("getting phase: %w", err)
	}

	deliverables, err := s.listDeliverables(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Deliverables = deliverables

	return p, nil
}

func (s *Store) GetDeliverable(ctx context.Context, id uuid.UUID) (*phase.Deliverable, error) {
	var d phase.Deliverable

	err := s.db.QueryRowContext(ctx,
		`SELECT id, phase_id, name, completed FROM phase_deliverables WHERE id = $1`, id,
	).Scan(&d.ID, &d.PhaseID, &d.Name, &d.Completed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("deliverable %s not found", id)
		}

		return nil, fmt.Errorf("getting deliverable: %w", err)
	}

	fileIDs, err := s.listFileLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	d.FileIDs = fileIDs

	return &d, nil
}

func (s *Store) CreatePhase(ctx context.Context, p *phase.WorkPhase) error {
	query := `
		INSERT INTO work_phases (milestone_id, name, description, status, ord, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.MilestoneID, p.Name, p.Description, p.Status, p.Order,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating phase: %w", err)
	}

	return nil
}

func (s *Store) UpdatePhase(ctx context.Context, p *phase.WorkPhase) error {
	query := `
		UPDATE work_phases
		SET name = $2, description = $3, status = $4, ord = $5, completed_at = $6
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Status, p.Order, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("phase %s not found", p.ID)
	}

	return nil
}

func (s *Store) CreateDeliverable(ctx context.Context, d *phase.Deliverable) error {
	query := `
		INSERT INTO phase_deliverables (phase_id, name, completed)
		VALUES ($1, $2, FALSE)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, d.PhaseID, d.Name).Scan(&d.ID); err != nil {
		return fmt.Errorf("creating deliverable: %w", err)
	}

	return nil
}

func (s *Store) UpdateDeliverable(ctx context.Context, d *phase.Deliverable) error {
	query := `
		UPDATE phase_deliverables
		SET name = $2, completed = $3
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, d.ID, d.Name, d.Completed)
	if err != nil {
		return fmt.Errorf("updating deliverable: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("deliverable %s not found", d.ID)
	}

	if err := s.replaceFileLinks(ctx, d.ID, d.FileIDs); err != nil {
		return err
	}

	return nil
}

func (s *Store) listDeliverables(ctx context.Context, phaseID uuid.UUID) ([]phase.Deliverable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.phase_id, d.name, d.completed
		FROM phase_deliverables d
		WHERE d.phase_id = $1
		ORDER BY d.created_at ASC`, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing deliverables: %w", err)
	}
	defer rows.Close()

	var deliverables []phase.Deliverable

	for rows.Next() {
		var d phase.Deliverable

		if err := rows.Scan(&d.ID, &d.PhaseID, &d.Name, &d.Completed); err != nil {
			return nil, fmt.Errorf("scanning deliverable: %w", err)
		}

		deliverables = append(deliverables, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing deliverables: %w", err)
	}

	for i := range deliverables {
		fileIDs, err := s.listFileLinks(ctx, deliverables[i].ID)
		if err != nil {
			return nil, err
		}

		deliverables[i].FileIDs = fileIDs
	}

	return deliverables, nil
}

func (s *Store) listFileLinks(ctx context.Context, deliverableID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_id FROM deliverable_file_links WHERE deliverable_id = $1`, deliverableID)
	if err != nil {
		return nil, fmt.Errorf("listing file links: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning file link: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing file links: %w", err)
	}

	return ids, nil
}

func (s *Store) replaceFileLinks(ctx context.Context, deliverableID uuid.UUID, fileIDs []uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM deliverable_file_links WHERE deliverable_id = $1`, deliverableID,
	); err != nil {
		return fmt.Errorf("clearing file links: %w", err)
	}

	for _, fileID := range fileIDs {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO deliverable_file_links (deliverable_id, file_id)
			VALUES ($1, $2)`, deliverableID, fileID,
		); err != nil {
			return fmt.Errorf("linking file: %w", err)
		}
	}

	return nil
}
