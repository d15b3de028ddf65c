package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/project"
	"github.com/lbastos/worklane/internal/workflow"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var p project.Project

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, client_name, currency, total_amount, created_at
		FROM projects
		WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.ClientName, &p.Currency, &p.TotalAmount, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("project %s not found", id)
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &p, nil
}
