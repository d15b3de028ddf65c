package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
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

// scanDelivery reads a delivery row without its files and links.
// Expected column order: id, milestone_id, status, notes, revision_notes,
// created_at, submitted_at, approved_at
func scanDelivery(s scanner) (*delivery.Delivery, error) {
	var d delivery.Delivery

	var statusStr string

	if err := s.Scan(
		&d.ID, &d.MilestoneID, &statusStr, &d.Notes, &d.RevisionNotes,
		&d.CreatedAt, &d.SubmittedAt, &d.ApprovedAt,
	); err != nil {
		return nil, err
	}

	d.Status = delivery.Status(statusStr)

	return &d, nil
}

const selectDeliveryColumns = `
	d.id, d.milestone_id, d.status, d.notes, d.revision_notes,
	d.created_at, d.submitted_at, d.approved_at
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

func (s *Store) ProjectIDByDelivery(ctx context.Context, deliveryID uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID

	err := s.db.QueryRowContext(ctx, `
		SELECT m.project_id
		FROM deliveries d
		JOIN milestones m ON m.id = d.milestone_id
		WHERE d.id = $1`, deliveryID,
	).Scan(&projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, workflow.NotFound("delivery %s not found", deliveryID)
		}

		return uuid.Nil, fmt.Errorf("resolving project id: %w", err)
	}

	return projectID, nil
}

func (s *Store) GetByMilestone(ctx context.Context, milestoneID uuid.UUID) (*delivery.Delivery, error) {
	query := `SELECT ` + selectDeliveryColumns + `
		FROM deliveries d
		WHERE d.milestone_id = $1`

	d, err := scanDelivery(s.db.QueryRowContext(ctx, query, milestoneID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("milestone %s has no delivery", milestoneID)
		}

		return nil, fmt.Errorf("getting delivery: %w", err)
	}

	return s.loadAttachments(ctx, d)
}

func (s *Store) GetDelivery(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	query := `SELECT ` + selectDeliveryColumns + `
		FROM deliveries d
		WHERE d.id = $1`

	d, err := scanDelivery(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workflow.NotFound("delivery %s not found", id)
		}

		return nil, fmt.Errorf("getting delivery: %w", err)
	}

	return s.loadAttachments(ctx, d)
}

func (s *Store) CreateDelivery(ctx context.Context, d *delivery.Delivery) error {
	query := `
		INSERT INTO deliveries (milestone_id, status, notes, revision_notes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.MilestoneID, d.Status, d.Notes, d.RevisionNotes,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating delivery: %w", err)
	}

	for _, f := range d.Files {
		if err := s.AddFile(ctx, d.ID, f); err != nil {
			return err
		}
	}

	return s.ReplaceLinks(ctx, d.ID, d.Links)
}

func (s *Store) UpdateDelivery(ctx context.Context, d *delivery.Delivery) error {
	query := `
		UPDATE deliveries
		SET status = $2, notes = $3, revision_notes = $4, submitted_at = $5, approved_at = $6
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		d.ID, d.Status, d.Notes, d.RevisionNotes, d.SubmittedAt, d.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("updating delivery: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("delivery %s not found", d.ID)
	}

	return nil
}

func (s *Store) ReplaceLinks(ctx context.Context, deliveryID uuid.UUID, links []delivery.ExternalLink) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM external_links WHERE delivery_id = $1`, deliveryID,
	); err != nil {
		return fmt.Errorf("clearing links: %w", err)
	}

	for _, l := range links {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO external_links (id, delivery_id, title, url, type)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, deliveryID, l.Title, l.URL, l.Type,
		); err != nil {
			return fmt.Errorf("inserting link: %w", err)
		}
	}

	return nil
}

// AddFile inserts a file record. The id is assigned by the caller, file
// versioning happens in the domain layer before the insert.
func (s *Store) AddFile(ctx context.Context, deliveryID uuid.UUID, f delivery.File) error {
	query := `
		INSERT INTO delivery_files (id, delivery_id, name, size, mime_type, url, version, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if _, err := s.db.ExecContext(ctx, query,
		f.ID, deliveryID, f.Name, f.Size, f.MimeType, f.URL, f.Version, f.UploadedAt,
	); err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}

	return nil
}

func (s *Store) RemoveFile(ctx context.Context, deliveryID, fileID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM delivery_files WHERE id = $1 AND delivery_id = $2`, fileID, deliveryID)
	if err != nil {
		return fmt.Errorf("removing file: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return workflow.NotFound("file %s not found", fileID)
	}

	return nil
}

func (s *Store) loadAttachments(ctx context.Context, d *delivery.Delivery) (*delivery.Delivery, error) {
	files, err := s.listFiles(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	links, err := s.listLinks(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	d.Files = files
	d.Links = links

	return d, nil
}

func (s *Store) listFiles(ctx context.Context, deliveryID uuid.UUID) ([]delivery.File, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, size, mime_type, url, version, uploaded_at
		FROM delivery_files
		WHERE delivery_id = $1
		ORDER BY uploaded_at ASC`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var files []delivery.File

	for rows.Next() {
		var f delivery.File

		if err := rows.Scan(&f.ID, &f.Name, &f.Size, &f.MimeType, &f.URL, &f.Version, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}

		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	return files, nil
}

func (s *Store) listLinks(ctx context.Context, deliveryID uuid.UUID) ([]delivery.ExternalLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, type
		FROM external_links
		WHERE delivery_id = $1`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var links []delivery.ExternalLink

	for rows.Next() {
		var l delivery.ExternalLink

		var typeStr string

		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &typeStr); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}

		l.Type = delivery.LinkType(typeStr)
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	return links, nil
}
