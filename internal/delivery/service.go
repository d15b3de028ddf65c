package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/workflow"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=delivery
type Repository interface {
	// ProjectID resolves the owning project for a milestone. Ownership is
	// immutable, so the lookup is safe before taking the project guard.
	ProjectID(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error)
	ProjectIDByDelivery(ctx context.Context, deliveryID uuid.UUID) (uuid.UUID, error)

	GetByMilestone(ctx context.Context, milestoneID uuid.UUID) (*Delivery, error)
	GetDelivery(ctx context.Context, id uuid.UUID) (*Delivery, error)
	CreateDelivery(ctx context.Context, d *Delivery) error
	UpdateDelivery(ctx context.Context, d *Delivery) error
	ReplaceLinks(ctx context.Context, deliveryID uuid.UUID, links []ExternalLink) error
	AddFile(ctx context.Context, deliveryID uuid.UUID, f File) error
	RemoveFile(ctx context.Context, deliveryID, fileID uuid.UUID) error
}

type Service struct {
	repo     Repository
	guard    *workflow.Guard
	notifier notify.Notifier
}

func NewService(repo Repository, guard *workflow.Guard, notifier notify.Notifier) *Service {
	return &Service{repo: repo, guard: guard, notifier: notifier}
}

// FileParams describes an uploaded file as reported by the storage
// collaborator once the raw upload completes.
type FileParams struct {
	Name       string
	Size       int64
	MimeType   string
	URL        string
	UploadedAt time.Time
}

type LinkParams struct {
	Title string
	URL   string
	Type  LinkType
}

// DraftParams is the payload for SaveDraft. Links and notes replace the
// current values; files are appended through the versioning rules.
type DraftParams struct {
	Files []FileParams
	Links []LinkParams
	Notes string
}

func (s *Service) Get(ctx context.Context, milestoneID uuid.UUID) (*Delivery, error) {
	return s.repo.GetByMilestone(ctx, milestoneID)
}

// SaveDraft creates the milestone's delivery if absent, or updates it in
// place. There is no completeness precondition; partial drafts are fine.
func (s *Service) SaveDraft(ctx context.Context, milestoneID uuid.UUID, params DraftParams) (*Delivery, error) {
	projectID, err := s.repo.ProjectID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	links, err := buildLinks(params.Links)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.GetByMilestone(ctx, milestoneID)

	switch {
	case err == nil:
		if d.IsReadOnly() {
			return nil, workflow.State("delivery is %s: request a revision before editing", d.Status)
		}

		d.Notes = params.Notes
		d.Links = links

		if err := s.appendFiles(ctx, d, params.Files); err != nil {
			return nil, err
		}

		if err := s.repo.UpdateDelivery(ctx, d); err != nil {
			return nil, fmt.Errorf("updating delivery: %w", err)
		}

		if err := s.repo.ReplaceLinks(ctx, d.ID, links); err != nil {
			return nil, fmt.Errorf("replacing links: %w", err)
		}

		return d, nil

	case isNotFound(err):
		d = &Delivery{
			MilestoneID: milestoneID,
			Status:      StatusDraft,
			Links:       links,
			Notes:       params.Notes,
		}

		for _, p := range params.Files {
			if _, err := d.AddFile(fileFromParams(p)); err != nil {
				return nil, err
			}
		}

		if err := s.repo.CreateDelivery(ctx, d); err != nil {
			return nil, fmt.Errorf("creating delivery: %w", err)
		}

		return d, nil

	default:
		return nil, err
	}
}

// Submit transitions the delivery to submitted after validating that notes
// are present and at least one file or link is attached.
func (s *Service) Submit(ctx context.Context, milestoneID uuid.UUID) (*Delivery, error) {
	d, projectID, unlock, err := s.lockedDelivery(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := d.Submit(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDelivery(ctx, d); err != nil {
		return nil, fmt.Errorf("updating delivery: %w", err)
	}

	s.notifier.Publish(ctx, notify.Event{
		Type:        notify.EventDeliverySubmitted,
		ProjectID:   projectID,
		MilestoneID: milestoneID,
		OccurredAt:  *d.SubmittedAt,
	})

	return d, nil
}

// RequestRevision records client feedback and reopens the delivery for
// edits. Only valid from submitted.
func (s *Service) RequestRevision(ctx context.Context, milestoneID uuid.UUID, notes string) (*Delivery, error) {
	d, projectID, unlock, err := s.lockedDelivery(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := d.RequestRevision(notes, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDelivery(ctx, d); err != nil {
		return nil, fmt.Errorf("updating delivery: %w", err)
	}

	s.notifier.Publish(ctx, notify.Event{
		Type:        notify.EventRevisionRequested,
		ProjectID:   projectID,
		MilestoneID: milestoneID,
		OccurredAt:  time.Now().UTC(),
		Detail:      notes,
	})

	return d, nil
}

// Approve accepts a submitted delivery.
func (s *Service) Approve(ctx context.Context, milestoneID uuid.UUID) (*Delivery, error) {
	d, projectID, unlock, err := s.lockedDelivery(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := d.Approve(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDelivery(ctx, d); err != nil {
		return nil, fmt.Errorf("updating delivery: %w", err)
	}

	s.notifier.Publish(ctx, notify.Event{
		Type:        notify.EventDeliveryApproved,
		ProjectID:   projectID,
		MilestoneID: milestoneID,
		OccurredAt:  *d.ApprovedAt,
	})

	return d, nil
}

// AddFile registers uploaded file metadata against the milestone's
// delivery, assigning the next version for the file name.
func (s *Service) AddFile(ctx context.Context, milestoneID uuid.UUID, params FileParams) (File, error) {
	d, _, unlock, err := s.lockedDelivery(ctx, milestoneID)
	if err != nil {
		return File{}, err
	}
	defer unlock()

	f, err := d.AddFile(fileFromParams(params))
	if err != nil {
		return File{}, err
	}

	if err := s.repo.AddFile(ctx, d.ID, f); err != nil {
		return File{}, fmt.Errorf("adding file: %w", err)
	}

	return f, nil
}

// RemoveFile deletes a file record while the delivery is still mutable.
func (s *Service) RemoveFile(ctx context.Context, deliveryID, fileID uuid.UUID) error {
	projectID, err := s.repo.ProjectIDByDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(projectID)
	defer unlock()

	d, err := s.repo.GetDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}

	if err := d.RemoveFile(fileID); err != nil {
		return err
	}

	if err := s.repo.RemoveFile(ctx, deliveryID, fileID); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}

	return nil
}

func (s *Service) lockedDelivery(ctx context.Context, milestoneID uuid.UUID) (*Delivery, uuid.UUID, func(), error) {
	projectID, err := s.repo.ProjectID(ctx, milestoneID)
	if err != nil {
		return nil, uuid.Nil, nil, err
	}

	unlock := s.guard.Lock(projectID)

	d, err := s.repo.GetByMilestone(ctx, milestoneID)
	if err != nil {
		unlock()
		return nil, uuid.Nil, nil, err
	}

	return d, projectID, unlock, nil
}

func (s *Service) appendFiles(ctx context.Context, d *Delivery, params []FileParams) error {
	for _, p := range params {
		f, err := d.AddFile(fileFromParams(p))
		if err != nil {
			return err
		}

		if err := s.repo.AddFile(ctx, d.ID, f); err != nil {
			return fmt.Errorf("adding file: %w", err)
		}
	}

	return nil
}

func fileFromParams(p FileParams) File {
	uploaded := p.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now().UTC()
	}

	return File{
		ID:         uuid.New(),
		Name:       p.Name,
		Size:       p.Size,
		MimeType:   p.MimeType,
		URL:        p.URL,
		UploadedAt: uploaded,
	}
}

func buildLinks(params []LinkParams) ([]ExternalLink, error) {
	links := make([]ExternalLink, 0, len(params))

	for _, p := range params {
		if strings.TrimSpace(p.URL) == "" {
			return nil, workflow.Validation("link url is required")
		}

		if !ValidLinkType(p.Type) {
			return nil, workflow.Validation("unknown link type: %s", p.Type)
		}

		links = append(links, ExternalLink{
			ID:    uuid.New(),
			Title: p.Title,
			URL:   p.URL,
			Type:  p.Type,
		})
	}

	return links, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, workflow.ErrNotFound)
}
