package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
)

type deliveryResponse struct {
	ID            uuid.UUID       `json:"id"`
	MilestoneID   uuid.UUID       `json:"milestone_id"`
	Status        delivery.Status `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	RevisionNotes string          `json:"revision_notes,omitempty"`
	Files         []fileResponse  `json:"files"`
	Links         []linkResponse  `json:"links"`
	CreatedAt     time.Time       `json:"created_at"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
}

type fileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type,omitempty"`
	URL        string    `json:"url,omitempty"`
	Version    int       `json:"version"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type linkResponse struct {
	ID    uuid.UUID         `json:"id"`
	Title string            `json:"title"`
	URL   string            `json:"url"`
	Type  delivery.LinkType `json:"type"`
}

func toResponse(d *delivery.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:            d.ID,
		MilestoneID:   d.MilestoneID,
		Status:        d.Status,
		Notes:         d.Notes,
		RevisionNotes: d.RevisionNotes,
		Files:         make([]fileResponse, 0, len(d.Files)),
		Links:         make([]linkResponse, 0, len(d.Links)),
		CreatedAt:     d.CreatedAt,
		SubmittedAt:   d.SubmittedAt,
		ApprovedAt:    d.ApprovedAt,
	}

	for _, f := range d.Files {
		resp.Files = append(resp.Files, toFileResponse(f))
	}

	for _, l := range d.Links {
		resp.Links = append(resp.Links, linkResponse{
			ID:    l.ID,
			Title: l.Title,
			URL:   l.URL,
			Type:  l.Type,
		})
	}

	return resp
}

func toFileResponse(f delivery.File) fileResponse {
	return fileResponse{
		ID:         f.ID,
		Name:       f.Name,
		Size:       f.Size,
		MimeType:   f.MimeType,
		URL:        f.URL,
		Version:    f.Version,
		UploadedAt: f.UploadedAt,
	}
}
