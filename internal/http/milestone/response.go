package milestone

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/phase"
)

type milestoneResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProjectID   uuid.UUID         `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Amount      int64             `json:"amount"`
	Status      milestone.Status  `json:"status"`
	DueDate     time.Time         `json:"due_date"`
	Progress    int               `json:"progress"`
	Phases      []phaseResponse   `json:"phases"`
	Delivery    *deliveryResponse `json:"delivery,omitempty"`
	Payment     *paymentResponse  `json:"payment,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type phaseResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Status       phase.Status          `json:"status"`
	Order        int                   `json:"order"`
	Progress     int                   `json:"progress"`
	Deliverables []deliverableResponse `json:"deliverables"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
}

type deliverableResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Completed bool        `json:"completed"`
	FileIDs   []uuid.UUID `json:"file_ids,omitempty"`
}

type deliveryResponse struct {
	ID            uuid.UUID       `json:"id"`
	Status        delivery.Status `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	RevisionNotes string          `json:"revision_notes,omitempty"`
	Files         []fileResponse  `json:"files"`
	Links         []linkResponse  `json:"links"`
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

type paymentResponse struct {
	ID            uuid.UUID      `json:"id"`
	Amount        int64          `json:"amount"`
	Status        payment.Status `json:"status"`
	Method        string         `json:"method,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
}

func toResponse(m *milestone.Milestone) milestoneResponse {
	resp := milestoneResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Amount:      m.Amount,
		Status:      m.Status,
		DueDate:     m.DueDate,
		Progress:    m.Progress(),
		Phases:      make([]phaseResponse, 0, len(m.Phases)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	for _, p := range m.Phases {
		resp.Phases = append(resp.Phases, toPhaseResponse(p))
	}

	if m.Delivery != nil {
		d := toDeliveryResponse(m.Delivery)
		resp.Delivery = &d
	}

	if m.Payment != nil {
		resp.Payment = &paymentResponse{
			ID:            m.Payment.ID,
			Amount:        m.Payment.Amount,
			Status:        m.Payment.Status,
			Method:        m.Payment.Method,
			TransactionID: m.Payment.TransactionID,
			PaidAt:        m.Payment.PaidAt,
		}
	}

	return resp
}

func toPhaseResponse(p *phase.WorkPhase) phaseResponse {
	resp := phaseResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Status:       p.Status,
		Order:        p.Order,
		Progress:     phase.Progress(p),
		Deliverables: make([]deliverableResponse, 0, len(p.Deliverables)),
		CompletedAt:  p.CompletedAt,
	}

	for _, d := range p.Deliverables {
		resp.Deliverables = append(resp.Deliverables, deliverableResponse{
			ID:        d.ID,
			Name:      d.Name,
			Completed: d.Completed,
			FileIDs:   d.FileIDs,
		})
	}

	return resp
}

func toDeliveryResponse(d *delivery.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:            d.ID,
		Status:        d.Status,
		Notes:         d.Notes,
		RevisionNotes: d.RevisionNotes,
		Files:         make([]fileResponse, 0, len(d.Files)),
		Links:         make([]linkResponse, 0, len(d.Links)),
		SubmittedAt:   d.SubmittedAt,
		ApprovedAt:    d.ApprovedAt,
	}

	for _, f := range d.Files {
		resp.Files = append(resp.Files, fileResponse{
			ID:         f.ID,
			Name:       f.Name,
			Size:       f.Size,
			MimeType:   f.MimeType,
			URL:        f.URL,
			Version:    f.Version,
			UploadedAt: f.UploadedAt,
		})
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
