package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/payment"
	"github.com/lbastos/worklane/internal/phase"
	"github.com/lbastos/worklane/internal/project"
)

type projectResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	ClientName  string              `json:"client_name"`
	Currency    string              `json:"currency"`
	TotalAmount int64               `json:"total_amount"`
	Milestones  []milestoneResponse `json:"milestones"`
	CreatedAt   time.Time           `json:"created_at"`
}

type milestoneResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Amount      int64             `json:"amount"`
	Status      milestone.Status  `json:"status"`
	DueDate     time.Time         `json:"due_date"`
	Progress    int               `json:"progress"`
	Phases      []phaseResponse   `json:"phases"`
	Delivery    *deliveryResponse `json:"delivery,omitempty"`
	Payment     *paymentResponse  `json:"payment,omitempty"`
}

type phaseResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Status       phase.Status          `json:"status"`
	Order        int                   `json:"order"`
	Progress     int                   `json:"progress"`
	Deliverables []deliverableResponse `json:"deliverables"`
}

type deliverableResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
}

type deliveryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Status      delivery.Status `json:"status"`
	Files       int             `json:"files"`
	Links       int             `json:"links"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
}

type paymentResponse struct {
	ID     uuid.UUID      `json:"id"`
	Amount int64          `json:"amount"`
	Status payment.Status `json:"status"`
	PaidAt *time.Time     `json:"paid_at,omitempty"`
}

func toResponse(p *project.Project) projectResponse {
	resp := projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		ClientName:  p.ClientName,
		Currency:    p.Currency,
		TotalAmount: p.TotalAmount,
		Milestones:  make([]milestoneResponse, 0, len(p.Milestones)),
		CreatedAt:   p.CreatedAt,
	}

	for _, m := range p.Milestones {
		resp.Milestones = append(resp.Milestones, toMilestoneResponse(m))
	}

	return resp
}

func toMilestoneResponse(m *milestone.Milestone) milestoneResponse {
	resp := milestoneResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Amount:      m.Amount,
		Status:      m.Status,
		DueDate:     m.DueDate,
		Progress:    m.Progress(),
		Phases:      make([]phaseResponse, 0, len(m.Phases)),
	}

	for _, p := range m.Phases {
		pr := phaseResponse{
			ID:           p.ID,
			Name:         p.Name,
			Status:       p.Status,
			Order:        p.Order,
			Progress:     phase.Progress(p),
			Deliverables: make([]deliverableResponse, 0, len(p.Deliverables)),
		}

		for _, d := range p.Deliverables {
			pr.Deliverables = append(pr.Deliverables, deliverableResponse{
				ID:        d.ID,
				Name:      d.Name,
				Completed: d.Completed,
			})
		}

		resp.Phases = append(resp.Phases, pr)
	}

	if m.Delivery != nil {
		resp.Delivery = &deliveryResponse{
			ID:          m.Delivery.ID,
			Status:      m.Delivery.Status,
			Files:       len(m.Delivery.Files),
			Links:       len(m.Delivery.Links),
			SubmittedAt: m.Delivery.SubmittedAt,
			ApprovedAt:  m.Delivery.ApprovedAt,
		}
	}

	if m.Payment != nil {
		resp.Payment = &paymentResponse{
			ID:     m.Payment.ID,
			Amount: m.Payment.Amount,
			Status: m.Payment.Status,
			PaidAt: m.Payment.PaidAt,
		}
	}

	return resp
}
