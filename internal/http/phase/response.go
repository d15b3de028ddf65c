package phase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/phase"
)

type phaseResponse struct {
	ID           uuid.UUID             `json:"id"`
	MilestoneID  uuid.UUID             `json:"milestone_id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Status       phase.Status          `json:"status"`
	Order        int                   `json:"order"`
	Progress     int                   `json:"progress"`
	Deliverables []deliverableResponse `json:"deliverables"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type deliverableResponse struct {
	ID        uuid.UUID   `json:"id"`
	PhaseID   uuid.UUID   `json:"phase_id"`
	Name      string      `json:"name"`
	Completed bool        `json:"completed"`
	FileIDs   []uuid.UUID `json:"file_ids,omitempty"`
}

func toResponse(p *phase.WorkPhase) phaseResponse {
	resp := phaseResponse{
		ID:           p.ID,
		MilestoneID:  p.MilestoneID,
		Name:         p.Name,
		Description:  p.Description,
		Status:       p.Status,
		Order:        p.Order,
		Progress:     phase.Progress(p),
		Deliverables: make([]deliverableResponse, 0, len(p.Deliverables)),
		CompletedAt:  p.CompletedAt,
		CreatedAt:    p.CreatedAt,
	}

	for _, d := range p.Deliverables {
		resp.Deliverables = append(resp.Deliverables, deliverableResponse{
			ID:        d.ID,
			PhaseID:   d.PhaseID,
			Name:      d.Name,
			Completed: d.Completed,
			FileIDs:   d.FileIDs,
		})
	}

	return resp
}

func toDeliverableResponse(d *phase.Deliverable) deliverableResponse {
	return deliverableResponse{
		ID:        d.ID,
		PhaseID:   d.PhaseID,
		Name:      d.Name,
		Completed: d.Completed,
		FileIDs:   d.FileIDs,
	}
}

func toResponseList(phases []*phase.WorkPhase) []phaseResponse {
	resp := make([]phaseResponse, len(phases))
	for i, p := range phases {
		resp[i] = toResponse(p)
	}

	return resp
}
