package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/http/httperr"
	"github.com/lbastos/worklane/internal/importer"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/phase"
)

type Handler struct {
	importSvc    *importer.Service
	milestoneSvc *milestone.Service
	phaseSvc     *phase.Service
}

func NewHandler(importSvc *importer.Service, milestoneSvc *milestone.Service, phaseSvc *phase.Service) *Handler {
	return &Handler{
		importSvc:    importSvc,
		milestoneSvc: milestoneSvc,
		phaseSvc:     phaseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/plan", h.importPlan)
}

type importedMilestone struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Amount  int64     `json:"amount"`
	DueDate time.Time `json:"due_date"`
	Phases  int       `json:"phases"`
}

type importSuccessResponse struct {
	Imported   int                 `json:"imported"`
	Milestones []importedMilestone `json:"milestones"`
}

// importPlan creates pending milestones, phases and checklist items from an
// uploaded plan CSV. Rows are validated up front; nothing is created when
// the file does not parse.
func (h *Handler) importPlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	projectID, err := uuid.Parse(r.FormValue("project_id"))
	if err != nil {
		http.Error(w, "project_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	plan, err := h.importSvc.Import(importer.FormatPlanCSV, file)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp := importSuccessResponse{
		Milestones: make([]importedMilestone, 0, len(plan)),
	}

	for _, pm := range plan {
		m, err := h.milestoneSvc.Create(r.Context(), milestone.CreateParams{
			ProjectID: projectID,
			Title:     pm.Title,
			Amount:    pm.Amount,
			DueDate:   pm.DueDate,
		})
		if err != nil {
			httperr.Write(w, err)
			return
		}

		for _, pp := range pm.Phases {
			created, err := h.phaseSvc.AddPhase(r.Context(), m.ID, phase.AddPhaseParams{
				Name:  pp.Name,
				Order: pp.Order,
			})
			if err != nil {
				httperr.Write(w, err)
				return
			}

			for _, name := range pp.Deliverables {
				if _, err := h.phaseSvc.AddDeliverable(r.Context(), created.ID, name); err != nil {
					httperr.Write(w, err)
					return
				}
			}
		}

		resp.Milestones = append(resp.Milestones, importedMilestone{
			ID:      m.ID,
			Title:   m.Title,
			Amount:  m.Amount,
			DueDate: m.DueDate,
			Phases:  len(pm.Phases),
		})
	}

	resp.Imported = len(resp.Milestones)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
