package phase

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/http/httperr"
	"github.com/lbastos/worklane/internal/phase"
)

type Handler struct {
	svc *phase.Service
}

func NewHandler(svc *phase.Service) *Handler {
	return &Handler{svc: svc}
}

// MilestoneRoutes registers the routes nested under a milestone.
func (h *Handler) MilestoneRoutes(r chi.Router) {
	r.Get("/{id}/phases", h.list)
	r.Post("/{id}/phases", h.add)
}

func (h *Handler) Routes(r chi.Router) {
	r.Patch("/{id}/status", h.setStatus)
	r.Post("/{id}/complete", h.complete)
	r.Post("/{id}/deliverables", h.addDeliverable)
}

// DeliverableRoutes registers the checklist item routes.
func (h *Handler) DeliverableRoutes(r chi.Router) {
	r.Post("/{id}/toggle", h.toggleDeliverable)
	r.Put("/{id}/files", h.linkFiles)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	phases, err := h.svc.List(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(phases)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addPhaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addPhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.AddPhase(r.Context(), id, phase.AddPhaseParams{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setStatusRequest struct {
	Status phase.Status `json:"status"`
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writePhase(w, p)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.MarkComplete(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writePhase(w, p)
}

type addDeliverableRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addDeliverableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.AddDeliverable(r.Context(), id, req.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toDeliverableResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) toggleDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.ToggleDeliverable(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDeliverableResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type linkFilesRequest struct {
	FileIDs []uuid.UUID `json:"file_ids"`
}

func (h *Handler) linkFiles(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req linkFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.LinkFiles(r.Context(), id, req.FileIDs)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDeliverableResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writePhase(w http.ResponseWriter, p *phase.WorkPhase) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
