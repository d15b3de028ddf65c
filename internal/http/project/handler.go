package project

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/http/httperr"
	"github.com/lbastos/worklane/internal/ledger"
	"github.com/lbastos/worklane/internal/project"
)

type Handler struct {
	svc *project.Service
}

func NewHandler(svc *project.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Get("/{id}/ledger", h.ledger)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Load(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type ledgerResponse struct {
	Paid    int64 `json:"paid"`
	Escrow  int64 `json:"escrow"`
	Pending int64 `json:"pending"`
	Total   int64 `json:"total"`
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Load(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	totals := ledger.Compute(p)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ledgerResponse{
		Paid:    totals.Paid,
		Escrow:  totals.Escrow,
		Pending: totals.Pending,
		Total:   totals.Sum(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
