package milestone

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/http/httperr"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/payment"
)

type Handler struct {
	svc *milestone.Service
}

func NewHandler(svc *milestone.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/activate", h.activate)
	r.Post("/{id}/complete", h.complete)
	r.Post("/{id}/pay", h.pay)
	r.Patch("/{id}/amount", h.updateAmount)
	r.Post("/{id}/payments", h.recordPayment)
}

type createMilestoneRequest struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	DueDate     time.Time `json:"due_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Create(r.Context(), milestone.CreateParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeMilestone(w, m)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Activate)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkCompleted)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkPaid)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id uuid.UUID) (*milestone.Milestone, error),
) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := apply(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeMilestone(w, m)
}

type updateAmountRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) updateAmount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.UpdateAmount(r.Context(), id, req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeMilestone(w, m)
}

type recordPaymentRequest struct {
	Amount        int64          `json:"amount"`
	Status        payment.Status `json:"status"`
	Method        string         `json:"method"`
	TransactionID string         `json:"transaction_id"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), milestone.PaymentParams{
		MilestoneID:   id,
		Amount:        req.Amount,
		Status:        req.Status,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		PaidAt:        req.PaidAt,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(paymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		Status:        p.Status,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMilestone(w http.ResponseWriter, m *milestone.Milestone) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
