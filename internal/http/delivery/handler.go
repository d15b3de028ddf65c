package delivery

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/http/httperr"
)

type Handler struct {
	svc *delivery.Service
}

func NewHandler(svc *delivery.Service) *Handler {
	return &Handler{svc: svc}
}

// MilestoneRoutes registers the delivery routes nested under a milestone.
// A milestone has at most one delivery, so the milestone id addresses it.
func (h *Handler) MilestoneRoutes(r chi.Router) {
	r.Get("/{id}/delivery", h.get)
	r.Put("/{id}/delivery", h.saveDraft)
	r.Post("/{id}/delivery/submit", h.submit)
	r.Post("/{id}/delivery/approve", h.approve)
	r.Post("/{id}/delivery/revision", h.requestRevision)
	r.Post("/{id}/delivery/files", h.addFile)
}

func (h *Handler) Routes(r chi.Router) {
	r.Delete("/{id}/files/{fileId}", h.removeFile)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeDelivery(w, d)
}

type fileDTO struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at,omitzero"`
}

type linkDTO struct {
	Title string            `json:"title"`
	URL   string            `json:"url"`
	Type  delivery.LinkType `json:"type"`
}

type saveDraftRequest struct {
	Notes string    `json:"notes"`
	Files []fileDTO `json:"files"`
	Links []linkDTO `json:"links"`
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := delivery.DraftParams{Notes: req.Notes}

	for _, f := range req.Files {
		params.Files = append(params.Files, delivery.FileParams{
			Name:       f.Name,
			Size:       f.Size,
			MimeType:   f.MimeType,
			URL:        f.URL,
			UploadedAt: f.UploadedAt,
		})
	}

	for _, l := range req.Links {
		params.Links = append(params.Links, delivery.LinkParams{
			Title: l.Title,
			URL:   l.URL,
			Type:  l.Type,
		})
	}

	d, err := h.svc.SaveDraft(r.Context(), id, params)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeDelivery(w, d)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeDelivery(w, d)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeDelivery(w, d)
}

type revisionRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) requestRevision(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req revisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.RequestRevision(r.Context(), id, req.Notes)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeDelivery(w, d)
}

func (h *Handler) addFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req fileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.AddFile(r.Context(), id, delivery.FileParams{
		Name:       req.Name,
		Size:       req.Size,
		MimeType:   req.MimeType,
		URL:        req.URL,
		UploadedAt: req.UploadedAt,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toFileResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) removeFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveFile(r.Context(), id, fileID); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeDelivery(w http.ResponseWriter, d *delivery.Delivery) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
