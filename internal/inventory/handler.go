// internal/inventory/handler.go
package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// connectionIDHeader carries the originator's push-channel connection id on
// a save request, so the broadcast can skip the caller's own connection.
const connectionIDHeader = "X-Connection-ID"

type Handler struct {
	service Service
	limiter *rate.Limiter
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(100), 200), // 100 saves/s, burst 200
	}
}

// Routes returns the /api/inventory router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGetItems)
	r.Post("/", h.handleSaveItem)
	r.Get("/{id}", h.handleGetItem)
	r.Delete("/{id}", h.handleRemoveItem)
	return r
}

func (h *Handler) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetItems(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []Item{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Absent or malformed header means the originator is unknown and the
	// update is broadcast to every connection.
	origin, _ := uuid.Parse(r.Header.Get(connectionIDHeader))

	stored, err := h.service.SaveItem(r.Context(), item, origin)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string][]FieldError{"errors": verr.Fields})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stored)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	removed, err := h.service.RemoveItem(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
