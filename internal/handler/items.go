package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tamaleria/orderform/internal/middleware"
	"github.com/tamaleria/orderform/internal/order"
)

// ItemsHandler exposes the order's mutation surface over HTTP. Every
// successful mutation answers with a fresh snapshot so the acting tab can
// re-render immediately; other tabs learn about it over the websocket.
type ItemsHandler struct{}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler() *ItemsHandler {
	return &ItemsHandler{}
}

// RegisterRoutes registers the line item endpoints on the given Chi router.
func (h *ItemsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/items", h.Add)
	r.Delete("/items/{id}", h.Remove)
	r.Patch("/items/{id}", h.SetField)
	r.Put("/items/{id}/addons", h.ToggleAddon)
}

type setFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type toggleAddonRequest struct {
	Addon   string `json:"addon"`
	Present bool   `json:"present"`
}

type addItemResponse struct {
	ID    int       `json:"id"`
	Order OrderView `json:"order"`
}

// Add appends a new default line item and returns its id.
func (h *ItemsHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id := sess.Flow.Order().AddItem()
	writeJSON(w, http.StatusCreated, addItemResponse{ID: id, Order: Snapshot(sess)})
}

// Remove deletes a line item by id. Removing the last item leaves an
// empty order; proceeding is blocked until another item is added.
func (h *ItemsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	if err := sess.Flow.Order().RemoveItem(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}

// SetField updates quantity, base or filling on a line item.
func (h *ItemsHandler) SetField(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	o := sess.Flow.Order()
	switch req.Field {
	case "quantity":
		qty, convErr := strconv.Atoi(req.Value)
		if convErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must be a positive integer"})
			return
		}
		err = o.SetQuantity(id, qty)
	case "base":
		err = o.SetBase(id, req.Value)
	case "filling":
		err = o.SetFilling(id, req.Value)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown field"})
		return
	}

	if err != nil {
		if errors.Is(err, order.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}

// ToggleAddon adds or removes an add-on on a line item. Idempotent.
func (h *ItemsHandler) ToggleAddon(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}

	var req toggleAddonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := sess.Flow.Order().ToggleAddon(id, req.Addon, req.Present); err != nil {
		if errors.Is(err, order.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}
