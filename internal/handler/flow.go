package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tamaleria/orderform/internal/middleware"
	"github.com/tamaleria/orderform/internal/workflow"
)

// FlowHandler exposes the workflow transitions: proceed to the summary,
// go back to modify, submit the order, and start over.
type FlowHandler struct{}

// NewFlowHandler creates a new FlowHandler.
func NewFlowHandler() *FlowHandler {
	return &FlowHandler{}
}

// RegisterRoutes registers the workflow endpoints on the given Chi router.
func (h *FlowHandler) RegisterRoutes(r chi.Router) {
	r.Post("/proceed", h.Proceed)
	r.Post("/modify", h.Modify)
	r.Post("/submit", h.Submit)
	r.Post("/new-order", h.NewOrder)
}

type proceedRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Reference string `json:"reference"`
}

// Proceed stores the contact fields from the entry form and attempts the
// Entry → Summary transition. Validation failures come back with the
// exact message to show the customer; the stage does not change.
func (h *FlowHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req proceedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sess.Flow.Order().SetContact(req.Name, req.Phone, req.Address, req.Reference)

	if err := sess.Flow.Proceed(); err != nil {
		if errors.Is(err, workflow.ErrWrongStage) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}

// Modify returns from the summary to the entry stage.
func (h *FlowHandler) Modify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := sess.Flow.Modify(); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}

// Submit relays the order to the external endpoint. The workflow rejects
// a second submit while one is in flight; any failure keeps the summary
// stage so the customer may retry.
func (h *FlowHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	err := sess.Flow.Submit(r.Context())
	switch {
	case err == nil:
		log.WithField("session", sess.ID).Info("order submitted")
		writeJSON(w, http.StatusOK, Snapshot(sess))
	case errors.Is(err, workflow.ErrSubmitInFlight), errors.Is(err, workflow.ErrWrongStage):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.WithField("session", sess.ID).WithError(err).Warn("order submission failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}

// NewOrder discards the confirmed order and starts a fresh one.
func (h *FlowHandler) NewOrder(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := sess.Flow.NewOrder(); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}
