package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tamaleria/orderform/internal/middleware"
	"github.com/tamaleria/orderform/internal/receipt"
)

// ReceiptHandler serves the downloadable receipt document for the current
// order. Rendering reads the order only; workflow state is untouched.
type ReceiptHandler struct{}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler() *ReceiptHandler {
	return &ReceiptHandler{}
}

// RegisterRoutes registers the receipt endpoint on the given Chi router.
func (h *ReceiptHandler) RegisterRoutes(r chi.Router) {
	r.Get("/receipt", h.Download)
}

// Download renders the receipt and offers it as an attachment, named after
// the customer and the generation timestamp.
func (h *ReceiptHandler) Download(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	o := sess.Flow.Order()

	now := time.Now()
	doc, err := receipt.Render(o.Contact(), o.Items(), now)
	if err != nil {
		if errors.Is(err, receipt.ErrEmptyOrder) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		log.WithError(err).Error("render receipt")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.Filename(o.Contact().Name, now)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
