package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tamaleria/orderform/internal/geo"
	"github.com/tamaleria/orderform/internal/menu"
	"github.com/tamaleria/orderform/internal/middleware"
	"github.com/tamaleria/orderform/web"
)

// Transient messages auto-dismiss after this many milliseconds, whatever
// their kind.
const messageTTLMillis = 7000

// PageHandler renders the order page with the session's current state
// embedded, so a reload lands the customer exactly where they were.
type PageHandler struct {
	tmpl *template.Template
}

// NewPageHandler parses the page template from the embedded filesystem.
func NewPageHandler() (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.FS, "templates/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &PageHandler{tmpl: tmpl}, nil
}

// Show serves the single order page.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	state, err := json.Marshal(Snapshot(sess))
	if err != nil {
		log.WithError(err).Error("marshal page state")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"InitialState": template.JS(state),
		"Bases":        menu.Bases(),
		"Fillings":     menu.Fillings(),
		"Addons":       menu.Addons(),
		"MessageTTL":   messageTTLMillis,
		"GeoTimeout":   geo.CaptureTimeout,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.gohtml", data); err != nil {
		log.WithError(err).Error("render page")
	}
}
