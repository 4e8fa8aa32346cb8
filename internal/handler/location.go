package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tamaleria/orderform/internal/geo"
	"github.com/tamaleria/orderform/internal/middleware"
)

// LocationHandler receives the outcome of the browser's single-shot
// geolocation capture and stores the formatted coordinates, or a sentinel
// when the capture failed or the capability is missing.
type LocationHandler struct{}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

// RegisterRoutes registers the location endpoint on the given Chi router.
func (h *LocationHandler) RegisterRoutes(r chi.Router) {
	r.Put("/location", h.Capture)
}

type locationRequest struct {
	Status    string  `json:"status"` // "ok", "error" or "unsupported"
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Capture writes the coordinates field. Failures are non-fatal: the field
// holds a sentinel and stays editable for another attempt.
func (h *LocationHandler) Capture(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	o := sess.Flow.Order()
	switch req.Status {
	case "ok":
		coords, err := geo.Format(req.Latitude, req.Longitude)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		o.SetCoordinates(coords)
	case "error":
		o.SetCoordinates(geo.SentinelError)
	case "unsupported":
		o.SetCoordinates(geo.SentinelUnsupported)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}
	writeJSON(w, http.StatusOK, Snapshot(sess))
}
