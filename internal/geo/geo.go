// Package geo formats device coordinates captured by the browser and holds
// the sentinel values the form shows when capture fails.
package geo

import (
	"errors"
	"fmt"
)

// Sentinel values written to the coordinates field. Pending is shown while
// the browser waits on the device; the other two stay in the field after a
// failed or unsupported capture.
const (
	SentinelPending     = "Obteniendo ubicación..."
	SentinelError       = "Error al obtener GPS"
	SentinelUnsupported = "GPS no soportado"
)

// CaptureTimeout bounds the browser-side wait for a position fix, in
// milliseconds. Single shot, no retry.
const CaptureTimeout = 5000

var ErrOutOfRange = errors.New("coordinates out of range")

// Format renders a latitude/longitude pair to six decimal places, the form
// the order endpoint expects in the gps field.
func Format(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", ErrOutOfRange
	}
	return fmt.Sprintf("%.6f, %.6f", lat, lon), nil
}
