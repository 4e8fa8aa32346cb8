// Package submit relays a finished order to the external order-processing
// endpoint as a flat form-encoded POST and interprets its textual reply.
package submit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tamaleria/orderform/internal/menu"
	"github.com/tamaleria/orderform/internal/order"
	"github.com/tamaleria/orderform/internal/pricing"
)

// SuccessMarker is the literal the endpoint includes in its response body
// on logical success. Anything else is a rejection, reported verbatim.
const SuccessMarker = "Success"

const (
	flagPresent = "SI"
	flagAbsent  = "NO"
)

// RejectedError is a 2xx response whose body lacks the success marker.
type RejectedError struct {
	Body string
}

func (e *RejectedError) Error() string {
	return "Error al procesar el pedido: " + e.Body
}

// StatusError is a non-2xx response from the endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error del servidor: %d", e.Code)
}

// Payload flattens the contact info, the computed grand total and every
// line item (in display order, 0-based) into the field set the endpoint
// expects. Each enumerated add-on becomes one SI/NO flag per item.
func Payload(contact order.ContactInfo, items []order.LineItem) url.Values {
	form := url.Values{}
	form.Set("nombre", contact.Name)
	form.Set("telefono", contact.Phone)
	form.Set("direccion", contact.Address)
	form.Set("referencia", contact.Reference)
	form.Set("gps", contact.Coordinates)
	form.Set("total_pedido", strconv.FormatInt(pricing.OrderTotal(items), 10))

	for i, it := range items {
		prefix := fmt.Sprintf("item_%d_", i)
		form.Set(prefix+"cantidad", strconv.Itoa(it.Quantity))
		form.Set(prefix+"base", it.Base)
		form.Set(prefix+"filling", it.Filling)
		for _, addon := range menu.Addons() {
			flag := flagAbsent
			if it.HasAddon(addon) {
				flag = flagPresent
			}
			form.Set(prefix+strings.ToLower(addon), flag)
		}
		form.Set(prefix+"subtotal", strconv.FormatInt(pricing.Subtotal(it), 10))
	}
	return form
}

// Client posts orders to the configured endpoint. No automatic retries:
// failures surface to the user, who may retry manually.
type Client struct {
	url  string
	http *resty.Client
}

// NewClient creates a submission client for the endpoint URL. Timeout is
// left to the transport's default.
func NewClient(endpointURL string) *Client {
	return &Client{
		url:  endpointURL,
		http: resty.New().SetRetryCount(0),
	}
}

// Send posts the form and scans the reply. A 2xx response containing the
// success marker returns nil; a 2xx without it returns *RejectedError; any
// non-2xx status or transport failure returns a connection error.
func (c *Client) Send(ctx context.Context, form url.Values) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormDataFromValues(form).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("No se pudo conectar con el servicio de pedidos. Detalles: %v", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode()}
		return fmt.Errorf("No se pudo conectar con el servicio de pedidos. Detalles: %w", statusErr)
	}
	if !strings.Contains(resp.String(), SuccessMarker) {
		return &RejectedError{Body: resp.String()}
	}
	return nil
}
