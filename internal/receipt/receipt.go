// Package receipt renders a standalone HTML document embedding the
// contact data, the itemized table and the grand total. Pure function of
// the current order; no workflow state is touched.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/tamaleria/orderform/internal/order"
	"github.com/tamaleria/orderform/internal/pricing"
)

// ErrEmptyOrder is returned when a receipt is requested for an order with
// no line items.
var ErrEmptyOrder = errors.New("el pedido está vacío")

type row struct {
	Position int
	Quantity int
	Base     string
	Filling  string
	Extras   string
	Subtotal int64
}

type receiptData struct {
	Name        string
	Phone       string
	Address     string
	Reference   string
	Coordinates string
	Rows        []row
	Total       int64
	GeneratedAt string
}

var tmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Pedido de Tamales</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; color: #222; }
h1 { color: #2f6f3e; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #eee; }
.total { margin-top: 1rem; font-size: 1.2rem; font-weight: bold; color: #2f6f3e; }
.meta { color: #666; font-size: 0.85rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>Pedido de Tamales</h1>
<p>
<strong>Nombre:</strong> {{.Name}}<br>
<strong>Teléfono:</strong> {{.Phone}}<br>
<strong>Dirección:</strong> {{.Address}}<br>
<strong>Referencia:</strong> {{.Reference}}<br>
<strong>GPS:</strong> {{.Coordinates}}
</p>
<table>
<thead>
<tr><th>#</th><th>Cant.</th><th>Masa</th><th>Carne</th><th>Extras</th><th>Subtotal</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Position}}</td><td>{{.Quantity}}</td><td>{{.Base}}</td><td>{{.Filling}}</td><td>{{.Extras}}</td><td>Q{{.Subtotal}}</td></tr>
{{end}}</tbody>
</table>
<p class="total">TOTAL DEL PEDIDO: Q{{.Total}}</p>
<p class="meta">Generado el {{.GeneratedAt}}</p>
</body>
</html>
`))

// Render produces the receipt document for the given order state,
// timestamped at now. Subtotals follow the same per-item rounding rule as
// the live summary.
func Render(contact order.ContactInfo, items []order.LineItem, now time.Time) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	data := receiptData{
		Name:        contact.Name,
		Phone:       contact.Phone,
		Address:     contact.Address,
		Reference:   contact.Reference,
		Coordinates: contact.Coordinates,
		Total:       pricing.OrderTotal(items),
		GeneratedAt: now.Format("02/01/2006 15:04"),
	}
	if data.Reference == "" {
		data.Reference = "No especificado"
	}
	if data.Coordinates == "" {
		data.Coordinates = "No capturado"
	}
	for i, it := range items {
		extras := "Ninguno"
		if len(it.Addons) > 0 {
			extras = strings.Join(it.Addons, ", ")
		}
		data.Rows = append(data.Rows, row{
			Position: i + 1,
			Quantity: it.Quantity,
			Base:     it.Base,
			Filling:  it.Filling,
			Extras:   extras,
			Subtotal: pricing.Subtotal(it),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from the customer name (whitespace
// collapsed to underscores) and the generation timestamp.
func Filename(name string, now time.Time) string {
	collapsed := strings.Join(strings.Fields(name), "_")
	if collapsed == "" {
		collapsed = "pedido"
	}
	return fmt.Sprintf("pedido_%s_%s.html", collapsed, now.Format("20060102-150405"))
}
