package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tamaleria/orderform/internal/pricing"
	"github.com/tamaleria/orderform/internal/session"
)

// ItemView is one line item as the view renders it, including its
// computed subtotal.
type ItemView struct {
	ID       int      `json:"id"`
	Quantity int      `json:"quantity"`
	Base     string   `json:"base"`
	Filling  string   `json:"filling"`
	Addons   []string `json:"addons"`
	Subtotal int64    `json:"subtotal"`
}

// ContactView mirrors the contact form fields.
type ContactView struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Reference   string `json:"reference"`
	Coordinates string `json:"coordinates"`
}

// OrderView is the full render state pushed to the browser: stage, items
// with subtotals, contact data and the grand total.
type OrderView struct {
	Stage      string      `json:"stage"`
	Submitting bool        `json:"submitting"`
	Items      []ItemView  `json:"items"`
	Contact    ContactView `json:"contact"`
	Total      int64       `json:"total"`
}

// Snapshot derives the current render state from a session.
func Snapshot(sess *session.Session) OrderView {
	o := sess.Flow.Order()
	items := o.Items()
	contact := o.Contact()

	view := OrderView{
		Stage:      sess.Flow.Stage(),
		Submitting: sess.Flow.InFlight(),
		Items:      make([]ItemView, len(items)),
		Contact: ContactView{
			Name:        contact.Name,
			Phone:       contact.Phone,
			Address:     contact.Address,
			Reference:   contact.Reference,
			Coordinates: contact.Coordinates,
		},
		Total: pricing.OrderTotal(items),
	}
	for i, it := range items {
		addons := it.Addons
		if addons == nil {
			addons = []string{}
		}
		view.Items[i] = ItemView{
			ID:       it.ID,
			Quantity: it.Quantity,
			Base:     it.Base,
			Filling:  it.Filling,
			Addons:   addons,
			Subtotal: pricing.Subtotal(it),
		}
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
