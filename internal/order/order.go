// Package order implements the in-session order aggregate: an ordered
// collection of line items plus the customer's contact data. All mutations
// are synchronous and guarded by a mutex; subscribers are notified after
// every successful mutation so the view layer can re-render.
package order

import (
	"errors"
	"sync"

	"github.com/tamaleria/orderform/internal/menu"
)

// Errors returned by the mutation surface.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
	ErrUnknownBase     = errors.New("unknown base")
	ErrUnknownFilling  = errors.New("unknown filling")
	ErrUnknownAddon    = errors.New("unknown add-on")
)

// LineItem is one configurable tamale entry: quantity, base, filling and
// an order-irrelevant set of add-ons.
type LineItem struct {
	ID       int
	Quantity int
	Base     string
	Filling  string
	Addons   []string
}

// HasAddon reports whether the add-on is present on the item.
func (it LineItem) HasAddon(name string) bool {
	for _, a := range it.Addons {
		if a == name {
			return true
		}
	}
	return false
}

// Complete reports whether the item can proceed past the entry stage.
func (it LineItem) Complete() bool {
	return it.Base != "" && it.Filling != ""
}

// ContactInfo is the customer's delivery data. Reference and Coordinates
// are optional.
type ContactInfo struct {
	Name        string
	Phone       string
	Address     string
	Reference   string
	Coordinates string
}

// Order owns the line items (insertion order = display order) and the
// contact info for one browser session. Ids are minted by a monotonic
// counter and never reused, even after removal.
type Order struct {
	mu        sync.Mutex
	nextID    int
	items     []*LineItem
	contact   ContactInfo
	listeners []func()
}

// New creates an order containing a single default line item, mirroring
// the initial state of the form.
func New() *Order {
	o := &Order{}
	o.nextID++
	o.items = append(o.items, &LineItem{ID: o.nextID, Quantity: 1})
	return o
}

// Subscribe registers fn to run after every successful mutation.
func (o *Order) Subscribe(fn func()) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// notify runs outside the mutex so listeners may read the order back.
func (o *Order) notify() {
	o.mu.Lock()
	fns := make([]func(), len(o.listeners))
	copy(fns, o.listeners)
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (o *Order) find(id int) *LineItem {
	for _, it := range o.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// AddItem appends a new line item with default quantity 1, unset base and
// filling and no add-ons, and returns its freshly minted id.
func (o *Order) AddItem() int {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.items = append(o.items, &LineItem{ID: id, Quantity: 1})
	o.mu.Unlock()
	o.notify()
	return id
}

// RemoveItem removes the item with the given id. Removing the last item
// leaves an empty order; the caller surfaces that the order cannot proceed.
func (o *Order) RemoveItem(id int) error {
	o.mu.Lock()
	for i, it := range o.items {
		if it.ID == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.mu.Unlock()
			o.notify()
			return nil
		}
	}
	o.mu.Unlock()
	return ErrItemNotFound
}

// SetQuantity updates the quantity of an item; quantity must be >= 1.
func (o *Order) SetQuantity(id, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	o.mu.Lock()
	it := o.find(id)
	if it == nil {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	it.Quantity = quantity
	o.mu.Unlock()
	o.notify()
	return nil
}

// SetBase updates the base (masa) of an item.
func (o *Order) SetBase(id int, base string) error {
	if !menu.IsBase(base) {
		return ErrUnknownBase
	}
	o.mu.Lock()
	it := o.find(id)
	if it == nil {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	it.Base = base
	o.mu.Unlock()
	o.notify()
	return nil
}

// SetFilling updates the filling (carne) of an item.
func (o *Order) SetFilling(id int, filling string) error {
	if !menu.IsFilling(filling) {
		return ErrUnknownFilling
	}
	o.mu.Lock()
	it := o.find(id)
	if it == nil {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	it.Filling = filling
	o.mu.Unlock()
	o.notify()
	return nil
}

// ToggleAddon adds the add-on when present is true and removes it
// otherwise. Idempotent in both directions.
func (o *Order) ToggleAddon(id int, addon string, present bool) error {
	if !menu.IsAddon(addon) {
		return ErrUnknownAddon
	}
	o.mu.Lock()
	it := o.find(id)
	if it == nil {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	if present {
		if !it.HasAddon(addon) {
			it.Addons = append(it.Addons, addon)
		}
	} else {
		for i, a := range it.Addons {
			if a == addon {
				it.Addons = append(it.Addons[:i], it.Addons[i+1:]...)
				break
			}
		}
	}
	o.mu.Unlock()
	o.notify()
	return nil
}

// SetContact replaces the contact fields gathered on the entry form.
// Coordinates are managed separately by the location capture.
func (o *Order) SetContact(name, phone, address, reference string) {
	o.mu.Lock()
	o.contact.Name = name
	o.contact.Phone = phone
	o.contact.Address = address
	o.contact.Reference = reference
	o.mu.Unlock()
	o.notify()
}

// SetCoordinates writes the captured (or sentinel) coordinates value.
func (o *Order) SetCoordinates(coords string) {
	o.mu.Lock()
	o.contact.Coordinates = coords
	o.mu.Unlock()
	o.notify()
}

// Contact returns a copy of the current contact info.
func (o *Order) Contact() ContactInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.contact
}

// Items returns a snapshot of the line items in display order.
func (o *Order) Items() []LineItem {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := make([]LineItem, len(o.items))
	for i, it := range o.items {
		cp := *it
		cp.Addons = append([]string(nil), it.Addons...)
		items[i] = cp
	}
	return items
}

// Len returns the number of line items.
func (o *Order) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

// Reset discards all session state and starts over with a single default
// item, equivalent to reloading the form. The id counter keeps counting up
// so ids are never reused within a session.
func (o *Order) Reset() {
	o.mu.Lock()
	o.nextID++
	o.items = []*LineItem{{ID: o.nextID, Quantity: 1}}
	o.contact = ContactInfo{}
	o.mu.Unlock()
	o.notify()
}
