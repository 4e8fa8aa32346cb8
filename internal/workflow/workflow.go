// Package workflow drives the linear three-stage order flow:
// entry → summary → confirmation. Transitions are gated by validation and
// at most one submission is in flight at a time.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/tamaleria/orderform/internal/order"
	"github.com/tamaleria/orderform/internal/submit"
)

// Workflow stages. Entry is the initial stage; Confirmed is only left by a
// full reset.
const (
	StageEntry     = "ENTRY"
	StageSummary   = "SUMMARY"
	StageConfirmed = "CONFIRMED"
)

// Validation and gating errors. The Spanish texts are shown to the
// customer verbatim.
var (
	ErrName           = errors.New("Por favor, ingresa tu Nombre completo.")
	ErrPhone          = errors.New("Por favor, ingresa un número de Teléfono válido.")
	ErrAddress        = errors.New("Por favor, ingresa una Dirección de entrega válida.")
	ErrEmptyOrder     = errors.New("Debes agregar al menos un tamal al pedido.")
	ErrWrongStage     = errors.New("acción no disponible en esta etapa")
	ErrSubmitInFlight = errors.New("Ya se está enviando el pedido. Por favor, espera.")
)

// Minimum lengths for the required contact fields, in runes.
const (
	minNameLen    = 3
	minPhoneLen   = 7
	minAddressLen = 5
)

// IncompleteItemError reports the first line item missing its base or
// filling, by display position (1-based).
type IncompleteItemError struct {
	Position int
}

func (e *IncompleteItemError) Error() string {
	return fmt.Sprintf("El Tamal #%d necesita que selecciones la Masa y la Carne.", e.Position)
}

// Submitter sends the flattened order to the external endpoint.
// Satisfied by *submit.Client.
type Submitter interface {
	Send(ctx context.Context, form url.Values) error
}

// Controller mediates between the order aggregate and the view: it owns
// the current stage and performs the gated transitions.
type Controller struct {
	mu        sync.Mutex
	stage     string
	order     *order.Order
	submitter Submitter
	inFlight  bool
	listeners []func()
}

// NewController creates a controller in the entry stage.
func NewController(o *order.Order, s Submitter) *Controller {
	return &Controller{stage: StageEntry, order: o, submitter: s}
}

// Subscribe registers fn to run after every stage change.
func (c *Controller) Subscribe(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fns := make([]func(), len(c.listeners))
	copy(fns, c.listeners)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Stage returns the current workflow stage.
func (c *Controller) Stage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// InFlight reports whether a submission is currently running, so the view
// can keep the submit control disabled.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Order exposes the aggregate the controller drives.
func (c *Controller) Order() *order.Order {
	return c.order
}

// validate applies the entry-stage checks in fixed order and returns the
// first failure: name, phone, address, order non-empty, then the first
// incomplete line item.
func (c *Controller) validate() error {
	contact := c.order.Contact()
	if utf8.RuneCountInString(contact.Name) < minNameLen {
		return ErrName
	}
	if utf8.RuneCountInString(contact.Phone) < minPhoneLen {
		return ErrPhone
	}
	if utf8.RuneCountInString(contact.Address) < minAddressLen {
		return ErrAddress
	}
	items := c.order.Items()
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for i, it := range items {
		if !it.Complete() {
			return &IncompleteItemError{Position: i + 1}
		}
	}
	return nil
}

// Proceed moves Entry → Summary. Any validation failure aborts the
// transition and leaves the stage untouched.
func (c *Controller) Proceed() error {
	c.mu.Lock()
	if c.stage != StageEntry {
		c.mu.Unlock()
		return ErrWrongStage
	}
	c.mu.Unlock()

	if err := c.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.stage = StageSummary
	c.mu.Unlock()
	c.notify()
	return nil
}

// Modify moves Summary → Entry unconditionally so the customer can edit
// the order again.
func (c *Controller) Modify() error {
	c.mu.Lock()
	if c.stage != StageSummary {
		c.mu.Unlock()
		return ErrWrongStage
	}
	c.stage = StageEntry
	c.mu.Unlock()
	c.notify()
	return nil
}

// Submit serializes the order and posts it to the endpoint. While the
// request runs, further submits are rejected; that is the only safeguard
// against duplicate submission. On success the stage becomes Confirmed;
// on any failure the stage stays at Summary so the customer may retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.stage != StageSummary {
		c.mu.Unlock()
		return ErrWrongStage
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	form := submit.Payload(c.order.Contact(), c.order.Items())
	err := c.submitter.Send(ctx, form)

	c.mu.Lock()
	c.inFlight = false
	if err == nil {
		c.stage = StageConfirmed
	}
	c.mu.Unlock()
	if err == nil {
		c.notify()
	}
	return err
}

// NewOrder performs the full reset from the confirmation stage: the order
// is discarded and the flow starts over at Entry.
func (c *Controller) NewOrder() error {
	c.mu.Lock()
	if c.stage != StageConfirmed {
		c.mu.Unlock()
		return ErrWrongStage
	}
	c.stage = StageEntry
	c.mu.Unlock()
	c.order.Reset()
	c.notify()
	return nil
}
