package order_test

import (
	"errors"
	"testing"

	"github.com/tamaleria/orderform/internal/menu"
	"github.com/tamaleria/orderform/internal/order"
)

func TestNew_StartsWithOneDefaultItem(t *testing.T) {
	o := order.New()

	items := o.Items()
	if len(items) != 1 {
		t.Fatalf("item count: got %d, want 1", len(items))
	}
	it := items[0]
	if it.Quantity != 1 {
		t.Errorf("quantity: got %d, want 1", it.Quantity)
	}
	if it.Base != "" || it.Filling != "" {
		t.Errorf("base/filling should start unset, got %q/%q", it.Base, it.Filling)
	}
	if len(it.Addons) != 0 {
		t.Errorf("addons should start empty, got %v", it.Addons)
	}
	if it.Complete() {
		t.Error("a default item must not be complete")
	}
}

func TestAddItem_IDsAreMonotonic(t *testing.T) {
	o := order.New()

	first := o.Items()[0].ID
	second := o.AddItem()
	third := o.AddItem()
	if second <= first || third <= second {
		t.Fatalf("ids not monotonic: %d, %d, %d", first, second, third)
	}

	// Removing an item must not free its id for reuse.
	if err := o.RemoveItem(second); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fourth := o.AddItem()
	if fourth <= third {
		t.Errorf("id reused after removal: got %d after %d", fourth, third)
	}
}

func TestRemoveItem(t *testing.T) {
	o := order.New()
	id := o.AddItem()

	if err := o.RemoveItem(id); err != nil {
		t.Fatalf("remove existing: %v", err)
	}
	if o.Len() != 1 {
		t.Errorf("len: got %d, want 1", o.Len())
	}

	if err := o.RemoveItem(id); !errors.Is(err, order.ErrItemNotFound) {
		t.Errorf("remove twice: got %v, want ErrItemNotFound", err)
	}
}

func TestRemoveItem_LastItemLeavesEmptyOrder(t *testing.T) {
	o := order.New()
	id := o.Items()[0].ID

	if err := o.RemoveItem(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if o.Len() != 0 {
		t.Errorf("len: got %d, want 0", o.Len())
	}
}

func TestSetQuantity(t *testing.T) {
	o := order.New()
	id := o.Items()[0].ID

	if err := o.SetQuantity(id, 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := o.Items()[0].Quantity; got != 4 {
		t.Errorf("quantity: got %d, want 4", got)
	}

	if err := o.SetQuantity(id, 0); !errors.Is(err, order.ErrInvalidQuantity) {
		t.Errorf("quantity 0: got %v, want ErrInvalidQuantity", err)
	}
	if err := o.SetQuantity(id, -2); !errors.Is(err, order.ErrInvalidQuantity) {
		t.Errorf("negative quantity: got %v, want ErrInvalidQuantity", err)
	}
	if err := o.SetQuantity(999, 2); !errors.Is(err, order.ErrItemNotFound) {
		t.Errorf("missing item: got %v, want ErrItemNotFound", err)
	}
}

func TestSetBaseAndFilling(t *testing.T) {
	o := order.New()
	id := o.Items()[0].ID

	if err := o.SetBase(id, menu.BaseArroz); err != nil {
		t.Fatalf("set base: %v", err)
	}
	if err := o.SetFilling(id, menu.FillingGallina); err != nil {
		t.Fatalf("set filling: %v", err)
	}

	it := o.Items()[0]
	if it.Base != menu.BaseArroz || it.Filling != menu.FillingGallina {
		t.Errorf("got %q/%q, want Arroz/Gallina", it.Base, it.Filling)
	}
	if !it.Complete() {
		t.Error("item with base and filling should be complete")
	}

	if err := o.SetBase(id, "Trigo"); !errors.Is(err, order.ErrUnknownBase) {
		t.Errorf("unknown base: got %v, want ErrUnknownBase", err)
	}
	if err := o.SetFilling(id, "Res"); !errors.Is(err, order.ErrUnknownFilling) {
		t.Errorf("unknown filling: got %v, want ErrUnknownFilling", err)
	}
}

func TestToggleAddon_Idempotent(t *testing.T) {
	o := order.New()
	id := o.Items()[0].ID

	for i := 0; i < 3; i++ {
		if err := o.ToggleAddon(id, menu.AddonPasas, true); err != nil {
			t.Fatalf("toggle on: %v", err)
		}
	}
	if got := o.Items()[0].Addons; len(got) != 1 {
		t.Fatalf("addons after repeated add: got %v, want one entry", got)
	}

	for i := 0; i < 3; i++ {
		if err := o.ToggleAddon(id, menu.AddonPasas, false); err != nil {
			t.Fatalf("toggle off: %v", err)
		}
	}
	if got := o.Items()[0].Addons; len(got) != 0 {
		t.Fatalf("addons after repeated remove: got %v, want empty", got)
	}

	if err := o.ToggleAddon(id, "Salsa", true); !errors.Is(err, order.ErrUnknownAddon) {
		t.Errorf("unknown addon: got %v, want ErrUnknownAddon", err)
	}
}

func TestContact(t *testing.T) {
	o := order.New()

	o.SetContact("Ana López", "55512345", "4a calle 5-67", "portón verde")
	o.SetCoordinates("14.123456, -90.654321")

	c := o.Contact()
	if c.Name != "Ana López" || c.Phone != "55512345" {
		t.Errorf("contact not stored: %+v", c)
	}
	if c.Coordinates != "14.123456, -90.654321" {
		t.Errorf("coordinates: got %q", c.Coordinates)
	}

	// SetContact must not clobber the captured coordinates.
	o.SetContact("Ana López", "55512345", "4a calle 5-67", "")
	if got := o.Contact().Coordinates; got != "14.123456, -90.654321" {
		t.Errorf("coordinates lost on contact update: got %q", got)
	}
}

func TestItems_ReturnsSnapshot(t *testing.T) {
	o := order.New()
	id := o.Items()[0].ID
	if err := o.ToggleAddon(id, menu.AddonCiruela, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	snap := o.Items()
	snap[0].Quantity = 99
	snap[0].Addons[0] = "Salsa"

	it := o.Items()[0]
	if it.Quantity != 1 {
		t.Errorf("mutating the snapshot leaked into the order: quantity %d", it.Quantity)
	}
	if it.Addons[0] != menu.AddonCiruela {
		t.Errorf("mutating the snapshot leaked into the order: addons %v", it.Addons)
	}
}

func TestReset(t *testing.T) {
	o := order.New()
	o.AddItem()
	o.SetContact("Ana", "55512345", "4a calle", "")
	before := o.Items()[1].ID

	o.Reset()

	if o.Len() != 1 {
		t.Errorf("len after reset: got %d, want 1", o.Len())
	}
	if c := o.Contact(); c != (order.ContactInfo{}) {
		t.Errorf("contact not cleared: %+v", c)
	}
	if got := o.Items()[0].ID; got <= before {
		t.Errorf("reset reused an id: got %d after %d", got, before)
	}
}

func TestSubscribe_NotifiesOnMutation(t *testing.T) {
	o := order.New()
	var calls int
	o.Subscribe(func() { calls++ })

	id := o.AddItem()
	o.SetQuantity(id, 2)
	o.SetBase(id, menu.BaseMaiz)
	o.SetCoordinates("x")

	if calls != 4 {
		t.Errorf("listener calls: got %d, want 4", calls)
	}

	// Failed mutations must not notify.
	calls = 0
	o.SetQuantity(id, 0)
	o.RemoveItem(999)
	if calls != 0 {
		t.Errorf("listener called on failed mutation %d times", calls)
	}
}

func TestSubscribe_ListenerMayReadBack(t *testing.T) {
	o := order.New()
	done := make(chan int, 1)
	o.Subscribe(func() { done <- o.Len() })

	o.AddItem()
	if got := <-done; got != 2 {
		t.Errorf("listener read: got %d, want 2", got)
	}
}
