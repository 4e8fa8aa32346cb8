package menu_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tamaleria/orderform/internal/menu"
)

func TestPriceOf_Fillings(t *testing.T) {
	cases := []struct {
		filling string
		want    int64
	}{
		{menu.FillingPollo, 8},
		{menu.FillingCerdo, 8},
		{menu.FillingGallina, 12},
		{menu.FillingCostillas, 12},
	}
	for _, tc := range cases {
		got := menu.PriceOf(tc.filling)
		if !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Errorf("PriceOf(%q): got %s, want %d", tc.filling, got, tc.want)
		}
	}
}

func TestPriceOf_Addons(t *testing.T) {
	if !menu.PriceOf(menu.AddonPicante).IsZero() {
		t.Errorf("Picante should be free, got %s", menu.PriceOf(menu.AddonPicante))
	}
	half := decimal.RequireFromString("0.5")
	for _, addon := range []string{menu.AddonAceituna, menu.AddonPasas, menu.AddonCiruela} {
		if got := menu.PriceOf(addon); !got.Equal(half) {
			t.Errorf("PriceOf(%q): got %s, want 0.5", addon, got)
		}
	}
}

func TestPriceOf_UnknownIsZero(t *testing.T) {
	if !menu.PriceOf("Queso").IsZero() {
		t.Error("unknown name should price to zero")
	}
	if !menu.PriceOf("").IsZero() {
		t.Error("unset selection should price to zero")
	}
}

func TestCatalogMembership(t *testing.T) {
	for _, b := range menu.Bases() {
		if !menu.IsBase(b) {
			t.Errorf("IsBase(%q) = false for a listed base", b)
		}
	}
	for _, f := range menu.Fillings() {
		if !menu.IsFilling(f) {
			t.Errorf("IsFilling(%q) = false for a listed filling", f)
		}
	}
	for _, a := range menu.Addons() {
		if !menu.IsAddon(a) {
			t.Errorf("IsAddon(%q) = false for a listed add-on", a)
		}
	}

	if menu.IsBase(menu.FillingPollo) {
		t.Error("a filling must not validate as a base")
	}
	if menu.IsFilling(menu.AddonPasas) {
		t.Error("an add-on must not validate as a filling")
	}
	if menu.IsAddon("") {
		t.Error("empty string must not validate as an add-on")
	}
}

func TestCatalogDisplayOrder(t *testing.T) {
	wantBases := []string{"Maíz", "Arroz"}
	for i, b := range menu.Bases() {
		if b != wantBases[i] {
			t.Fatalf("Bases()[%d]: got %q, want %q", i, b, wantBases[i])
		}
	}
	wantFillings := []string{"Pollo", "Cerdo", "Gallina", "Costillas"}
	for i, f := range menu.Fillings() {
		if f != wantFillings[i] {
			t.Fatalf("Fillings()[%d]: got %q, want %q", i, f, wantFillings[i])
		}
	}
}
