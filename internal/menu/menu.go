// Package menu holds the enumerated tamale catalog and its price table.
package menu

import "github.com/shopspring/decimal"

// ── Bases (masa) — selectable, unpriced ──

const (
	BaseMaiz  = "Maíz"
	BaseArroz = "Arroz"
)

// ── Fillings (carne) — selectable, priced per unit ──

const (
	FillingPollo     = "Pollo"
	FillingCerdo     = "Cerdo"
	FillingGallina   = "Gallina"
	FillingCostillas = "Costillas"
)

// ── Add-ons (extras) — optional, priced per unit (may be zero) ──

const (
	AddonPicante  = "Picante"
	AddonAceituna = "Aceituna"
	AddonPasas    = "Pasas"
	AddonCiruela  = "Ciruela"
)

// prices maps fillings and add-ons to their unit price in quetzales.
// Bases carry no price.
var prices = map[string]decimal.Decimal{
	FillingPollo:     decimal.NewFromInt(8),
	FillingCerdo:     decimal.NewFromInt(8),
	FillingGallina:   decimal.NewFromInt(12),
	FillingCostillas: decimal.NewFromInt(12),
	AddonPicante:     decimal.Zero,
	AddonAceituna:    decimal.RequireFromString("0.5"),
	AddonPasas:       decimal.RequireFromString("0.5"),
	AddonCiruela:     decimal.RequireFromString("0.5"),
}

// PriceOf returns the unit price for a filling or add-on.
// Unknown or unset keys price to zero.
func PriceOf(name string) decimal.Decimal {
	if p, ok := prices[name]; ok {
		return p
	}
	return decimal.Zero
}

// Bases returns the selectable bases in display order.
func Bases() []string {
	return []string{BaseMaiz, BaseArroz}
}

// Fillings returns the selectable fillings in display order.
func Fillings() []string {
	return []string{FillingPollo, FillingCerdo, FillingGallina, FillingCostillas}
}

// Addons returns the selectable add-ons in display order.
func Addons() []string {
	return []string{AddonPicante, AddonAceituna, AddonPasas, AddonCiruela}
}

func IsBase(name string) bool {
	switch name {
	case BaseMaiz, BaseArroz:
		return true
	}
	return false
}

func IsFilling(name string) bool {
	switch name {
	case FillingPollo, FillingCerdo, FillingGallina, FillingCostillas:
		return true
	}
	return false
}

func IsAddon(name string) bool {
	switch name {
	case AddonPicante, AddonAceituna, AddonPasas, AddonCiruela:
		return true
	}
	return false
}
