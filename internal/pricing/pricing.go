// Package pricing computes line item and order prices. All arithmetic is
// decimal; subtotals surface as integers in quetzales.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tamaleria/orderform/internal/menu"
	"github.com/tamaleria/orderform/internal/order"
)

// UnitPrice is the price of one unit: filling price plus the sum of the
// add-on prices. Unset or unrecognized selections price to zero.
func UnitPrice(it order.LineItem) decimal.Decimal {
	price := menu.PriceOf(it.Filling)
	for _, a := range it.Addons {
		price = price.Add(menu.PriceOf(a))
	}
	return price
}

// Subtotal is the rounded price contribution of one line item:
// unit price times quantity, rounded up to the next integer whenever the
// product is fractional. Integer values pass through untouched.
func Subtotal(it order.LineItem) int64 {
	raw := UnitPrice(it).Mul(decimal.NewFromInt(int64(it.Quantity)))
	return raw.Ceil().IntPart()
}

// OrderTotal is the sum of the per-item subtotals. Rounding is applied per
// item, never again at the total.
func OrderTotal(items []order.LineItem) int64 {
	var total int64
	for _, it := range items {
		total += Subtotal(it)
	}
	return total
}
