package catalog

import (
	"math"

	"prosalon-backend/internal/domain"
)

// ResolvePrice returns the audience-correct price for a product. Dealers
// with a dealer price see it as the displayed price, with retail as the
// struck-through reference when the two differ. Everyone else sees retail
// with no reference. The same rule applies everywhere a price surfaces:
// listings, detail views, and cart lines.
func ResolvePrice(p domain.Product, audience domain.Audience) domain.ResolvedPrice {
	if audience == domain.AudienceDealer && p.DealerPrice != nil {
		resolved := domain.ResolvedPrice{Displayed: *p.DealerPrice}
		if *p.DealerPrice != p.RetailPrice {
			retail := p.RetailPrice
			resolved.Reference = &retail
		}
		return resolved
	}
	return domain.ResolvedPrice{Displayed: p.RetailPrice}
}

// RoundMoney rounds to the minor currency unit. Only call at display or
// persistence boundaries; intermediate sums stay unrounded so rounding
// error does not compound across line items.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals are the money fields of a priced order, rounded for persistence.
type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// OrderTotals computes order money from line snapshots: each line
// contributes its captured unit price times quantity, tax applies to the
// unrounded subtotal, and shipping is added last.
func OrderTotals(items []domain.OrderItem, taxRate, shipping float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal: RoundMoney(subtotal),
		Tax:      RoundMoney(tax),
		Shipping: RoundMoney(shipping),
		Total:    RoundMoney(subtotal + tax + shipping),
	}
}
