package handlers

import (
	"math"

	"storefront/internal/models"
)

const (
	freeShippingThreshold = 50.0
	flatShippingFee       = 9.99
	taxRate               = 0.10
)

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// computeTotals derives the full pricing breakdown from order lines.
// Shipping is free strictly above the threshold; tax applies to the
// subtotal only. Always recomputed from current line prices, never cached.
func computeTotals(items []models.OrderItem) models.OrderTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = roundCents(subtotal)

	shipping := flatShippingFee
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	tax := roundCents(subtotal * taxRate)

	return models.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCents(subtotal + shipping + tax),
	}
}
