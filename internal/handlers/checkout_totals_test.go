package handlers

import (
	"math"
	"testing"

	"storefront/internal/models"
)

func lines(pairs ...float64) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, models.OrderItem{Price: pairs[i], Quantity: int(pairs[i+1])})
	}
	return items
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestComputeTotalsFlatShippingBelowThreshold(t *testing.T) {
	totals := computeTotals(lines(10, 2, 5, 1)) // subtotal 25

	if !almostEqual(totals.Subtotal, 25) {
		t.Fatalf("subtotal = %v, want 25", totals.Subtotal)
	}
	if !almostEqual(totals.Shipping, 9.99) {
		t.Fatalf("shipping = %v, want 9.99", totals.Shipping)
	}
	if !almostEqual(totals.Tax, 2.5) {
		t.Fatalf("tax = %v, want 2.5", totals.Tax)
	}
	if !almostEqual(totals.Total, 37.49) {
		t.Fatalf("total = %v, want 37.49", totals.Total)
	}
}

func TestComputeTotalsFreeShippingAboveThreshold(t *testing.T) {
	totals := computeTotals(lines(30, 2)) // subtotal 60

	if !almostEqual(totals.Shipping, 0) {
		t.Fatalf("shipping = %v, want 0", totals.Shipping)
	}
	if !almostEqual(totals.Total, 66) {
		t.Fatalf("total = %v, want 66", totals.Total)
	}
}

func TestComputeTotalsThresholdIsExclusive(t *testing.T) {
	// Exactly 50 still pays shipping; the rule is subtotal > 50.
	totals := computeTotals(lines(25, 2))

	if !almostEqual(totals.Shipping, 9.99) {
		t.Fatalf("shipping = %v, want 9.99 at subtotal=50", totals.Shipping)
	}
}

func TestComputeTotalsIdentity(t *testing.T) {
	cases := [][]models.OrderItem{
		lines(19.99, 3),
		lines(0.01, 1),
		lines(100, 1, 2.5, 4),
		nil,
	}

	for _, items := range cases {
		totals := computeTotals(items)
		if !almostEqual(totals.Total, totals.Subtotal+totals.Shipping+totals.Tax) {
			t.Fatalf("total %v != subtotal %v + shipping %v + tax %v",
				totals.Total, totals.Subtotal, totals.Shipping, totals.Tax)
		}
		if !almostEqual(totals.Tax, roundCents(totals.Subtotal*0.10)) {
			t.Fatalf("tax %v is not 10%% of subtotal %v", totals.Tax, totals.Subtotal)
		}
	}
}
