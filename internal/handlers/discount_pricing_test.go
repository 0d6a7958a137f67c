package handlers

import "testing"

func TestValidateDiscountFieldsUnsetIsValid(t *testing.T) {
	if err := validateDiscountFields(100, 0, false); err != nil {
		t.Fatalf("unset discount should not be validated, got %v", err)
	}
}

func TestValidateDiscountFieldsRejectsBadValues(t *testing.T) {
	tests := []float64{0, -10, 100, 120}
	for _, discountPrice := range tests {
		err := validateDiscountFields(100, discountPrice, true)
		if err == nil {
			t.Fatalf("expected validation error for discountPrice=%v", discountPrice)
		}
	}
}

func TestEffectiveProductPriceUsesDiscountWhenValid(t *testing.T) {
	if got := effectiveProductPrice(100, 75); got != 75 {
		t.Fatalf("expected discount price 75, got %v", got)
	}
	if got := effectiveProductPrice(100, 0); got != 100 {
		t.Fatalf("expected regular price 100 without discount, got %v", got)
	}
	if got := effectiveProductPrice(100, 130); got != 100 {
		t.Fatalf("expected regular price 100 for discount above price, got %v", got)
	}
}
