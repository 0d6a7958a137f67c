package handlers

import (
	"fmt"

	"storefront/internal/listing"
)

func hasValidDiscount(price, discountPrice float64) bool {
	_, ok := listing.DiscountPercent(price, discountPrice)
	return ok
}

func effectiveProductPrice(price, discountPrice float64) float64 {
	if hasValidDiscount(price, discountPrice) {
		return discountPrice
	}
	return price
}

func validateDiscountFields(price, discountPrice float64, discountSet bool) error {
	if !discountSet {
		return nil
	}
	if discountPrice <= 0 {
		return fmt.Errorf("discountPrice must be greater than 0")
	}
	if discountPrice >= price {
		return fmt.Errorf("discountPrice must be less than price")
	}
	return nil
}
