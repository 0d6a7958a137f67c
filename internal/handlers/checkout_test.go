package handlers

import (
	"testing"

	"storefront/internal/models"
)

func savedUser() models.User {
	return models.User{
		Addresses: []models.Address{
			{ID: "addr-1", Name: "Ada", Phone: "555", Line1: "1 Main St", City: "Springfield", PostalCode: "12345"},
		},
	}
}

func fullAddress() *checkoutAddressRequest {
	return &checkoutAddressRequest{
		Name:       "Ada",
		Phone:      "555",
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
	}
}

func TestResolveOrderAddressBlocksEmptyForm(t *testing.T) {
	req := createOrderRequest{UseSavedAddress: false, Address: &checkoutAddressRequest{}}

	if _, err := resolveOrderAddress(savedUser(), req); err == nil {
		t.Fatal("expected empty new-address form to block submission")
	}

	if _, err := resolveOrderAddress(savedUser(), createOrderRequest{}); err == nil {
		t.Fatal("expected missing address to block submission")
	}
}

func TestResolveOrderAddressPartialFormBlocked(t *testing.T) {
	addr := fullAddress()
	addr.PostalCode = "  "
	req := createOrderRequest{Address: addr}

	if _, err := resolveOrderAddress(savedUser(), req); err == nil {
		t.Fatal("expected missing postalCode to block submission")
	}
}

func TestResolveOrderAddressNewAddress(t *testing.T) {
	req := createOrderRequest{Address: fullAddress()}

	addr, err := resolveOrderAddress(savedUser(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.ID == "" {
		t.Fatal("expected generated id for new address")
	}
	if addr.City != "Springfield" {
		t.Fatalf("unexpected city %q", addr.City)
	}
}

func TestResolveOrderAddressSaved(t *testing.T) {
	req := createOrderRequest{UseSavedAddress: true, SavedAddressID: "addr-1"}

	addr, err := resolveOrderAddress(savedUser(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.ID != "addr-1" {
		t.Fatalf("expected saved address, got %q", addr.ID)
	}
}

func TestResolveOrderAddressSavedNotFound(t *testing.T) {
	req := createOrderRequest{UseSavedAddress: true, SavedAddressID: "missing"}

	if _, err := resolveOrderAddress(savedUser(), req); err == nil {
		t.Fatal("expected unknown saved address to block submission")
	}
}

func TestParseCheckoutItems(t *testing.T) {
	if _, err := parseCheckoutItems(nil); err == nil {
		t.Fatal("expected error for empty cart")
	}

	if _, err := parseCheckoutItems([]checkoutItemRequest{{ProductID: "nope", Quantity: 1}}); err == nil {
		t.Fatal("expected error for malformed product id")
	}

	if _, err := parseCheckoutItems([]checkoutItemRequest{{ProductID: "66a1b2c3d4e5f60718293a4b", Quantity: 0}}); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	quantities, err := parseCheckoutItems([]checkoutItemRequest{
		{ProductID: "66a1b2c3d4e5f60718293a4b", Quantity: 2},
		{ProductID: "66a1b2c3d4e5f60718293a4b", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range quantities {
		if q != 3 {
			t.Fatalf("expected duplicate lines to merge to quantity 3, got %d", q)
		}
	}
}
