package handlers

import (
	"testing"

	"storefront/internal/models"
)

func TestNormalizeCTAButtonsStripsEmptyEntries(t *testing.T) {
	buttons, err := normalizeCTAButtons([]models.CTAButton{
		{Label: "Shop now", Link: "/shop"},
		{}, // all-empty row from the form, dropped silently
		{Label: "  ", Link: "", Icon: ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buttons) != 1 {
		t.Fatalf("expected 1 button after stripping, got %d", len(buttons))
	}
	if buttons[0].ID == "" {
		t.Fatal("expected a generated id for new button")
	}
}

func TestNormalizeCTAButtonsRequiresOneFullEntry(t *testing.T) {
	_, err := normalizeCTAButtons([]models.CTAButton{{}, {}})
	if err == nil {
		t.Fatal("expected error when every entry is empty")
	}
}

func TestNormalizeCTAButtonsRejectsPartialEntry(t *testing.T) {
	_, err := normalizeCTAButtons([]models.CTAButton{{Label: "Shop", Link: ""}})
	if err == nil {
		t.Fatal("expected error for entry missing link")
	}
}

func TestNormalizeCTAButtonsRejectsUnknownIcon(t *testing.T) {
	_, err := normalizeCTAButtons([]models.CTAButton{
		{Label: "Go", Link: "/go", Icon: "does-not-exist"},
	})
	if err == nil {
		t.Fatal("expected error for unregistered icon name")
	}
}

func TestNormalizeCTAButtonsKeepsExistingID(t *testing.T) {
	buttons, err := normalizeCTAButtons([]models.CTAButton{
		{ID: "abc-123", Label: "Go", Link: "/go", Icon: "rocket"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buttons[0].ID != "abc-123" {
		t.Fatalf("expected id to survive edit, got %q", buttons[0].ID)
	}
}

func TestNormalizeContacts(t *testing.T) {
	contacts, err := normalizeContacts([]models.ContactEntry{
		{Type: "email", Value: "hello@example.com"},
		{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}

	if _, err := normalizeContacts([]models.ContactEntry{{Type: "email"}}); err == nil {
		t.Fatal("expected error for contact missing value")
	}
}

func TestNormalizeMetricsOptional(t *testing.T) {
	metrics, err := normalizeMetrics(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metrics) != 0 {
		t.Fatalf("expected empty metrics, got %d", len(metrics))
	}
}

func TestNormalizeInitiativesRequiredFlag(t *testing.T) {
	if _, err := normalizeInitiatives(nil, true); err == nil {
		t.Fatal("expected error when initiatives required but empty")
	}
	if _, err := normalizeInitiatives(nil, false); err != nil {
		t.Fatalf("unexpected error for optional initiatives: %v", err)
	}
}

func TestNormalizeTagsDedupesAndKeepsEmptyArray(t *testing.T) {
	tags := normalizeTags([]string{" go ", "go", "", "web"})
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}

	empty := normalizeTags(nil)
	if empty == nil {
		t.Fatal("expected non-nil empty list so JSON renders [] not null")
	}
}

func TestIconRegistry(t *testing.T) {
	if !isRegisteredIcon("rocket") {
		t.Fatal("rocket should be registered")
	}
	if isRegisteredIcon("") || isRegisteredIcon("unknown") {
		t.Fatal("unknown icons must be rejected")
	}
	if err := validateIcon("nonsense"); err == nil {
		t.Fatal("expected error for unknown icon")
	}
}
