package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/models"
)

/* =======================
   REPEATABLE SUB-LISTS
======================= */

// Every repeatable sub-list follows the same submit contract: entries with
// all fields empty are stripped before the payload is persisted, entries
// with some but not all required fields set are rejected, and at least one
// fully-populated entry must survive stripping.

func normalizeCTAButtons(in []models.CTAButton) ([]models.CTAButton, error) {
	out := make([]models.CTAButton, 0, len(in))
	for _, b := range in {
		label := strings.TrimSpace(b.Label)
		link := strings.TrimSpace(b.Link)
		icon := strings.TrimSpace(b.Icon)

		if label == "" && link == "" && icon == "" {
			continue
		}
		if label == "" || link == "" {
			return nil, fmt.Errorf("cta button needs both label and link")
		}
		if icon != "" {
			if err := validateIcon(icon); err != nil {
				return nil, err
			}
		}

		id := strings.TrimSpace(b.ID)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.CTAButton{ID: id, Label: label, Link: link, Icon: icon})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("at least one cta button is required")
	}
	return out, nil
}

func normalizeContacts(in []models.ContactEntry) ([]models.ContactEntry, error) {
	out := make([]models.ContactEntry, 0, len(in))
	for _, entry := range in {
		typ := strings.TrimSpace(entry.Type)
		value := strings.TrimSpace(entry.Value)
		label := strings.TrimSpace(entry.Label)

		if typ == "" && value == "" && label == "" {
			continue
		}
		if typ == "" || value == "" {
			return nil, fmt.Errorf("contact entry needs both type and value")
		}
		out = append(out, models.ContactEntry{Type: typ, Value: value, Label: label})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("at least one contact entry is required")
	}
	return out, nil
}

func normalizeMetrics(in []models.ProjectMetric) ([]models.ProjectMetric, error) {
	out := make([]models.ProjectMetric, 0, len(in))
	for _, m := range in {
		label := strings.TrimSpace(m.Label)
		value := strings.TrimSpace(m.Value)

		if label == "" && value == "" {
			continue
		}
		if label == "" || value == "" {
			return nil, fmt.Errorf("metric needs both label and value")
		}
		out = append(out, models.ProjectMetric{Label: label, Value: value})
	}
	// Metrics are optional; an empty list is allowed.
	return out, nil
}

func normalizeInitiatives(in []models.Initiative, required bool) ([]models.Initiative, error) {
	out := make([]models.Initiative, 0, len(in))
	for _, entry := range in {
		title := strings.TrimSpace(entry.Title)
		description := strings.TrimSpace(entry.Description)

		if title == "" && description == "" {
			continue
		}
		if title == "" {
			return nil, fmt.Errorf("initiative needs a title")
		}
		out = append(out, models.Initiative{Title: title, Description: description})
	}

	if required && len(out) == 0 {
		return nil, fmt.Errorf("at least one initiative is required")
	}
	return out, nil
}

func normalizeTags(in []string) models.StringList {
	seen := map[string]struct{}{}
	out := models.StringList{}
	for _, raw := range in {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
