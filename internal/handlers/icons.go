package handlers

import (
	"fmt"
	"sort"
	"strings"
)

// iconRegistry is the fixed set of icon names content entries may reference.
// Icon names are stored as strings and resolved by the frontend, so unknown
// names are rejected at data entry instead of rendering nothing.
var iconRegistry = map[string]struct{}{
	"rocket":    {},
	"shield":    {},
	"lightbulb": {},
	"chart":     {},
	"globe":     {},
	"cpu":       {},
	"sparkles":  {},
	"target":    {},
	"wrench":    {},
	"truck":     {},
	"handshake": {},
	"leaf":      {},
}

func isRegisteredIcon(name string) bool {
	_, ok := iconRegistry[strings.TrimSpace(name)]
	return ok
}

func validateIcon(name string) error {
	if !isRegisteredIcon(name) {
		return fmt.Errorf("unknown icon %q, allowed: %s", strings.TrimSpace(name), strings.Join(registeredIcons(), ", "))
	}
	return nil
}

func registeredIcons() []string {
	names := make([]string, 0, len(iconRegistry))
	for name := range iconRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
