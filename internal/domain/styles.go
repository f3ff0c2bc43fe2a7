package domain

import (
	"fmt"
	"sync"
)

// styleCatalog is the fixed, ordered set of style labels. Order is display
// order only.
var styleCatalog = []string{
	"Gen Z",
	"Shakespeare",
	"Corporate",
	"Yoda",
	"Pirate",
	"Rap",
	"Victorian Era",
}

var styleSet = map[string]bool{}

func init() {
	for _, s := range styleCatalog {
		styleSet[s] = true
	}
}

// Styles returns a copy of the style catalog in display order.
func Styles() []string {
	out := make([]string, len(styleCatalog))
	copy(out, styleCatalog)
	return out
}

// IsValidStyle checks if a label is a member of the style catalog.
func IsValidStyle(label string) bool {
	return styleSet[label]
}

// StyleSelector holds the currently chosen style.
// The zero value selects the first catalog entry.
type StyleSelector struct {
	mu       sync.RWMutex
	selected string
}

// Select changes the current style. Unknown labels are rejected and leave
// the selection unchanged.
func (s *StyleSelector) Select(label string) error {
	if !IsValidStyle(label) {
		return fmt.Errorf("unknown style %q", label)
	}
	s.mu.Lock()
	s.selected = label
	s.mu.Unlock()
	return nil
}

// Current returns the selected style.
func (s *StyleSelector) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return styleCatalog[0]
	}
	return s.selected
}
