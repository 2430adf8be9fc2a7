package coupon

import (
	"maps"
	"slices"
)

// mapCodeSet implements CodeSet using a map for O(1) lookups.
type mapCodeSet struct {
	codes map[string]struct{}
}

// NewMapCodeSet creates a new, empty map-based code set.
func NewMapCodeSet(capacity int) CodeSet {
	return &mapCodeSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// NewAvailableSet builds the available pool from raw document entries:
// every entry is normalized, empties are dropped and duplicates collapse.
func NewAvailableSet(raw []string) CodeSet {
	set := &mapCodeSet{
		codes: make(map[string]struct{}, len(raw)),
	}
	for _, entry := range raw {
		set.Add(entry)
	}
	return set
}

// Contains checks if a code exists in the set.
func (s *mapCodeSet) Contains(code string) bool {
	_, exists := s.codes[code]
	return exists
}

// Size returns the number of codes in the set.
func (s *mapCodeSet) Size() int {
	return len(s.codes)
}

// Codes returns the codes in ascending order.
func (s *mapCodeSet) Codes() []string {
	return slices.Sorted(maps.Keys(s.codes))
}

// Add normalizes raw and adds it to the set. It reports whether the set grew.
func (s *mapCodeSet) Add(raw string) bool {
	code := Normalize(raw)
	if code == "" {
		return false
	}
	if _, exists := s.codes[code]; exists {
		return false
	}
	s.codes[code] = struct{}{}
	return true
}
