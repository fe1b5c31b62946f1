// Package matcher provides immutable predicates over component-index sets.
// A Matcher combines up to three index sets (all-of, any-of, none-of) with
// AND semantics; matchers with equal sets are interchangeable and share a
// canonical Key, which the pool uses to cache groups.
package matcher

import (
	"github.com/tickforge/entpool/types"
)

// ComponentSet is the read surface a Matcher evaluates against.
type ComponentSet interface {
	// HasComponent returns true if the set contains a component at the
	// given index.
	HasComponent(idx types.ComponentIndex) bool
}

// Matcher filters entities based on the components they carry. The zero
// Matcher matches every entity. Matchers are values; the chainable builders
// return copies and never mutate the receiver.
type Matcher struct {
	allOf  []types.ComponentIndex
	anyOf  []types.ComponentIndex
	noneOf []types.ComponentIndex
}

// Matches reports whether the given component set satisfies every predicate
// present on this matcher.
func (m Matcher) Matches(set ComponentSet) bool {
	for _, idx := range m.allOf {
		if !set.HasComponent(idx) {
			return false
		}
	}
	if len(m.anyOf) > 0 {
		found := false
		for _, idx := range m.anyOf {
			if set.HasComponent(idx) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, idx := range m.noneOf {
		if set.HasComponent(idx) {
			return false
		}
	}
	return true
}

// Indices returns the union of all indices this matcher references, sorted.
// Useful for diagnostics and logging.
func (m Matcher) Indices() []types.ComponentIndex {
	merged := make([]types.ComponentIndex, 0, len(m.allOf)+len(m.anyOf)+len(m.noneOf))
	merged = append(merged, m.allOf...)
	merged = append(merged, m.anyOf...)
	merged = append(merged, m.noneOf...)
	return canonicalize(merged)
}

func (m Matcher) String() string {
	return string(m.Key())
}
