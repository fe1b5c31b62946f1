package matcher

import "github.com/tickforge/entpool/types"

// AllOf returns a matcher that matches entities carrying every one of the
// given component indices.
func AllOf(indices ...types.ComponentIndex) Matcher {
	return Matcher{}.AllOf(indices...)
}

// AllOf returns a copy of the matcher with its all-of set replaced.
func (m Matcher) AllOf(indices ...types.ComponentIndex) Matcher {
	m.allOf = canonicalize(indices)
	return m
}
