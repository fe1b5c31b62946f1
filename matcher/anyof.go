package matcher

import "github.com/tickforge/entpool/types"

// AnyOf returns a matcher that matches entities carrying at least one of
// the given component indices.
func AnyOf(indices ...types.ComponentIndex) Matcher {
	return Matcher{}.AnyOf(indices...)
}

// AnyOf returns a copy of the matcher with its any-of set replaced.
func (m Matcher) AnyOf(indices ...types.ComponentIndex) Matcher {
	m.anyOf = canonicalize(indices)
	return m
}
