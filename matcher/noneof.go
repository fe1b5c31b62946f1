package matcher

import "github.com/tickforge/entpool/types"

// NoneOf returns a matcher that matches entities carrying none of the given
// component indices.
func NoneOf(indices ...types.ComponentIndex) Matcher {
	return Matcher{}.NoneOf(indices...)
}

// NoneOf returns a copy of the matcher with its none-of set replaced.
func (m Matcher) NoneOf(indices ...types.ComponentIndex) Matcher {
	m.noneOf = canonicalize(indices)
	return m
}
