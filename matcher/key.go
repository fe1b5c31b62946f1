package matcher

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tickforge/entpool/types"
)

// Key is the canonical identity of a matcher. Two matchers built from equal
// all-of/any-of/none-of sets produce equal keys regardless of the order the
// indices were supplied in, so keys are safe to use as cache map keys.
type Key string

// Key derives the canonical key from the three sorted index sets.
func (m Matcher) Key() Key {
	var b strings.Builder
	b.WriteString("all:")
	writeIndices(&b, m.allOf)
	b.WriteString("|any:")
	writeIndices(&b, m.anyOf)
	b.WriteString("|none:")
	writeIndices(&b, m.noneOf)
	return Key(b.String())
}

func writeIndices(b *strings.Builder, indices []types.ComponentIndex) {
	for i, idx := range indices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(idx)))
	}
}

// canonicalize returns a sorted, deduplicated copy of the given indices.
// Builders store only canonical sets so that Key derivation is a straight
// concatenation.
func canonicalize(indices []types.ComponentIndex) []types.ComponentIndex {
	if len(indices) == 0 {
		return nil
	}
	out := make([]types.ComponentIndex, len(indices))
	copy(out, indices)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	dedup := out[:1]
	for _, idx := range out[1:] {
		if idx != dedup[len(dedup)-1] {
			dedup = append(dedup, idx)
		}
	}
	return dedup
}
