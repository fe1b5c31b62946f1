package entpool_test

import (
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/tickforge/entpool"
	"github.com/tickforge/entpool/types"
)

// Component table shared by the package tests. Indices mirror what a code
// generation step would assign.
const (
	positionIdx types.ComponentIndex = 0
	velocityIdx types.ComponentIndex = 1
	nameIdx     types.ComponentIndex = 2

	testTotalComponents = 3
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Name struct {
	Value string
}

// Counter implements types.Resettable.
type Counter struct {
	N int
}

func (c *Counter) Reset() {
	c.N = 0
}

func newTestPool(t *testing.T, opts ...entpool.Option) *entpool.Pool {
	t.Helper()
	opts = append([]entpool.Option{
		entpool.WithName("test-pool"),
		entpool.WithLogger(zerolog.Nop()),
	}, opts...)
	p, err := entpool.New(testTotalComponents, opts...)
	assert.NilError(t, err)
	return p
}
