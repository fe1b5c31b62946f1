package entpool_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/tickforge/entpool"
	"github.com/tickforge/entpool/matcher"
)

func TestCopyEntityDeepCopiesComponents(t *testing.T) {
	p := newTestPool(t)

	src := p.CreateEntity()
	pos := &Position{X: 1, Y: 2}
	assert.NilError(t, src.AddComponent(positionIdx, pos))
	assert.NilError(t, src.AddComponent(nameIdx, &Name{Value: "original"}))

	dst, err := entpool.CopyEntity(p, src)
	assert.NilError(t, err)
	assert.Assert(t, dst != src)
	assert.Assert(t, dst.ID() != src.ID())

	gotAny, err := dst.GetComponent(positionIdx)
	assert.NilError(t, err)
	got := gotAny.(*Position)
	assert.Equal(t, got.X, 1.0)
	assert.Assert(t, got != pos, "pointer components are value-isolated")

	// Mutating the source must not leak into the copy.
	pos.X = 99
	assert.Equal(t, got.X, 1.0)
}

func TestCopyEntityPreservesOccupiedSlotsOnly(t *testing.T) {
	p := newTestPool(t)

	src := p.CreateEntity()
	assert.NilError(t, src.AddComponent(nameIdx, &Name{Value: "sparse"}))

	dst, err := entpool.CopyEntity(p, src)
	assert.NilError(t, err)

	assert.Assert(t, dst.HasComponent(nameIdx))
	assert.Assert(t, !dst.HasComponent(positionIdx))
	assert.Assert(t, !dst.HasComponent(velocityIdx))
}

func TestCopyEntityDestroysPartialCopyOnFailure(t *testing.T) {
	p := newTestPool(t)

	src := p.CreateEntity()
	assert.NilError(t, src.AddComponent(positionIdx, &Position{X: 1}))
	// Channels cannot be marshaled, so copying this slot fails after the
	// position slot has already been cloned onto the new entity.
	assert.NilError(t, src.AddComponent(velocityIdx, &struct{ C chan int }{C: make(chan int)}))

	dst, err := entpool.CopyEntity(p, src)
	assert.Assert(t, err != nil)
	assert.Assert(t, dst == nil)

	assert.Equal(t, p.Count(), 1, "the partial copy was destroyed")
	assert.Equal(t, p.ReusableEntitiesCount(), 1)
	assert.Equal(t, p.RetainedEntitiesCount(), 0)
}

func TestCopyEntityJoinsGroups(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(nameIdx))

	src := p.CreateEntity()
	assert.NilError(t, src.AddComponent(nameIdx, &Name{Value: "member"}))
	assert.Equal(t, g.Count(), 1)

	_, err := entpool.CopyEntity(p, src)
	assert.NilError(t, err)
	assert.Equal(t, g.Count(), 2, "the copy satisfies the same matchers")
}
