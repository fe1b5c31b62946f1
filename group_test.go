package entpool_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/tickforge/entpool"
	"github.com/tickforge/entpool/matcher"
	"github.com/tickforge/entpool/types"
)

func TestGroupMembershipTracksMutations(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	e := p.CreateEntity()
	assert.Equal(t, g.Count(), 0)

	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	assert.Equal(t, g.Count(), 1)
	assert.Assert(t, g.ContainsEntity(e))

	assert.NilError(t, e.RemoveComponent(positionIdx))
	assert.Equal(t, g.Count(), 0)
	assert.Assert(t, !g.ContainsEntity(e))
}

func TestGroupBuiltFromExistingEntities(t *testing.T) {
	p := newTestPool(t)

	match := p.CreateEntity()
	assert.NilError(t, match.AddComponent(positionIdx, &Position{}))
	other := p.CreateEntity()
	assert.NilError(t, other.AddComponent(velocityIdx, &Velocity{}))

	g := p.GetGroup(matcher.AllOf(positionIdx))
	assert.Equal(t, g.Count(), 1)
	assert.Assert(t, g.ContainsEntity(match))
	assert.Assert(t, !g.ContainsEntity(other))
}

func TestGroupWithNoneOfPredicate(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx).NoneOf(velocityIdx))

	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	assert.Equal(t, g.Count(), 1)

	// Gaining the excluded component expels the entity.
	assert.NilError(t, e.AddComponent(velocityIdx, &Velocity{}))
	assert.Equal(t, g.Count(), 0)

	// Losing it again re-admits the entity.
	assert.NilError(t, e.RemoveComponent(velocityIdx))
	assert.Equal(t, g.Count(), 1)
}

func TestGroupSnapshotIsolation(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	e1 := p.CreateEntity()
	assert.NilError(t, e1.AddComponent(positionIdx, &Position{}))

	snapshot := g.GetEntities()
	assert.Equal(t, len(snapshot), 1)

	e2 := p.CreateEntity()
	assert.NilError(t, e2.AddComponent(positionIdx, &Position{}))

	assert.Equal(t, len(snapshot), 1, "handed-out snapshot must not grow")
	assert.Equal(t, len(g.GetEntities()), 2)
}

func TestGroupSnapshotOrderedByID(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	for i := 0; i < 5; i++ {
		e := p.CreateEntity()
		assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	}
	entities := g.GetEntities()
	for i := 1; i < len(entities); i++ {
		assert.Assert(t, entities[i-1].ID() < entities[i].ID())
	}
}

func TestGroupObservers(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	var added, removed int
	var lastAdded *entpool.Entity
	g.OnEntityAdded(func(_ *entpool.Group, e *entpool.Entity, idx types.ComponentIndex, _ types.Component) {
		added++
		lastAdded = e
		assert.Equal(t, idx, positionIdx)
	})
	g.OnEntityRemoved(func(_ *entpool.Group, _ *entpool.Entity, _ types.ComponentIndex, _ types.Component) {
		removed++
	})

	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	assert.Equal(t, added, 1)
	assert.Assert(t, lastAdded == e)

	assert.NilError(t, e.RemoveComponent(positionIdx))
	assert.Equal(t, removed, 1)
}

func TestReplaceNotifiesUpdatedObservers(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	var updates int
	var gotPrev, gotNext types.Component
	g.OnEntityUpdated(func(_ *entpool.Group, _ *entpool.Entity, _ types.ComponentIndex, prev, next types.Component) {
		updates++
		gotPrev, gotNext = prev, next
	})

	e := p.CreateEntity()
	old := &Position{X: 1}
	assert.NilError(t, e.AddComponent(positionIdx, old))

	replacement := &Position{X: 1}
	assert.NilError(t, e.ReplaceComponent(positionIdx, replacement))

	assert.Equal(t, updates, 1, "replace with an equal value still notifies")
	assert.Assert(t, gotPrev == old)
	assert.Assert(t, gotNext == replacement)
	assert.Equal(t, g.Count(), 1, "membership is unchanged by replace")
}

func TestGroupRetainsMembers(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(positionIdx))

	e := p.CreateEntity()
	assert.Equal(t, e.RetainCount(), 1)

	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	assert.Equal(t, e.RetainCount(), 2, "pool and group each hold a retain")
	assert.Assert(t, g.ContainsEntity(e))

	assert.NilError(t, e.RemoveComponent(positionIdx))
	assert.Equal(t, e.RetainCount(), 1)
}

func TestSingleEntity(t *testing.T) {
	p := newTestPool(t)
	g := p.GetGroup(matcher.AllOf(nameIdx))

	_, err := g.SingleEntity()
	assert.Assert(t, err != nil)

	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(nameIdx, &Name{Value: "solo"}))

	single, err := g.SingleEntity()
	assert.NilError(t, err)
	assert.Assert(t, single == e)

	e2 := p.CreateEntity()
	assert.NilError(t, e2.AddComponent(nameIdx, &Name{Value: "crowd"}))
	_, err = g.SingleEntity()
	assert.Assert(t, err != nil)
}

// TestGroupCoherence drives a mutation sequence and checks after every step
// that each cached group holds exactly the entities its matcher accepts.
func TestGroupCoherence(t *testing.T) {
	p := newTestPool(t)
	groups := []*entpool.Group{
		p.GetGroup(matcher.AllOf(positionIdx)),
		p.GetGroup(matcher.AllOf(positionIdx, velocityIdx)),
		p.GetGroup(matcher.AnyOf(velocityIdx, nameIdx)),
		p.GetGroup(matcher.AllOf(positionIdx).NoneOf(nameIdx)),
	}

	checkCoherence := func() {
		t.Helper()
		for _, g := range groups {
			want := 0
			for _, e := range p.GetEntities() {
				if g.Matcher().Matches(e) {
					want++
					assert.Assert(t, g.ContainsEntity(e))
				} else {
					assert.Assert(t, !g.ContainsEntity(e))
				}
			}
			assert.Equal(t, g.Count(), want)
		}
	}

	entities := make([]*entpool.Entity, 0, 4)
	for i := 0; i < 4; i++ {
		entities = append(entities, p.CreateEntity())
		checkCoherence()
	}

	mutations := []func() error{
		func() error { return entities[0].AddComponent(positionIdx, &Position{}) },
		func() error { return entities[1].AddComponent(positionIdx, &Position{}) },
		func() error { return entities[1].AddComponent(velocityIdx, &Velocity{}) },
		func() error { return entities[2].AddComponent(nameIdx, &Name{Value: "c"}) },
		func() error { return entities[0].AddComponent(nameIdx, &Name{Value: "a"}) },
		func() error { return entities[1].RemoveComponent(velocityIdx) },
		func() error { return entities[0].RemoveComponent(positionIdx) },
		func() error { return entities[3].AddComponent(velocityIdx, &Velocity{}) },
		func() error { return entities[2].ReplaceComponent(nameIdx, &Name{Value: "c2"}) },
		func() error { return p.DestroyEntity(entities[1]) },
	}
	for _, mutate := range mutations {
		assert.NilError(t, mutate())
		checkCoherence()
	}
}
