package entpool

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/tickforge/entpool/matcher"
	"github.com/tickforge/entpool/types"
)

// GroupChangedFn observes an entity entering or leaving a group's
// membership. idx and c describe the component mutation that triggered the
// change.
type GroupChangedFn func(g *Group, e *Entity, idx types.ComponentIndex, c types.Component)

// GroupUpdatedFn observes a component replacement on an entity that is a
// member of the group. Membership did not change; the component value did.
type GroupUpdatedFn func(g *Group, e *Entity, idx types.ComponentIndex, prev, next types.Component)

// Group is a live set of entities satisfying one matcher. The pool feeds it
// every component mutation; the group re-evaluates only the affected entity,
// so membership stays exact without re-scanning. A group retains each member
// for as long as it stays in the set.
type Group struct {
	matcher  matcher.Matcher
	entities map[types.EntityID]*Entity

	// cache is the last GetEntities snapshot, invalidated on membership
	// change. Handed-out slices are never mutated afterwards.
	cache []*Entity

	onEntityAdded   []GroupChangedFn
	onEntityRemoved []GroupChangedFn
	onEntityUpdated []GroupUpdatedFn
}

func newGroup(m matcher.Matcher) *Group {
	return &Group{
		matcher:  m,
		entities: make(map[types.EntityID]*Entity),
	}
}

// Matcher returns the predicate this group maintains membership for.
func (g *Group) Matcher() matcher.Matcher {
	return g.matcher
}

// Count returns the current number of member entities.
func (g *Group) Count() int {
	return len(g.entities)
}

// ContainsEntity reports whether e is currently a member.
func (g *Group) ContainsEntity(e *Entity) bool {
	member, ok := g.entities[e.id]
	return ok && member == e
}

// GetEntities returns a snapshot of the membership, ordered by entity id.
// The returned slice stays valid after later membership changes and must
// not be mutated by the caller.
func (g *Group) GetEntities() []*Entity {
	if g.cache == nil {
		cache := make([]*Entity, 0, len(g.entities))
		for _, e := range g.entities {
			cache = append(cache, e)
		}
		sort.Slice(cache, func(i, j int) bool { return cache[i].id < cache[j].id })
		g.cache = cache
	}
	return g.cache
}

// SingleEntity returns the sole member of the group. It fails unless the
// group contains exactly one entity.
func (g *Group) SingleEntity() (*Entity, error) {
	if len(g.entities) != 1 {
		return nil, eris.Errorf("group %s holds %d entities, expected exactly 1",
			g.matcher, len(g.entities))
	}
	return g.GetEntities()[0], nil
}

// OnEntityAdded registers fn to run when an entity enters the group.
func (g *Group) OnEntityAdded(fn GroupChangedFn) {
	g.onEntityAdded = append(g.onEntityAdded, fn)
}

// OnEntityRemoved registers fn to run when an entity leaves the group.
func (g *Group) OnEntityRemoved(fn GroupChangedFn) {
	g.onEntityRemoved = append(g.onEntityRemoved, fn)
}

// OnEntityUpdated registers fn to run when a member entity's component is
// replaced.
func (g *Group) OnEntityUpdated(fn GroupUpdatedFn) {
	g.onEntityUpdated = append(g.onEntityUpdated, fn)
}

// handleEntity re-evaluates the matcher for one entity after a component
// add or remove and adjusts membership if the verdict changed, notifying
// observers.
func (g *Group) handleEntity(e *Entity, idx types.ComponentIndex, c types.Component) {
	if g.matcher.Matches(e) {
		g.addEntity(e, idx, c)
	} else {
		g.removeEntity(e, idx, c)
	}
}

// handleEntitySilently adjusts membership without notifying observers. The
// pool uses it when populating a freshly built group from the already-alive
// entities.
func (g *Group) handleEntitySilently(e *Entity) {
	if g.matcher.Matches(e) {
		if !g.ContainsEntity(e) {
			g.entities[e.id] = e
			g.cache = nil
			e.Retain(g)
		}
	} else if g.ContainsEntity(e) {
		delete(g.entities, e.id)
		g.cache = nil
		e.Release(g)
	}
}

// updateEntity relays a component replacement on a member entity to the
// group's observers. Replacement cannot change presence-based membership,
// so the entity set is untouched, but observers reacting to value changes
// see remove+add+update for the swapped component.
func (g *Group) updateEntity(e *Entity, idx types.ComponentIndex, prev, next types.Component) {
	if !g.ContainsEntity(e) {
		return
	}
	for _, fn := range g.onEntityRemoved {
		fn(g, e, idx, prev)
	}
	for _, fn := range g.onEntityAdded {
		fn(g, e, idx, next)
	}
	for _, fn := range g.onEntityUpdated {
		fn(g, e, idx, prev, next)
	}
}

func (g *Group) addEntity(e *Entity, idx types.ComponentIndex, c types.Component) {
	if g.ContainsEntity(e) {
		return
	}
	g.entities[e.id] = e
	g.cache = nil
	e.Retain(g)
	for _, fn := range g.onEntityAdded {
		fn(g, e, idx, c)
	}
}

func (g *Group) removeEntity(e *Entity, idx types.ComponentIndex, c types.Component) {
	if !g.ContainsEntity(e) {
		return
	}
	delete(g.entities, e.id)
	g.cache = nil
	for _, fn := range g.onEntityRemoved {
		fn(g, e, idx, c)
	}
	e.Release(g)
}

// clear wipes the membership, notifying observers of every removal and
// releasing every retained entity. The pool follows up with the
// group-cleared event.
func (g *Group) clear() {
	for _, e := range g.GetEntities() {
		delete(g.entities, e.id)
		for _, fn := range g.onEntityRemoved {
			fn(g, e, -1, nil)
		}
		e.Release(g)
	}
	g.cache = nil
}

// removeAllObservers drops every registered callback. Used when the pool
// discards the group.
func (g *Group) removeAllObservers() {
	g.onEntityAdded = nil
	g.onEntityRemoved = nil
	g.onEntityUpdated = nil
}
