package entpool

// Pool lifecycle notifications are delivered by direct dispatch to ordered
// callback lists, not through a message bus: every subscriber observes a
// mutation before the originating call returns.

// EntityEventFn observes entity lifecycle transitions on a pool.
type EntityEventFn func(p *Pool, e *Entity)

// GroupEventFn observes group lifecycle transitions on a pool.
type GroupEventFn func(p *Pool, g *Group)

// OnEntityCreated registers fn to run after every entity creation.
func (p *Pool) OnEntityCreated(fn EntityEventFn) {
	p.onEntityCreated = append(p.onEntityCreated, fn)
}

// OnEntityDestroyed registers fn to run after an entity has been destroyed
// and released by the pool.
func (p *Pool) OnEntityDestroyed(fn EntityEventFn) {
	p.onEntityDestroyed = append(p.onEntityDestroyed, fn)
}

// OnGroupCreated registers fn to run the first time a group is built for a
// structurally distinct matcher.
func (p *Pool) OnGroupCreated(fn GroupEventFn) {
	p.onGroupCreated = append(p.onGroupCreated, fn)
}

// OnGroupCleared registers fn to run when a cached group is cleared during
// ClearGroups.
func (p *Pool) OnGroupCleared(fn GroupEventFn) {
	p.onGroupCleared = append(p.onGroupCleared, fn)
}

func (p *Pool) dispatchEntityEvent(fns []EntityEventFn, e *Entity) {
	for _, fn := range fns {
		fn(p, e)
	}
}

func (p *Pool) dispatchGroupEvent(fns []GroupEventFn, g *Group) {
	for _, fn := range fns {
		fn(p, g)
	}
}
