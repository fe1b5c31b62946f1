package entpool

import (
	"github.com/rotisserie/eris"

	"github.com/tickforge/entpool/types"
)

// EntityIndex is a named secondary lookup over entities, maintained outside
// the pool's core storage. The pool's only contract with an index is
// registration by name, retrieval by name, and deactivation on teardown.
type EntityIndex interface {
	Name() string
	// Activate starts maintaining the index from its backing group.
	Activate()
	// Deactivate stops maintenance and drops all indexed entries.
	Deactivate()
}

// IndexKeyFn extracts the index key from a member entity and the component
// that triggered the membership change. c is nil when the change was not
// driven by a single component mutation (initial group scan, group clear);
// implementations should then read the component off the entity.
type IndexKeyFn func(e *Entity, c types.Component) string

// PrimaryEntityIndex maintains a unique key to entity mapping over the
// members of one group. Keys must be unique: indexing a second entity under
// an existing key is a programmer error and panics.
type PrimaryEntityIndex struct {
	name      string
	group     *Group
	keyFn     IndexKeyFn
	index     map[string]*Entity
	activated bool
}

// NewPrimaryEntityIndex builds an index over the given group and activates
// it immediately, indexing the group's current members.
func NewPrimaryEntityIndex(name string, g *Group, keyFn IndexKeyFn) *PrimaryEntityIndex {
	idx := &PrimaryEntityIndex{
		name:  name,
		group: g,
		keyFn: keyFn,
		index: make(map[string]*Entity),
	}
	g.OnEntityAdded(idx.entityAdded)
	g.OnEntityRemoved(idx.entityRemoved)
	idx.Activate()
	return idx
}

func (idx *PrimaryEntityIndex) Name() string {
	return idx.name
}

// GetEntity looks up the entity indexed under key.
func (idx *PrimaryEntityIndex) GetEntity(key string) (*Entity, bool) {
	e, ok := idx.index[key]
	return e, ok
}

// Activate begins maintaining the index, seeding it from the group's
// current membership. Activating an active index is a no-op.
func (idx *PrimaryEntityIndex) Activate() {
	if idx.activated {
		return
	}
	idx.activated = true
	for _, e := range idx.group.GetEntities() {
		idx.addEntity(e, nil)
	}
}

// Deactivate stops maintenance and drops every indexed entry. The group
// subscription stays registered but is ignored until reactivation.
func (idx *PrimaryEntityIndex) Deactivate() {
	idx.activated = false
	idx.index = make(map[string]*Entity)
}

func (idx *PrimaryEntityIndex) entityAdded(_ *Group, e *Entity, _ types.ComponentIndex, c types.Component) {
	if !idx.activated {
		return
	}
	idx.addEntity(e, c)
}

func (idx *PrimaryEntityIndex) entityRemoved(_ *Group, e *Entity, _ types.ComponentIndex, c types.Component) {
	if !idx.activated {
		return
	}
	delete(idx.index, idx.keyFn(e, c))
}

func (idx *PrimaryEntityIndex) addEntity(e *Entity, c types.Component) {
	key := idx.keyFn(e, c)
	if existing, ok := idx.index[key]; ok && existing != e {
		logAndPanic(e.logger, eris.Errorf(
			"entity index %q already holds key %q (entity %d), cannot index entity %d",
			idx.name, key, existing.id, e.id))
	}
	idx.index[key] = e
}
