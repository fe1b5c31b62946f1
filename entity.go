package entpool

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tickforge/entpool/storage"
	"github.com/tickforge/entpool/types"
)

// Entity is an identifier plus sparse component storage. It owns a fixed
// array of component slots addressed by types.ComponentIndex and tracks a
// retain count that is independent of its enabled flag: a destroyed entity
// stays parked until every owner has released it, and only then is its
// shell recycled.
//
// Entities are created and destroyed exclusively through their Pool.
type Entity struct {
	id         types.EntityID
	enabled    bool
	components []types.Component
	owners     map[any]struct{}

	// componentPools is the pool's recycling table, shared by reference so
	// removed and replaced component values go straight back to their
	// per-index cache.
	componentPools []*storage.ObjectPool

	poolName string
	logger   *zerolog.Logger

	onComponentAdded    func(e *Entity, idx types.ComponentIndex, c types.Component)
	onComponentReplaced func(e *Entity, idx types.ComponentIndex, prev, next types.Component)
	onComponentRemoved  func(e *Entity, idx types.ComponentIndex, prev types.Component)
	onReleased          func(e *Entity)
}

func newEntity(totalComponents int, componentPools []*storage.ObjectPool, poolName string, logger *zerolog.Logger) *Entity {
	return &Entity{
		components:     make([]types.Component, totalComponents),
		owners:         make(map[any]struct{}),
		componentPools: componentPools,
		poolName:       poolName,
		logger:         logger,
	}
}

// ID returns the entity's identifier. IDs are unique among simultaneously
// alive entities of one pool.
func (e *Entity) ID() types.EntityID {
	return e.id
}

// IsEnabled reports whether the entity is still usable. It turns false the
// instant destruction is requested; every mutation fails from then on.
func (e *Entity) IsEnabled() bool {
	return e.enabled
}

// RetainCount returns the number of owners currently holding the entity.
func (e *Entity) RetainCount() int {
	return len(e.owners)
}

// AddComponent stores a component at the given index. It fails if the
// entity is not enabled or the slot is already occupied. Interested groups
// are notified synchronously before AddComponent returns.
func (e *Entity) AddComponent(idx types.ComponentIndex, c types.Component) error {
	if err := e.checkIndex(idx); err != nil {
		return err
	}
	if !e.enabled {
		return eris.Wrapf(ErrEntityIsNotEnabled,
			"cannot add component %d to entity %d of pool %q", idx, e.id, e.poolName)
	}
	if e.components[idx] != nil {
		return eris.Wrapf(ErrComponentSlotOccupied,
			"component %d already on entity %d of pool %q", idx, e.id, e.poolName)
	}
	e.components[idx] = c
	e.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Int("component_idx", int(idx)).
		Str("pool_name", e.poolName).
		Msg("component added")
	if e.onComponentAdded != nil {
		e.onComponentAdded(e, idx, c)
	}
	return nil
}

// ReplaceComponent swaps the component at the given index, recycling the
// superseded value. Replacing an empty slot behaves as an add. Replacing
// with an equal value still notifies observers; groups that react to value
// changes rely on it.
func (e *Entity) ReplaceComponent(idx types.ComponentIndex, c types.Component) error {
	if err := e.checkIndex(idx); err != nil {
		return err
	}
	if !e.enabled {
		return eris.Wrapf(ErrEntityIsNotEnabled,
			"cannot replace component %d on entity %d of pool %q", idx, e.id, e.poolName)
	}
	prev := e.components[idx]
	if prev == nil {
		return e.AddComponent(idx, c)
	}
	e.components[idx] = c
	if !sameComponent(prev, c) {
		e.componentPools[idx].Push(prev)
	}
	e.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Int("component_idx", int(idx)).
		Str("pool_name", e.poolName).
		Msg("component replaced")
	if e.onComponentReplaced != nil {
		e.onComponentReplaced(e, idx, prev, c)
	}
	return nil
}

// RemoveComponent clears the slot at the given index and returns the
// removed value to its component pool. It fails if the entity is not
// enabled or the slot is empty.
func (e *Entity) RemoveComponent(idx types.ComponentIndex) error {
	if err := e.checkIndex(idx); err != nil {
		return err
	}
	if !e.enabled {
		return eris.Wrapf(ErrEntityIsNotEnabled,
			"cannot remove component %d from entity %d of pool %q", idx, e.id, e.poolName)
	}
	if e.components[idx] == nil {
		return eris.Wrapf(ErrComponentSlotEmpty,
			"component %d not on entity %d of pool %q", idx, e.id, e.poolName)
	}
	e.removeComponent(idx)
	return nil
}

// removeComponent clears an occupied slot, recycles the value, and notifies
// observers. Callers have already validated the slot.
func (e *Entity) removeComponent(idx types.ComponentIndex) {
	prev := e.components[idx]
	e.components[idx] = nil
	e.componentPools[idx].Push(prev)
	e.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Int("component_idx", int(idx)).
		Str("pool_name", e.poolName).
		Msg("component removed")
	if e.onComponentRemoved != nil {
		e.onComponentRemoved(e, idx, prev)
	}
}

// removeAllComponents clears every occupied slot, one removal notification
// at a time, so groups observe each transition. The pool runs this while
// the entity is still enabled as the first step of the destroy sequence.
func (e *Entity) removeAllComponents() {
	for idx := range e.components {
		if e.components[idx] != nil {
			e.removeComponent(types.ComponentIndex(idx))
		}
	}
}

// GetComponent returns the component at the given index. It fails if the
// slot is empty.
func (e *Entity) GetComponent(idx types.ComponentIndex) (types.Component, error) {
	if err := e.checkIndex(idx); err != nil {
		return nil, err
	}
	c := e.components[idx]
	if c == nil {
		return nil, eris.Wrapf(ErrComponentSlotEmpty,
			"component %d not on entity %d of pool %q", idx, e.id, e.poolName)
	}
	return c, nil
}

// HasComponent reports whether the slot at the given index is occupied.
// Out-of-range indices report false.
func (e *Entity) HasComponent(idx types.ComponentIndex) bool {
	if int(idx) < 0 || int(idx) >= len(e.components) {
		return false
	}
	return e.components[idx] != nil
}

// HasComponents reports whether every given slot is occupied.
func (e *Entity) HasComponents(indices []types.ComponentIndex) bool {
	for _, idx := range indices {
		if !e.HasComponent(idx) {
			return false
		}
	}
	return true
}

// HasAnyComponent reports whether at least one of the given slots is
// occupied.
func (e *Entity) HasAnyComponent(indices []types.ComponentIndex) bool {
	for _, idx := range indices {
		if e.HasComponent(idx) {
			return true
		}
	}
	return false
}

// GetComponentIndices returns the sorted set of currently occupied indices.
func (e *Entity) GetComponentIndices() []types.ComponentIndex {
	indices := make([]types.ComponentIndex, 0, len(e.components))
	for idx, c := range e.components {
		if c != nil {
			indices = append(indices, types.ComponentIndex(idx))
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// Retain records owner as holding a live reference to the entity. Retaining
// twice with the same owner is a reference-counting bug and panics.
func (e *Entity) Retain(owner any) {
	if _, ok := e.owners[owner]; ok {
		logAndPanic(e.logger, eris.Errorf(
			"entity %d of pool %q is already retained by owner %v", e.id, e.poolName, owner))
	}
	e.owners[owner] = struct{}{}
}

// Release drops owner's reference. Releasing by an owner that holds no
// retain would drive the count below zero; that is a double-release bug and
// panics rather than being silently ignored. When the last owner of a
// destroyed entity releases, the shell is handed back to the pool for
// reuse.
func (e *Entity) Release(owner any) {
	if _, ok := e.owners[owner]; !ok {
		logAndPanic(e.logger, eris.Wrapf(ErrDoubleRelease,
			"entity %d of pool %q released by %v which holds no retain", e.id, e.poolName, owner))
	}
	delete(e.owners, owner)
	if len(e.owners) == 0 && e.onReleased != nil {
		e.onReleased(e)
	}
}

// destroy marks the entity dead. Only the pool calls this, after it has
// cleared the component slots, so destruction observers still saw the final
// component state.
func (e *Entity) destroy() {
	e.enabled = false
}

// reactivate readies a recycled shell for a new identity.
func (e *Entity) reactivate(id types.EntityID) {
	e.id = id
	e.enabled = true
}

func (e *Entity) checkIndex(idx types.ComponentIndex) error {
	if int(idx) < 0 || int(idx) >= len(e.components) {
		return eris.Wrapf(ErrComponentIndexOutOfRange,
			"index %d out of range [0,%d) on pool %q", idx, len(e.components), e.poolName)
	}
	return nil
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity_%d(enabled=%t, components=%d, retained=%d)",
		e.id, e.enabled, len(e.GetComponentIndices()), len(e.owners))
}
