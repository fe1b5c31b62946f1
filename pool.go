package entpool

import (
	"reflect"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tickforge/entpool/matcher"
	"github.com/tickforge/entpool/storage"
	"github.com/tickforge/entpool/types"
)

// Pool owns every entity of one logical world: it creates and destroys
// entities, recycles their shells and component values through per-index
// object pools, and maintains the matcher-keyed group cache so repeated
// queries are O(1) instead of full scans.
//
// A Pool is single-owner: all methods must be called from one logical
// thread. Every mutation propagates synchronously to all cached groups and
// lifecycle observers before the mutating call returns, so callers always
// observe fully consistent caches.
type Pool struct {
	name            string
	totalComponents int
	metaData        types.PoolMetaData
	hasMetaData     bool
	creationIndex   uint64
	logger          zerolog.Logger

	entities         map[types.EntityID]*Entity
	reusableEntities []*Entity
	retainedEntities map[*Entity]struct{}

	componentPools  []*storage.ObjectPool
	componentResets map[types.ComponentIndex]func(types.Component)

	groups    map[matcher.Key]*Group
	groupList []*Group

	entityIndices map[string]EntityIndex

	onEntityCreated   []EntityEventFn
	onEntityDestroyed []EntityEventFn
	onGroupCreated    []GroupEventFn
	onGroupCleared    []GroupEventFn
}

// New creates a pool whose entities carry totalComponents component slots.
// Component metadata supplied via WithMetaData must describe exactly
// totalComponents components; a shorter or longer table is a configuration
// error.
func New(totalComponents int, opts ...Option) (*Pool, error) {
	cfg := GetPoolConfig()
	p := &Pool{
		name:             cfg.PoolName,
		totalComponents:  totalComponents,
		logger:           defaultLogger(cfg),
		entities:         make(map[types.EntityID]*Entity, cfg.InitialEntityCapacity),
		retainedEntities: make(map[*Entity]struct{}),
		componentResets:  make(map[types.ComponentIndex]func(types.Component)),
		groups:           make(map[matcher.Key]*Group),
		entityIndices:    make(map[string]EntityIndex),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.hasMetaData {
		md := p.metaData
		if len(md.ComponentNames) != totalComponents || len(md.ComponentTypes) != totalComponents {
			return nil, eris.Wrapf(ErrPoolMetaDataMismatch,
				"pool %q configured with %d components but metadata lists names %v (%d types)",
				p.name, totalComponents, md.ComponentNames, len(md.ComponentTypes))
		}
		if p.name == "" {
			p.name = md.PoolName
		}
	}
	if p.name == "" {
		p.name = defaultPoolName()
	}
	p.buildComponentPools()
	p.logger.Debug().
		Str("pool_name", p.name).
		Int("total_components", totalComponents).
		Msg("pool created")
	return p, nil
}

// buildComponentPools sets up one recycling pool per component index. When
// metadata declares a concrete type for an index, the pool gets a reflect
// backed factory so NewComponent can construct fresh instances; otherwise
// the pool only hands back recycled values.
func (p *Pool) buildComponentPools() {
	p.componentPools = make([]*storage.ObjectPool, p.totalComponents)
	for i := 0; i < p.totalComponents; i++ {
		idx := types.ComponentIndex(i)
		var factory func() any
		if p.hasMetaData && p.metaData.ComponentTypes[i] != nil {
			t := p.metaData.ComponentTypes[i]
			factory = func() any { return reflect.New(t).Interface() }
		}
		reset := p.componentResets[idx]
		p.componentPools[i] = storage.NewObjectPool(factory, func(obj any) {
			if reset != nil {
				reset(obj)
				return
			}
			if r, ok := obj.(types.Resettable); ok {
				r.Reset()
			}
		})
	}
}

// Name returns the pool's diagnostic label.
func (p *Pool) Name() string {
	return p.name
}

// TotalComponents returns the fixed capacity of every entity's slot array.
func (p *Pool) TotalComponents() int {
	return p.totalComponents
}

// MetaData returns the component table the pool was configured with.
func (p *Pool) MetaData() types.PoolMetaData {
	return p.metaData
}

// Count returns the number of currently alive entities.
func (p *Pool) Count() int {
	return len(p.entities)
}

// ReusableEntitiesCount returns the number of recycled shells awaiting
// reassignment.
func (p *Pool) ReusableEntitiesCount() int {
	return len(p.reusableEntities)
}

// RetainedEntitiesCount returns the number of destroyed entities still
// retained by external owners.
func (p *Pool) RetainedEntitiesCount() int {
	return len(p.retainedEntities)
}

// GetEntities returns a snapshot of the currently alive entities, ordered
// by id.
func (p *Pool) GetEntities() []*Entity {
	snapshot := p.entitySnapshot()
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].id < snapshot[j].id })
	return snapshot
}

// ContainsEntity reports whether the pool currently owns e.
func (p *Pool) ContainsEntity(e *Entity) bool {
	owned, ok := p.entities[e.id]
	return ok && owned == e
}

// CreateEntity hands out an enabled entity, reusing a recycled shell when
// one is available. The entity starts retained once, by the pool itself.
func (p *Pool) CreateEntity() *Entity {
	var e *Entity
	if n := len(p.reusableEntities); n > 0 {
		e = p.reusableEntities[n-1]
		p.reusableEntities[n-1] = nil
		p.reusableEntities = p.reusableEntities[:n-1]
	} else {
		e = newEntity(p.totalComponents, p.componentPools, p.name, &p.logger)
		e.onComponentAdded = p.componentAdded
		e.onComponentReplaced = p.componentReplaced
		e.onComponentRemoved = p.componentRemoved
		e.onReleased = p.entityReleased
	}
	id := types.EntityID(p.creationIndex)
	p.creationIndex++
	e.reactivate(id)
	e.Retain(p)
	p.entities[id] = e
	// Matchers without required components (empty, noneOf-only) accept a
	// component-less entity, so groups must see the creation itself.
	for _, g := range p.groupList {
		g.handleEntity(e, -1, nil)
	}
	p.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Str("pool_name", p.name).
		Msg("entity created")
	p.dispatchEntityEvent(p.onEntityCreated, e)
	return e
}

// DestroyEntity removes the entity from the pool. Component slots are
// cleared one removal at a time, so every group has updated its membership
// before the entity is marked dead; any remaining group membership is shed
// afterwards. Destruction observers run before the pool drops its retain,
// so the shell cannot be handed back out while they still hold the dying
// entity.
func (p *Pool) DestroyEntity(e *Entity) error {
	if !p.ContainsEntity(e) {
		return eris.Wrapf(ErrPoolDoesNotContainEntity,
			"pool %q cannot destroy entity %d it does not contain", p.name, e.id)
	}
	delete(p.entities, e.id)
	e.removeAllComponents()
	// Groups whose matcher accepts the now-empty component set still hold
	// the entity; they shed it here, while it is still enabled.
	for _, g := range p.groupList {
		g.removeEntity(e, -1, nil)
	}
	e.destroy()
	p.dispatchEntityEvent(p.onEntityDestroyed, e)
	e.Release(p)
	if e.RetainCount() > 0 {
		p.retainedEntities[e] = struct{}{}
	}
	p.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Str("pool_name", p.name).
		Int("retained_by", e.RetainCount()).
		Msg("entity destroyed")
	return nil
}

// DestroyAllEntities destroys every entity the pool currently owns. It
// fails if destroyed entities remain retained by external owners after the
// sweep: that is a reference leak in calling code and is surfaced loudly
// rather than tolerated.
func (p *Pool) DestroyAllEntities() error {
	for _, e := range p.entitySnapshot() {
		if err := p.DestroyEntity(e); err != nil {
			return err
		}
	}
	if len(p.retainedEntities) > 0 {
		return eris.Wrapf(ErrPoolStillHasRetainedEntities,
			"pool %q still has %d retained entities after destroying all",
			p.name, len(p.retainedEntities))
	}
	return nil
}

// entityReleased runs when an entity's last owner lets go. Only destroyed
// entities may ever reach a retain count of zero; the pool itself holds a
// retain for the entity's whole enabled lifetime.
func (p *Pool) entityReleased(e *Entity) {
	if e.enabled {
		logAndPanic(&p.logger, eris.Wrapf(ErrEntityNotDestroyedYet,
			"entity %d of pool %q released to zero while still enabled", e.id, p.name))
	}
	delete(p.retainedEntities, e)
	p.reusableEntities = append(p.reusableEntities, e)
}

// GetGroup returns the cached group for a structurally equal matcher, or
// builds one by scanning the currently alive entities exactly once. All
// later membership maintenance is incremental.
func (p *Pool) GetGroup(m matcher.Matcher) *Group {
	key := m.Key()
	if g, ok := p.groups[key]; ok {
		return g
	}
	g := newGroup(m)
	for _, e := range p.entities {
		g.handleEntitySilently(e)
	}
	p.groups[key] = g
	p.groupList = append(p.groupList, g)
	p.logger.Debug().
		Str("pool_name", p.name).
		Str("matcher", string(key)).
		Int("entities", g.Count()).
		Msg("group created")
	p.dispatchGroupEvent(p.onGroupCreated, g)
	return g
}

// ClearGroups clears and discards every cached group. Each group releases
// its members and fires its cleared event; later GetGroup calls rebuild
// from scratch.
func (p *Pool) ClearGroups() {
	for _, g := range p.groupList {
		g.clear()
		p.dispatchGroupEvent(p.onGroupCleared, g)
		g.removeAllObservers()
	}
	p.groups = make(map[matcher.Key]*Group)
	p.groupList = nil
}

// AddEntityIndex registers a named secondary lookup structure.
func (p *Pool) AddEntityIndex(name string, index EntityIndex) error {
	if _, ok := p.entityIndices[name]; ok {
		return eris.Wrapf(ErrEntityIndexAlreadyExists,
			"pool %q already has an entity index named %q", p.name, name)
	}
	p.entityIndices[name] = index
	return nil
}

// GetEntityIndex retrieves a previously registered entity index.
func (p *Pool) GetEntityIndex(name string) (EntityIndex, error) {
	index, ok := p.entityIndices[name]
	if !ok {
		return nil, eris.Wrapf(ErrEntityIndexDoesNotExist,
			"pool %q has no entity index named %q", p.name, name)
	}
	return index, nil
}

// DeactivateAndRemoveEntityIndices deactivates every registered entity
// index and drops the registrations. Invoked on pool teardown.
func (p *Pool) DeactivateAndRemoveEntityIndices() {
	for _, index := range p.entityIndices {
		index.Deactivate()
	}
	p.entityIndices = make(map[string]EntityIndex)
}

// NewComponent hands out a component instance for the given index,
// preferring a recycled instance over constructing a fresh one from the
// metadata-declared type.
func (p *Pool) NewComponent(idx types.ComponentIndex) (types.Component, error) {
	if err := p.checkIndex(idx); err != nil {
		return nil, err
	}
	c := p.componentPools[idx].Get()
	if c == nil {
		return nil, eris.Wrapf(ErrComponentTypeUnknown,
			"pool %q cannot construct component %d: empty recycle stack and no declared type",
			p.name, idx)
	}
	return c, nil
}

// ReturnComponent pushes a component value into the recycling pool for the
// given index.
func (p *Pool) ReturnComponent(idx types.ComponentIndex, c types.Component) error {
	if err := p.checkIndex(idx); err != nil {
		return err
	}
	p.componentPools[idx].Push(c)
	return nil
}

// ComponentPool exposes the recycling pool for one component index.
func (p *Pool) ComponentPool(idx types.ComponentIndex) (*storage.ObjectPool, error) {
	if err := p.checkIndex(idx); err != nil {
		return nil, err
	}
	return p.componentPools[idx], nil
}

// ClearComponentPool drops every recycled instance for one index.
func (p *Pool) ClearComponentPool(idx types.ComponentIndex) error {
	if err := p.checkIndex(idx); err != nil {
		return err
	}
	p.componentPools[idx].Clear()
	return nil
}

// ClearComponentPools drops every recycled instance for all indices.
func (p *Pool) ClearComponentPools() {
	for _, cp := range p.componentPools {
		cp.Clear()
	}
}

// ResetCreationIndex rewinds the id counter. Only safe when no entities are
// alive, e.g. between test cases or level loads.
func (p *Pool) ResetCreationIndex() {
	p.creationIndex = 0
}

// Reset performs a full soft reset: clears groups, destroys all entities,
// and rewinds the creation index.
func (p *Pool) Reset() error {
	p.ClearGroups()
	if err := p.DestroyAllEntities(); err != nil {
		return err
	}
	p.ResetCreationIndex()
	return nil
}

// componentAdded fans a component addition out to every cached group before
// the mutating call returns. An entity the pool no longer contains is mid
// destruction: groups may only shed it, never admit it, or the destroy
// sweep would park it in retainedEntities with no owner left to release.
func (p *Pool) componentAdded(e *Entity, idx types.ComponentIndex, c types.Component) {
	if !p.ContainsEntity(e) {
		for _, g := range p.groupList {
			g.removeEntity(e, idx, c)
		}
		return
	}
	for _, g := range p.groupList {
		g.handleEntity(e, idx, c)
	}
}

func (p *Pool) componentRemoved(e *Entity, idx types.ComponentIndex, prev types.Component) {
	if !p.ContainsEntity(e) {
		for _, g := range p.groupList {
			g.removeEntity(e, idx, prev)
		}
		return
	}
	for _, g := range p.groupList {
		g.handleEntity(e, idx, prev)
	}
}

func (p *Pool) componentReplaced(e *Entity, idx types.ComponentIndex, prev, next types.Component) {
	for _, g := range p.groupList {
		g.updateEntity(e, idx, prev, next)
	}
}

// entitySnapshot copies the live entity set so bulk operations iterate a
// stable sequence while the map mutates underneath.
func (p *Pool) entitySnapshot() []*Entity {
	snapshot := make([]*Entity, 0, len(p.entities))
	for _, e := range p.entities {
		snapshot = append(snapshot, e)
	}
	return snapshot
}

func (p *Pool) checkIndex(idx types.ComponentIndex) error {
	if int(idx) < 0 || int(idx) >= p.totalComponents {
		return eris.Wrapf(ErrComponentIndexOutOfRange,
			"index %d out of range [0,%d) on pool %q", idx, p.totalComponents, p.name)
	}
	return nil
}
