package types

// Component is a plain data value stored at a fixed ComponentIndex on an
// entity. Components carry no behavior of their own; systems operate on
// them through the pool's component API.
type Component any

// Resettable is implemented by components that need to clear their state
// before being parked in a component pool for reuse. Components that do not
// implement Resettable are recycled as-is.
type Resettable interface {
	Reset()
}
