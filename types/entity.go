package types

// EntityID is a unique identifier for an entity within a single pool.
// IDs are minted from a monotonically increasing creation index; an ID is
// never shared by two simultaneously alive entities.
type EntityID uint64

// ComponentIndex addresses a single component slot on an entity. Indices
// are assigned by an external code generation step and stay stable for the
// lifetime of a pool.
type ComponentIndex int
