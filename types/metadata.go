package types

import "reflect"

// PoolMetaData is the component table an external code generation step
// produces for a pool: a human-readable pool name plus parallel name/type
// sequences, one per component index. Both sequences must have exactly one
// entry per component slot the pool is configured with.
type PoolMetaData struct {
	PoolName       string
	ComponentNames []string
	ComponentTypes []reflect.Type
}

// ComponentName returns the registered name for the given index, or a
// placeholder when the index has no metadata entry.
func (m PoolMetaData) ComponentName(idx ComponentIndex) string {
	if int(idx) < 0 || int(idx) >= len(m.ComponentNames) {
		return "unknown"
	}
	return m.ComponentNames[idx]
}
