// Package storage provides the allocation-avoidance primitives the pool is
// built on.
package storage

// ObjectPool is a reusable-object cache. Get hands out an object, preferring
// a previously pushed one over constructing a new one through the factory.
// Push optionally runs a reset hook on the returned object before parking it
// for reuse.
//
// The reuse stack is LIFO and unbounded; there is no eviction. An ObjectPool
// is not safe for concurrent use; it assumes the single-owner discipline of
// the pool that created it.
type ObjectPool struct {
	stack   []any
	factory func() any
	reset   func(any)
}

// NewObjectPool creates a pool backed by the given factory and reset hook.
// Both may be nil: with a nil factory, Get returns nil once the reuse stack
// is empty; with a nil reset hook, pushed objects are parked as-is.
func NewObjectPool(factory func() any, reset func(any)) *ObjectPool {
	return &ObjectPool{
		factory: factory,
		reset:   reset,
	}
}

// Get returns a recycled object if one is available, otherwise a freshly
// constructed one.
func (p *ObjectPool) Get() any {
	if n := len(p.stack); n > 0 {
		obj := p.stack[n-1]
		p.stack[n-1] = nil
		p.stack = p.stack[:n-1]
		return obj
	}
	if p.factory == nil {
		return nil
	}
	return p.factory()
}

// Push runs the reset hook on obj, then stores it for future reuse.
func (p *ObjectPool) Push(obj any) {
	if obj == nil {
		return
	}
	if p.reset != nil {
		p.reset(obj)
	}
	p.stack = append(p.stack, obj)
}

// Size returns the number of objects currently parked for reuse.
func (p *ObjectPool) Size() int {
	return len(p.stack)
}

// Clear drops every parked object.
func (p *ObjectPool) Clear() {
	p.stack = p.stack[:0]
}
