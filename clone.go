package entpool

import (
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/tickforge/entpool/codec"
	"github.com/tickforge/entpool/types"
)

// CopyEntity creates a new entity in the pool carrying value-isolated
// copies of every component on src. Pointer components are deep-copied, so
// later mutation of src never leaks into the copy. A failed copy destroys
// the partially built entity before returning.
func CopyEntity(p *Pool, src *Entity) (*Entity, error) {
	dst := p.CreateEntity()
	if err := copyComponents(dst, src); err != nil {
		if destroyErr := p.DestroyEntity(dst); destroyErr != nil {
			return nil, destroyErr
		}
		return nil, err
	}
	return dst, nil
}

func copyComponents(dst, src *Entity) error {
	for _, idx := range src.GetComponentIndices() {
		c, err := src.GetComponent(idx)
		if err != nil {
			return err
		}
		cloned, err := cloneComponent(c)
		if err != nil {
			return eris.Wrapf(err, "failed to copy component %d of entity %d", idx, src.ID())
		}
		if err := dst.AddComponent(idx, cloned); err != nil {
			return err
		}
	}
	return nil
}

// cloneComponent value-isolates one component through a codec round trip
// into a fresh instance of the same concrete type.
func cloneComponent(c types.Component) (types.Component, error) {
	bz, err := codec.Encode(c)
	if err != nil {
		return nil, err
	}
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		dst := reflect.New(t.Elem()).Interface()
		if err := codec.DecodeInto(bz, dst); err != nil {
			return nil, err
		}
		return dst, nil
	}
	dst := reflect.New(t).Interface()
	if err := codec.DecodeInto(bz, dst); err != nil {
		return nil, err
	}
	return reflect.ValueOf(dst).Elem().Interface(), nil
}
