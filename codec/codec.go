// Package codec wraps the JSON codec used for component value isolation.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Encode marshals the given value.
func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode value")
	}
	return bz, nil
}

// Decode unmarshals bz into a fresh T.
func Decode[T any](bz []byte) (T, error) {
	v := new(T)
	if err := json.Unmarshal(bz, v); err != nil {
		return *v, eris.Wrap(err, "failed to decode value")
	}
	return *v, nil
}

// DecodeInto unmarshals bz into dst, which must be a pointer. It is used
// when the destination's concrete type is only known at runtime.
func DecodeInto(bz []byte, dst any) error {
	if err := json.Unmarshal(bz, dst); err != nil {
		return eris.Wrap(err, "failed to decode value")
	}
	return nil
}
