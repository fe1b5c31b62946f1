package entpool

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tickforge/entpool/types"
)

// logAndPanic surfaces an invariant violation loudly. These conditions
// (double release, release-to-zero of an enabled entity) indicate corrupted
// reference counting that would poison later state if tolerated.
func logAndPanic(logger *zerolog.Logger, err error) {
	logger.Panic().Err(err).Msgf("fatal error: %v", eris.ToString(err, true))
	panic(err)
}

// sameComponent reports reference identity for pointer components. Value
// components are never considered identical, so a replace always recycles
// the superseded value. Interface equality is deliberately avoided; it
// panics on non-comparable component types.
func sameComponent(a, b types.Component) bool {
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Kind() != reflect.Pointer || rb.Kind() != reflect.Pointer {
		return false
	}
	return ra.Pointer() == rb.Pointer()
}
