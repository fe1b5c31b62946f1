package entpool

import (
	"github.com/rs/zerolog"

	"github.com/tickforge/entpool/types"
)

// Option augments how a Pool is constructed.
type Option func(p *Pool)

// WithMetaData supplies the component name/type table produced by the code
// generation step. The table length must equal the pool's total component
// count; New fails otherwise. When no explicit name is configured, the
// metadata's pool name is used.
func WithMetaData(md types.PoolMetaData) Option {
	return func(p *Pool) {
		p.metaData = md
		p.hasMetaData = true
	}
}

// WithName overrides the pool's diagnostic name. The default comes from the
// ENTPOOL_NAME environment variable, then pool metadata, then a generated
// name.
func WithName(name string) Option {
	return func(p *Pool) {
		p.name = name
	}
}

// WithLogger replaces the pool's logger. The default is the global zerolog
// logger at the configured level.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithStartCreationIndex sets the first id the pool will mint. Useful when
// several pools must produce non-overlapping ids.
func WithStartCreationIndex(index uint64) Option {
	return func(p *Pool) {
		p.creationIndex = index
	}
}

// WithComponentReset installs a reset hook for one component index,
// overriding the default Resettable-capability behavior for values recycled
// through that index's pool.
func WithComponentReset(idx types.ComponentIndex, fn func(types.Component)) Option {
	return func(p *Pool) {
		p.componentResets[idx] = fn
	}
}
