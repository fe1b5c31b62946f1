package entpool

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func defaultLogger(cfg PoolConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return log.Logger.Level(level)
}

func defaultPoolName() string {
	return "pool-" + uuid.NewString()[:8]
}

// LogEntity loads one entity's state into a zerolog event at the given
// level.
func LogEntity(logger *zerolog.Logger, level zerolog.Level, e *Entity) {
	event := logger.WithLevel(level)
	arr := zerolog.Arr()
	for _, idx := range e.GetComponentIndices() {
		arr = arr.Int(int(idx))
	}
	event.
		Uint64("entity_id", uint64(e.ID())).
		Bool("enabled", e.IsEnabled()).
		Int("retain_count", e.RetainCount()).
		Array("component_indices", arr).
		Send()
}

// LogGroup loads one group's state into a zerolog event at the given level.
func LogGroup(logger *zerolog.Logger, level zerolog.Level, g *Group) {
	logger.WithLevel(level).
		Str("matcher", string(g.Matcher().Key())).
		Int("entities", g.Count()).
		Send()
}

// LogState dumps the pool's state at the given level. Every line carries
// the same generated log id so multi-line dumps can be correlated.
func (p *Pool) LogState(level zerolog.Level) {
	logID := uuid.New().String()
	event := p.logger.WithLevel(level).
		Str("log_id", logID).
		Str("pool_name", p.name).
		Int("total_components", p.totalComponents).
		Int("entities", p.Count()).
		Int("reusable_entities", p.ReusableEntitiesCount()).
		Int("retained_entities", p.RetainedEntitiesCount()).
		Int("groups", len(p.groupList))
	if p.hasMetaData {
		arr := zerolog.Arr()
		for i, name := range p.metaData.ComponentNames {
			arr = arr.Dict(zerolog.Dict().
				Int("component_idx", i).
				Str("component_name", name))
		}
		event = event.Array("components", arr)
	}
	event.Send()
	for _, g := range p.groupList {
		groupLogger := p.logger.With().Str("log_id", logID).Logger()
		LogGroup(&groupLogger, level, g)
	}
}
