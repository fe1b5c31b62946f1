package entpool_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/tickforge/entpool"
	"github.com/tickforge/entpool/matcher"
)

func TestComponentMutationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p, err := entpool.New(testTotalComponents,
		entpool.WithName("logged-pool"),
		entpool.WithLogger(logger))
	assert.NilError(t, err)

	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	assert.NilError(t, e.ReplaceComponent(positionIdx, &Position{X: 1}))
	assert.NilError(t, e.RemoveComponent(positionIdx))

	out := buf.String()
	assert.Assert(t, strings.Contains(out, "component added"))
	assert.Assert(t, strings.Contains(out, "component replaced"))
	assert.Assert(t, strings.Contains(out, "component removed"))
	assert.Assert(t, strings.Contains(out, `"pool_name":"logged-pool"`))
	assert.Assert(t, strings.Contains(out, `"entity_id":0`))
}

func TestLogState(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p, err := entpool.New(testTotalComponents,
		entpool.WithName("state-pool"),
		entpool.WithLogger(logger))
	assert.NilError(t, err)

	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(positionIdx, &Position{}))
	p.GetGroup(matcher.AllOf(positionIdx))

	buf.Reset()
	p.LogState(zerolog.InfoLevel)

	out := buf.String()
	assert.Assert(t, strings.Contains(out, `"pool_name":"state-pool"`))
	assert.Assert(t, strings.Contains(out, `"entities":1`))
	assert.Assert(t, strings.Contains(out, `"groups":1`))
	assert.Assert(t, strings.Contains(out, "log_id"))
}

func TestLogEntity(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	p := newTestPool(t)
	e := p.CreateEntity()
	assert.NilError(t, e.AddComponent(velocityIdx, &Velocity{}))

	entpool.LogEntity(&logger, zerolog.InfoLevel, e)

	out := buf.String()
	assert.Assert(t, strings.Contains(out, `"enabled":true`))
	assert.Assert(t, strings.Contains(out, `"retain_count":1`))
	assert.Assert(t, strings.Contains(out, `"component_indices":[1]`))
}
