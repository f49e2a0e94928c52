package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterfreezes/internal/core"
)

type fakeSim struct {
	ints   map[string]int
	floats map[string]float64
}

func (f *fakeSim) SetIntParameter(key string, v int) bool {
	if _, ok := f.ints[key]; !ok {
		return false
	}
	f.ints[key] = v
	return true
}

func (f *fakeSim) SetFloatParameter(key string, v float64) bool {
	if _, ok := f.floats[key]; !ok {
		return false
	}
	f.floats[key] = v
	return true
}

func (f *fakeSim) snapshot() core.ParameterSnapshot {
	var params []core.Parameter
	for k, v := range f.ints {
		params = append(params, core.IntParam(k, k, v))
	}
	for k, v := range f.floats {
		params = append(params, core.FloatParam(k, k, v))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "g", Params: params, Summary: "day 3"}}}
}

func TestControlAdjustsAndClamps(t *testing.T) {
	sim := &fakeSim{ints: map[string]int{"ice_rate": 750}, floats: map[string]float64{"thawing_factor": 0.25}}
	controls := newControls([]core.ParameterControl{
		{Key: "ice_rate", Type: core.ParamTypeInt, Step: 250, Min: 500, Max: 2500, HasMin: true, HasMax: true},
		{Key: "thawing_factor", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
	})
	snap := sim.snapshot()
	for i := range controls {
		controls[i].refresh(snap)
	}
	s := setterFor(sim)

	require.True(t, s.adjust(&controls[0], -1))
	assert.Equal(t, 500, sim.ints["ice_rate"])
	assert.False(t, s.adjust(&controls[0], -1), "already at the minimum")

	require.True(t, s.adjust(&controls[1], -1))
	assert.Equal(t, 0.0, sim.floats["thawing_factor"], "clamped to the minimum")
	assert.Equal(t, "0.0", controls[1].label)
	require.True(t, s.adjust(&controls[1], 1))
	assert.Equal(t, 0.5, sim.floats["thawing_factor"])
}

func TestControlWithoutValue(t *testing.T) {
	c := newControls([]core.ParameterControl{{Key: "missing", Type: core.ParamTypeInt}})[0]
	c.refresh(core.ParameterSnapshot{})
	assert.False(t, c.hasValue)
	assert.Equal(t, "--", c.label)
	_, ok := c.target(1)
	assert.False(t, ok)
	assert.False(t, setterFor(nil).adjust(&c, 1))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.5", formatFloat(0.5, 1.5))
	assert.Equal(t, "0.12", formatFloat(0.05, 0.123))
	assert.Equal(t, "0.0100", formatFloat(0.0005, 0.01))
	assert.Equal(t, "0.12", formatFloat(0, 0.123))
}

func TestStatusLines(t *testing.T) {
	sim := &fakeSim{}
	assert.Equal(t, []string{"day 3"}, statusLines(sim.snapshot()))
}
