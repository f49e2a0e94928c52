package freeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterfreezes/internal/terrain"
)

func TestListenerTracksDugWater(t *testing.T) {
	h, c := pond(t)
	dug, shore := h.idx(4, 2), h.idx(3, 2)
	require.Equal(t, 3.0, c.Exposure(shore))

	h.SetTerrain(dug, terrain.WaterShallow)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(dug))
	assert.Equal(t, terrain.None, c.NaturalWater(dug))
	assert.Equal(t, 100.0, c.Water(dug))
	assert.Equal(t, 2.0, c.Exposure(dug))
	assert.Equal(t, 2.0, c.Exposure(shore))

	h.SetTerrain(dug, terrain.Soil)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.None, c.TrackedWater(dug))
	assert.Zero(t, c.Water(dug))
	assert.Equal(t, 1, h.frost[dug])
	assert.Equal(t, 3.0, c.Exposure(shore))
}

func TestListenerKeepsNaturalWater(t *testing.T) {
	h, c := pond(t)
	i := h.idx(2, 2)

	h.SetTerrain(i, terrain.Soil)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(i))
	assert.Equal(t, 100.0, c.Water(i))
	assert.Equal(t, 1, h.frost[i])
}

func TestListenerIgnoresPhaseChanges(t *testing.T) {
	h, c := pond(t)
	i := h.idx(2, 1)
	exposure := c.Exposure(i)

	h.SetTerrain(i, terrain.LakeIceThin)
	h.SetTerrain(i, terrain.LakeIce)
	h.SetTerrain(i, terrain.WaterShallow)
	h.SetTerrain(i, terrain.WaterDeep)
	require.NoError(t, h.listenerErr)

	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(i))
	assert.Equal(t, exposure, c.Exposure(i))
}

func TestListenerIgnoresUnsupportedWater(t *testing.T) {
	h, c := pond(t)
	i := h.idx(0, 0)
	h.SetTerrain(i, terrain.WaterOceanShallow)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.None, c.TrackedWater(i))
}

func TestListenerIgnoresFirstTerrain(t *testing.T) {
	h, c := pond(t)
	i := h.idx(0, 0)
	require.NoError(t, c.OnTerrainChanged(i, terrain.None, terrain.WaterShallow))
	assert.Equal(t, terrain.None, c.TrackedWater(i))
}

func TestListenerSelfInitializes(t *testing.T) {
	h := newFakeHost(5, 5, terrain.Soil)
	h.fill(1, 1, 3, 3, terrain.WaterShallow)
	c := New(h, terrain.MustVanilla(), WithLogger(quietLogger()))
	h.comp = c

	h.SetTerrain(h.idx(0, 0), terrain.WaterShallow)
	require.NoError(t, h.listenerErr)
	assert.True(t, c.Initialized())
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(h.idx(0, 0)))
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(h.idx(2, 2)))
}

func TestPumpDry(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h, c := pond(t)
		i := h.idx(2, 1)
		h.top[i] = terrain.Mud
		require.NoError(t, c.OnPumpDry(i, terrain.WaterShallow))
		assert.Equal(t, terrain.WaterShallow, c.NaturalWater(i))
	})
	t.Run("enabled", func(t *testing.T) {
		h := newFakeHost(5, 5, terrain.Soil)
		h.fill(1, 1, 3, 3, terrain.WaterShallow)
		s := DefaultSettings()
		s.MoisturePumpClearsNaturalWater = true
		c := newTestComponent(t, h, WithSettings(s))
		i, center := h.idx(2, 1), h.idx(2, 2)

		h.SetTerrain(i, terrain.Mud)
		require.NoError(t, c.OnPumpDry(i, terrain.WaterShallow))
		assert.Equal(t, terrain.None, c.NaturalWater(i))
		assert.Equal(t, terrain.None, c.TrackedWater(i))
		assert.Zero(t, c.Water(i))
		assert.Equal(t, 1.0, c.Exposure(center))

		require.NoError(t, c.OnPumpDry(h.idx(0, 0), terrain.Soil))
	})
}

func TestListenerUntracksPavedIce(t *testing.T) {
	h, c := pond(t)
	dug := h.idx(4, 2)
	h.SetTerrain(dug, terrain.WaterShallow)
	require.NoError(t, c.SetIceDepthToMax(dug))
	require.Equal(t, terrain.LakeIce, h.top[dug])

	h.SetTerrain(dug, terrain.Soil)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.None, c.TrackedWater(dug))
	assert.Zero(t, c.Ice(dug))

	h.ticks = 1000
	require.NoError(t, c.OnTick())
	assert.Equal(t, terrain.Soil, h.top[dug])
}

func TestListenerKeepsWaterUnderNewBridge(t *testing.T) {
	h, c := pond(t)
	dug := h.idx(4, 2)
	h.SetTerrain(dug, terrain.WaterShallow)
	require.Equal(t, terrain.WaterShallow, c.TrackedWater(dug))

	h.under[dug] = terrain.WaterShallow
	h.SetTerrain(dug, terrain.Bridge)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(dug))
	assert.Equal(t, 100.0, c.Water(dug))

	frozen := h.idx(4, 3)
	h.SetTerrain(frozen, terrain.WaterShallow)
	h.SetTerrain(frozen, terrain.LakeIce)
	h.under[frozen] = terrain.LakeIce
	h.SetTerrain(frozen, terrain.Bridge)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.WaterShallow, c.TrackedWater(frozen))

	bare := h.idx(0, 0)
	h.SetTerrain(bare, terrain.Bridge)
	require.NoError(t, h.listenerErr)
	assert.Equal(t, terrain.None, c.TrackedWater(bare))
}
