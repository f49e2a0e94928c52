package freeze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterfreezes/internal/terrain"
)

func TestResolveStage(t *testing.T) {
	table := terrain.MustVanilla()
	deep, err := table.Stats(terrain.WaterDeep)
	require.NoError(t, err)
	shallow, err := table.Stats(terrain.WaterShallow)
	require.NoError(t, err)

	cases := []struct {
		name  string
		water terrain.ID
		stats terrain.WaterStats
		depth float64
		ice   float64
		want  terrain.ID
	}{
		{"open water", terrain.WaterDeep, deep, 10, 0, terrain.WaterDeep},
		{"dry", terrain.WaterDeep, deep, 0, 0, terrain.None},
		{"below thin ratio", terrain.WaterDeep, deep, 85.001, 14.999, terrain.WaterDeep},
		{"at thin ratio", terrain.WaterDeep, deep, 85, 15, terrain.LakeIceThin},
		{"thin below regular", terrain.WaterDeep, deep, 0, 49.999, terrain.LakeIceThin},
		{"regular at threshold", terrain.WaterDeep, deep, 0, 50, terrain.LakeIce},
		{"regular below thick", terrain.WaterDeep, deep, 0, 109.999, terrain.LakeIce},
		{"thick at threshold", terrain.WaterDeep, deep, 0, 110, terrain.LakeIceThick},
		{"no thick mapping below thick", terrain.WaterShallow, shallow, 0, 100, terrain.LakeIce},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveStage(tc.water, tc.depth, tc.ice, tc.stats)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			again, err := ResolveStage(tc.water, tc.depth, tc.ice, tc.stats)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveStageWithoutMappingIsConfigError(t *testing.T) {
	table := terrain.MustVanilla()
	marsh, err := table.Stats(terrain.Marsh)
	require.NoError(t, err)

	_, err = ResolveStage(terrain.Marsh, 0, 60, marsh)
	var cfg *terrain.ConfigError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, terrain.Marsh, cfg.Terrain)
	assert.Contains(t, cfg.Error(), "ice depth 60")

	_, err = ResolveStage(terrain.WaterShallow, 0, 1, terrain.WaterStats{})
	require.True(t, errors.As(err, &cfg))
}

func TestStageWritesUnderBridges(t *testing.T) {
	h := newFakeHost(3, 3, terrain.WaterShallow)
	h.top[4] = terrain.Bridge
	h.under[4] = terrain.WaterShallow
	c := newTestComponent(t, h)
	writes := h.topWrites

	require.NoError(t, c.SetIceDepthToMax(4))
	assert.Equal(t, terrain.Bridge, h.top[4])
	assert.Equal(t, terrain.LakeIce, h.under[4])
	assert.Equal(t, writes, h.topWrites)

	require.NoError(t, c.SetIceDepthToZero(4))
	assert.Equal(t, terrain.Bridge, h.top[4])
	assert.Equal(t, terrain.WaterShallow, h.under[4])
}

func TestStageWritesUnderInteropBridges(t *testing.T) {
	fh := newFakeHost(3, 3, terrain.WaterShallow)
	h := &bridgeHost{fakeHost: fh, bridged: map[int]bool{4: true}}
	c := attach(t, h, fh)

	require.NoError(t, c.SetIceDepthToMax(4))
	assert.Equal(t, terrain.WaterShallow, fh.top[4])
	assert.Equal(t, terrain.LakeIce, fh.under[4])

	require.NoError(t, c.SetIceDepthToMax(1))
	assert.Equal(t, terrain.LakeIce, fh.top[1])
}

func TestStageSkipsRedundantWrites(t *testing.T) {
	h, c := pond(t)
	h.setAllTemp(10)
	before := h.topWrites
	for tick := 1; tick <= 5; tick++ {
		h.ticks = tick * 1000
		require.NoError(t, c.OnTick())
	}
	assert.Equal(t, before, h.topWrites)
}

func TestStageLeavesDryCellsAlone(t *testing.T) {
	h, c := pond(t)
	i := h.idx(2, 2)
	require.NoError(t, c.SetIceAndWaterDepthToZero(i))
	assert.Equal(t, terrain.WaterShallow, h.top[i])
	assert.Zero(t, c.Water(i))
}
