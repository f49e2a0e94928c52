package freeze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"waterfreezes/internal/terrain"
	pkgcore "waterfreezes/pkg/core"
)

// TestLongRunStaysConsistent drives a mixed map through seasons while random
// terrain edits land between updates, checking grid consistency after
// every step.
func TestLongRunStaysConsistent(t *testing.T) {
	rng := pkgcore.NewRNG(42)
	h := newFakeHost(12, 10, terrain.Soil)
	h.fill(1, 1, 6, 6, terrain.WaterDeep)
	h.fill(2, 2, 4, 4, terrain.WaterShallow)
	h.fill(8, 0, 9, 9, terrain.WaterMovingChestDeep)
	h.fill(0, 8, 5, 9, terrain.Marsh)
	h.top[h.idx(8, 5)] = terrain.Bridge
	h.under[h.idx(8, 5)] = terrain.WaterMovingChestDeep
	s := DefaultSettings()
	s.IceRate = MinIceRate
	c := newTestComponent(t, h, WithSettings(s))
	table := c.Table()

	edits := []terrain.ID{terrain.Soil, terrain.WaterShallow, terrain.WaterDeep, terrain.Mud, terrain.WaterOceanShallow}
	for step := 1; step <= 400; step++ {
		h.ticks = step * MinIceRate
		phase := float64(step) / 400 * 4 * math.Pi
		h.season = SeasonWinter
		if math.Sin(phase) > 0 {
			h.season = SeasonSummer
		}
		for i := range h.temp {
			h.temp[i] = 25*math.Sin(phase) + float64(rng.Between(-3, 3))
		}
		if rng.Chance(0.3) {
			i := rng.IntN(h.NumCells())
			if !table.IsBridge(h.top[i]) {
				h.SetTerrain(i, edits[rng.IntN(len(edits))])
			}
		}

		before := depthsOf(c, h.NumCells())
		require.NoError(t, c.OnTick())
		require.NoError(t, h.listenerErr)
		checkConsistent(t, h, c)
		checkConserved(t, c, before)
	}
}

type depths struct{ ice, water float64 }

func depthsOf(c *Component, n int) []depths {
	out := make([]depths, n)
	for i := range out {
		out[i] = depths{c.Ice(i), c.Water(i)}
	}
	return out
}

// checkConserved asserts that an update only moved depth between water and
// ice. Cells whose thawed water hit its cap and natural cells that may have
// been refilled are skipped.
func checkConserved(t *testing.T, c *Component, before []depths) {
	t.Helper()
	table := c.Table()
	for i, b := range before {
		tracked := c.TrackedWater(i)
		if tracked == terrain.None {
			continue
		}
		if c.NaturalWater(i) != terrain.None && c.currentSeason().Warm() {
			continue
		}
		stats, err := table.Stats(tracked)
		require.NoError(t, err)
		water := c.Water(i)
		if water >= stats.MaxWaterDepth {
			continue
		}
		dIce, dWater := c.Ice(i)-b.ice, water-b.water
		require.InDelta(t, -dIce, dWater, 1e-9, "cell %d", i)
	}
}

func TestUpdateConservesWaterWithoutRefill(t *testing.T) {
	h := newFakeHost(8, 8, terrain.Soil)
	h.fill(1, 1, 6, 6, terrain.WaterShallow)
	h.fill(2, 2, 5, 5, terrain.WaterDeep)
	h.season = SeasonWinter
	s := DefaultSettings()
	s.IceRate = MinIceRate
	c := newTestComponent(t, h, WithSettings(s))

	froze, thawed := false, false
	for step := 1; step <= 120; step++ {
		h.ticks = step * MinIceRate
		h.setAllTemp(-12)
		if step > 60 {
			h.setAllTemp(15)
		}
		before := depthsOf(c, h.NumCells())
		require.NoError(t, c.OnTick())
		checkConserved(t, c, before)
		for i, b := range before {
			froze = froze || c.Ice(i) > b.ice
			thawed = thawed || c.Ice(i) < b.ice
		}
	}
	require.True(t, froze)
	require.True(t, thawed)
}

func checkConsistent(t *testing.T, h *fakeHost, c *Component) {
	t.Helper()
	table := c.Table()
	for i := range h.NumCells() {
		ice, water := c.Ice(i), c.Water(i)
		require.GreaterOrEqual(t, ice, 0.0, "cell %d", i)
		require.GreaterOrEqual(t, water, 0.0, "cell %d", i)

		tracked := c.TrackedWater(i)
		if tracked == terrain.None {
			require.Zero(t, ice, "cell %d", i)
			require.Zero(t, water, "cell %d", i)
			continue
		}
		stats, err := table.Stats(tracked)
		require.NoError(t, err)
		require.LessOrEqual(t, ice, stats.MaxIceDepth, "cell %d", i)
		require.LessOrEqual(t, water, stats.MaxWaterDepth, "cell %d", i)

		shown := h.top[i]
		if table.IsBridge(shown) {
			shown = h.under[i]
		}
		known := table.IsFreezableWater(shown) || table.IsThawableIce(shown) || c.NaturalWater(i) != terrain.None
		require.True(t, known, "cell %d tracks %s but shows %s", i, tracked, shown)
	}
}
