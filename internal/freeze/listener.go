package freeze

import "waterfreezes/internal/terrain"

// OnTerrainChanged keeps the tracked water grid consistent with a top
// terrain write at cell i. The host calls it after every SetTerrain.
func (c *Component) OnTerrainChanged(i int, from, to terrain.ID) error {
	if from == to || from == terrain.None {
		return nil
	}
	if err := c.Initialize(); err != nil {
		return err
	}
	if i < 0 || i >= len(c.grid.TrackedWater) {
		return nil
	}
	// A bridge shows whatever water its under slot holds.
	if c.table.IsBridge(to) {
		to = c.host.UnderTerrainAt(i)
	}
	natural := c.grid.NaturalWater[i] != terrain.None
	oldWater, oldIce := c.table.IsFreezableWater(from), c.table.IsThawableIce(from)
	newWater, newIce := c.table.IsFreezableWater(to), c.table.IsThawableIce(to)

	switch {
	case oldWater:
		if newWater {
			return nil
		}
		if !natural && !newIce {
			c.untrack(i)
		}
	case oldIce:
		if newWater || newIce {
			return nil
		}
		// Ice replaced by land stops tracking like open water does.
		if !natural {
			c.untrack(i)
		}
	case newWater:
		if !natural {
			stats, err := c.table.Stats(to)
			if err != nil {
				return err
			}
			c.grid.TrackedWater[i] = to
			c.grid.WaterDepth[i] = stats.MaxWaterDepth
			c.log.Debug("tracking new water", "cell", i, "terrain", to)
		}
		c.recomputeAround(i)
		return nil
	default:
		return nil
	}
	if c.frost != nil {
		c.frost.ClearFrost(i)
	}
	c.recomputeAround(i)
	return nil
}

func (c *Component) untrack(i int) {
	c.grid.TrackedWater[i] = terrain.None
	c.grid.WaterDepth[i] = 0
	c.grid.IceDepth[i] = 0
}

// OnPumpDry is called after a moisture pump dried cell i, which showed was
// before drying. With MoisturePumpClearsNaturalWater set, the cell stops
// being water for good.
func (c *Component) OnPumpDry(i int, was terrain.ID) error {
	if !c.settings.MoisturePumpClearsNaturalWater || !c.table.IsFreezableWater(was) {
		return nil
	}
	if err := c.Initialize(); err != nil {
		return err
	}
	if i < 0 || i >= len(c.grid.TrackedWater) {
		return nil
	}
	c.grid.NaturalWater[i] = terrain.None
	c.untrack(i)
	c.recomputeAround(i)
	return nil
}
