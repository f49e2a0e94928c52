package freeze

import "waterfreezes/internal/terrain"

// iceScale converts ice depth into the thickness divisor of thawing.
const iceScale = 100

// updatePhase moves depth between water and ice according to the cell's
// temperature relative to the water's freezing point.
func (c *Component) updatePhase(i int, stats terrain.WaterStats) {
	temp := c.host.TemperatureAt(i)
	if stats.IsMoving {
		temp += c.settings.MovingWaterOffset
	}
	temp -= stats.FreezingPoint

	switch {
	case temp < 0:
		c.freeze(i, -temp, stats)
	case temp > 0:
		c.thaw(i, temp, stats)
	}
}

func (c *Component) freeze(i int, cold float64, stats terrain.WaterStats) {
	ice, water := c.grid.IceDepth[i], c.grid.WaterDepth[i]
	if water <= 0 || ice >= stats.MaxIceDepth {
		return
	}
	exposure := c.grid.Exposure[i]
	// Interior water only freezes once ice reaches it from an edge.
	if exposure == 0 && !c.touchesIce(i) {
		return
	}
	change := cold * (c.settings.FreezingFactor + exposure) / c.settings.ReferenceRate * float64(c.settings.IceRate)
	delta := min(change, water)
	newIce := ice + delta
	if newIce > stats.MaxIceDepth {
		newIce = stats.MaxIceDepth
		delta = stats.MaxIceDepth - ice
	}
	c.grid.IceDepth[i] = newIce
	c.grid.WaterDepth[i] = max(water-delta, 0)
}

func (c *Component) thaw(i int, warmth float64, stats terrain.WaterStats) {
	ice, water := c.grid.IceDepth[i], c.grid.WaterDepth[i]
	if ice <= 0 {
		return
	}
	exposure := c.grid.Exposure[i]
	// Still water thaws faster near land, moving water slower.
	divisor := c.settings.ThawingFactor - exposure
	if stats.IsMoving {
		divisor = c.settings.ThawingFactor + exposure
	}
	divisor = max(divisor, 1)
	change := warmth / divisor / (ice / iceScale) / c.settings.ReferenceRate * float64(c.settings.IceRate)
	delta := min(change, ice)
	c.grid.IceDepth[i] = ice - delta
	c.grid.WaterDepth[i] = min(water+delta, stats.MaxWaterDepth)
}
