package freeze

import (
	"errors"

	"waterfreezes/internal/terrain"
)

// Administrative operations. Each either applies fully or returns a
// *RejectedError without touching state.

// SetAsNaturalWater marks the tracked water of cell i as natural.
func (c *Component) SetAsNaturalWater(i int) error {
	const op = "set natural water"
	water, err := c.trackedFor(op, i)
	if err != nil {
		return err
	}
	c.grid.NaturalWater[i] = water
	return nil
}

// ClearNaturalWater drops the natural water flag of cell i.
func (c *Component) ClearNaturalWater(i int) error {
	const op = "clear natural water"
	if err := c.naturalFor(op, i); err != nil {
		return err
	}
	c.grid.NaturalWater[i] = terrain.None
	return nil
}

// ClearNaturalWaterAndDepth drops the natural water flag of cell i and
// empties its water.
func (c *Component) ClearNaturalWaterAndDepth(i int) error {
	const op = "clear natural water and depth"
	if err := c.naturalFor(op, i); err != nil {
		return err
	}
	c.grid.NaturalWater[i] = terrain.None
	c.grid.WaterDepth[i] = 0
	return c.updateStage(i)
}

// SetWaterDepthToMax fills cell i with water.
func (c *Component) SetWaterDepthToMax(i int) error {
	const op = "set water depth to max"
	water, err := c.trackedFor(op, i)
	if err != nil {
		return err
	}
	stats, err := c.table.Stats(water)
	if err != nil {
		return err
	}
	c.grid.WaterDepth[i] = stats.MaxWaterDepth
	return c.updateStage(i)
}

// SetWaterDepthToZero empties the water of cell i.
func (c *Component) SetWaterDepthToZero(i int) error {
	const op = "set water depth to zero"
	if _, err := c.trackedFor(op, i); err != nil {
		return err
	}
	c.grid.WaterDepth[i] = 0
	return c.updateStage(i)
}

// SetIceDepthToMax freezes cell i solid.
func (c *Component) SetIceDepthToMax(i int) error {
	const op = "set ice depth to max"
	water, err := c.trackedFor(op, i)
	if err != nil {
		return err
	}
	stats, err := c.table.Stats(water)
	if err != nil {
		return err
	}
	c.grid.IceDepth[i] = stats.MaxIceDepth
	return c.updateStage(i)
}

// SetIceDepthToZero removes the ice of cell i.
func (c *Component) SetIceDepthToZero(i int) error {
	const op = "set ice depth to zero"
	if _, err := c.trackedFor(op, i); err != nil {
		return err
	}
	c.grid.IceDepth[i] = 0
	return c.updateStage(i)
}

// SetIceAndWaterDepthToZero empties cell i entirely.
func (c *Component) SetIceAndWaterDepthToZero(i int) error {
	const op = "set ice and water depth to zero"
	if _, err := c.trackedFor(op, i); err != nil {
		return err
	}
	c.grid.IceDepth[i] = 0
	c.grid.WaterDepth[i] = 0
	return c.updateStage(i)
}

// SetNaturalWaterAndDepthToMax marks cell i as natural water and fills it.
func (c *Component) SetNaturalWaterAndDepthToMax(i int) error {
	const op = "set natural water and depth to max"
	water, err := c.trackedFor(op, i)
	if err != nil {
		return err
	}
	stats, err := c.table.Stats(water)
	if err != nil {
		return err
	}
	c.grid.NaturalWater[i] = water
	c.grid.WaterDepth[i] = stats.MaxWaterDepth
	return c.updateStage(i)
}

// Reinitialize restores every tracked cell to open water, drops all grids
// and rebuilds them from the map.
func (c *Component) Reinitialize() error {
	if err := c.Initialize(); err != nil {
		return err
	}
	for i, water := range c.grid.TrackedWater {
		if water == terrain.None {
			continue
		}
		top := c.host.TerrainAt(i)
		switch {
		case c.table.IsBridge(top):
			if c.host.UnderTerrainAt(i) != water {
				c.grid.IceDepth[i] = 0
				c.host.SetUnderTerrain(i, water)
			}
		case top != water:
			c.grid.IceDepth[i] = 0
			c.host.SetTerrain(i, water)
		}
	}
	c.grid.Reset()
	c.initialized = false
	if err := c.Initialize(); err != nil {
		return err
	}
	c.log.Info("reinitialized")
	return nil
}

func (c *Component) trackedFor(op string, i int) (terrain.ID, error) {
	if err := c.Initialize(); err != nil {
		return terrain.None, err
	}
	if err := c.inRange(op, i); err != nil {
		return terrain.None, err
	}
	water := c.grid.TrackedWater[i]
	if water == terrain.None {
		return terrain.None, reject(op, i, "not tracked water")
	}
	return water, nil
}

func (c *Component) naturalFor(op string, i int) error {
	if err := c.Initialize(); err != nil {
		return err
	}
	if err := c.inRange(op, i); err != nil {
		return err
	}
	if c.grid.NaturalWater[i] == terrain.None {
		return reject(op, i, "not natural water")
	}
	return nil
}

// RectResult summarizes an operation applied over a region.
type RectResult struct {
	Cells    int
	Failures int
}

// ForCells applies op to every cell, counting rejections. Any other error
// stops the walk and is returned.
func ForCells(cells []int, op func(int) error) (RectResult, error) {
	var res RectResult
	for _, i := range cells {
		res.Cells++
		if err := op(i); err != nil {
			var rejected *RejectedError
			if errors.As(err, &rejected) {
				res.Failures++
				continue
			}
			return res, err
		}
	}
	return res, nil
}
