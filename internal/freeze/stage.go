package freeze

import (
	"fmt"

	"waterfreezes/internal/terrain"
)

// ResolveStage picks the terrain a cell tracking water should display for
// the given depths. It returns terrain.None when the cell holds neither
// water nor visible ice, and a *terrain.ConfigError when the stats lack the
// stage the depths call for.
func ResolveStage(water terrain.ID, waterDepth, iceDepth float64, stats terrain.WaterStats) (terrain.ID, error) {
	if iceDepth <= 0 || iceDepth/(iceDepth+waterDepth) < stats.ThinIceRatio {
		if waterDepth > 0 {
			return water, nil
		}
		return terrain.None, nil
	}
	if stats.ThinIce == terrain.None {
		return terrain.None, stageError(water, waterDepth, iceDepth)
	}
	if iceDepth < stats.IceThreshold {
		return stats.ThinIce, nil
	}
	if stats.Ice != terrain.None && iceDepth < stats.ThickIceThreshold {
		return stats.Ice, nil
	}
	if stats.ThickIce != terrain.None {
		return stats.ThickIce, nil
	}
	return terrain.None, stageError(water, waterDepth, iceDepth)
}

func stageError(water terrain.ID, waterDepth, iceDepth float64) error {
	return &terrain.ConfigError{
		Terrain: water,
		Reason:  fmt.Sprintf("no ice stage for water depth %g and ice depth %g", waterDepth, iceDepth),
	}
}

// updateStage writes the resolved stage of cell i, refills it and
// re-validates the structures on it.
func (c *Component) updateStage(i int) error {
	top := c.host.TerrainAt(i)
	topIsBridge := c.table.IsBridge(top)

	if water := c.grid.TrackedWater[i]; water != terrain.None {
		stats, err := c.table.Stats(water)
		if err != nil {
			return err
		}
		target, err := ResolveStage(water, c.grid.WaterDepth[i], c.grid.IceDepth[i], stats)
		if err != nil {
			c.log.Error("cannot resolve ice stage", "cell", i, "err", err)
			return err
		}
		if target != terrain.None {
			c.applyStage(i, top, topIsBridge, target)
		}
	}
	if err := c.refill(i); err != nil {
		return err
	}
	if !topIsBridge {
		c.enforceStructures(i)
	}
	return nil
}

// applyStage writes target to the under-terrain slot of bridged cells and
// to the top terrain otherwise.
func (c *Component) applyStage(i int, top terrain.ID, topIsBridge bool, target terrain.ID) {
	under := c.host.UnderTerrainAt(i)
	bridged := topIsBridge || (c.bridges != nil && c.bridges.BridgedAt(i))
	if bridged || c.table.IsThawableIce(under) {
		if under != target {
			c.host.SetUnderTerrain(i, target)
		}
		return
	}
	if top != target {
		c.host.SetTerrain(i, target)
	}
}

func (c *Component) enforceStructures(i int) {
	things := c.host.ThingsAt(i)
	if len(things) == 0 {
		return
	}
	for _, o := range c.enforcer.Enforce(c.table, i, c.host.TerrainAt(i), things) {
		c.log.Info("structure lost its footing",
			"cell", o.Cell, "def", o.DefName, "action", o.Action.String(), "affordance", o.AffordanceLost)
	}
}
