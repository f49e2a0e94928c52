package freeze

import "waterfreezes/internal/terrain"

// refill tops up natural water above its freezing point during warm
// seasons.
func (c *Component) refill(i int) error {
	natural := c.grid.NaturalWater[i]
	if natural == terrain.None {
		return nil
	}
	stats, err := c.table.Stats(natural)
	if err != nil {
		return err
	}
	if c.host.TemperatureAt(i)-stats.FreezingPoint <= 0 {
		return nil
	}
	water := c.grid.WaterDepth[i]
	if water >= stats.MaxWaterDepth || !c.currentSeason().Warm() {
		return nil
	}
	c.grid.WaterDepth[i] = min(water+c.settings.rate(), stats.MaxWaterDepth)
	return nil
}
