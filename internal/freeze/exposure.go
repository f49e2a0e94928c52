package freeze

import "waterfreezes/internal/terrain"

// computeExposure counts the in-bounds neighbours of i that hold no tracked
// water.
func (c *Component) computeExposure(i int) {
	c.nbuf = c.host.Neighbors8(i, c.nbuf[:0])
	exposure := 0.0
	for _, n := range c.nbuf {
		if c.grid.TrackedWater[n] == terrain.None {
			exposure++
		}
	}
	c.grid.Exposure[i] = exposure
}

// recomputeAround refreshes the exposure of i and of its tracked
// neighbours.
func (c *Component) recomputeAround(i int) {
	c.computeExposure(i)
	c.abuf = c.host.Neighbors8(i, c.abuf[:0])
	for _, n := range c.abuf {
		if c.grid.TrackedWater[n] != terrain.None {
			c.computeExposure(n)
		}
	}
}

// touchesIce reports whether any neighbour of i showed ice when the current
// update began.
func (c *Component) touchesIce(i int) bool {
	c.nbuf = c.host.Neighbors8(i, c.nbuf[:0])
	for _, n := range c.nbuf {
		if c.showsIce(n) {
			return true
		}
	}
	return false
}
