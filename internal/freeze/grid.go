package freeze

import (
	"fmt"

	"waterfreezes/internal/terrain"
)

// Grid is the mutable per-cell state of one map. The slices are parallel
// and indexed by cell. Any of them may be nil, in which case the component
// rebuilds it on the next Initialize.
type Grid struct {
	// NaturalWater is the water a cell organically returns to.
	NaturalWater []terrain.ID
	// TrackedWater is the water a cell is currently simulated as, whatever
	// it displays.
	TrackedWater []terrain.ID
	IceDepth     []float64
	WaterDepth   []float64
	// Exposure counts the 8-neighbours that are not tracked water.
	Exposure []float64
}

// Complete reports whether all five slices are present.
func (g *Grid) Complete() bool {
	return g.NaturalWater != nil && g.TrackedWater != nil &&
		g.IceDepth != nil && g.WaterDepth != nil && g.Exposure != nil
}

// Validate checks that every present slice covers n cells.
func (g *Grid) Validate(n int) error {
	lens := []struct {
		name string
		n    int
		nil  bool
	}{
		{"natural water", len(g.NaturalWater), g.NaturalWater == nil},
		{"tracked water", len(g.TrackedWater), g.TrackedWater == nil},
		{"ice depth", len(g.IceDepth), g.IceDepth == nil},
		{"water depth", len(g.WaterDepth), g.WaterDepth == nil},
		{"exposure", len(g.Exposure), g.Exposure == nil},
	}
	for _, l := range lens {
		if !l.nil && l.n != n {
			return fmt.Errorf("%s grid has %d cells, map has %d", l.name, l.n, n)
		}
	}
	return nil
}

// Reset drops every slice so the next Initialize rebuilds from the map.
func (g *Grid) Reset() {
	*g = Grid{}
}
