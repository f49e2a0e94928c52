package freeze

import (
	"fmt"

	"waterfreezes/internal/terrain"
)

// NoTerrain is the persisted form of an absent terrain identity.
const NoTerrain = "null"

// SaveData is the persisted form of a component's grids. Each slice is
// either empty, meaning "rebuild on load", or covers every cell.
type SaveData struct {
	NaturalWater    []string  `json:"naturalWaterTerrainGrid,omitempty"`
	TrackedWater    []string  `json:"allWaterTerrainGrid,omitempty"`
	IceDepth        []float64 `json:"iceDepthGrid,omitempty"`
	WaterDepth      []float64 `json:"waterDepthGrid,omitempty"`
	PseudoElevation []float64 `json:"pseudoElevationGrid,omitempty"`
}

// Snapshot copies the grids into their persisted form.
func (c *Component) Snapshot() SaveData {
	return SaveData{
		NaturalWater:    encodeIDs(c.grid.NaturalWater),
		TrackedWater:    encodeIDs(c.grid.TrackedWater),
		IceDepth:        cloneFloats(c.grid.IceDepth),
		WaterDepth:      cloneFloats(c.grid.WaterDepth),
		PseudoElevation: cloneFloats(c.grid.Exposure),
	}
}

// Restore replaces the grids with d. Missing slices are rebuilt from the
// map; identities must name freezable water.
func (c *Component) Restore(d SaveData) error {
	natural, err := c.decodeIDs("natural water", d.NaturalWater)
	if err != nil {
		return err
	}
	tracked, err := c.decodeIDs("tracked water", d.TrackedWater)
	if err != nil {
		return err
	}
	g := Grid{
		NaturalWater: natural,
		TrackedWater: tracked,
		IceDepth:     cloneFloats(d.IceDepth),
		WaterDepth:   cloneFloats(d.WaterDepth),
		Exposure:     cloneFloats(d.PseudoElevation),
	}
	if err := g.Validate(c.host.NumCells()); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	for _, depths := range [][]float64{g.IceDepth, g.WaterDepth} {
		for i, v := range depths {
			if v < 0 {
				return fmt.Errorf("restore: negative depth %g at cell %d", v, i)
			}
		}
	}
	c.grid = g
	c.initialized = false
	return c.Initialize()
}

func encodeIDs(ids []terrain.ID) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == terrain.None {
			out[i] = NoTerrain
			continue
		}
		out[i] = string(id)
	}
	return out
}

func (c *Component) decodeIDs(name string, raw []string) ([]terrain.ID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]terrain.ID, len(raw))
	for i, s := range raw {
		if s == NoTerrain || s == "" {
			continue
		}
		id := terrain.ID(s)
		if !c.table.IsFreezableWater(id) {
			return nil, &terrain.ConfigError{
				Terrain: id,
				Reason:  fmt.Sprintf("saved %s grid holds non-freezable terrain at cell %d", name, i),
			}
		}
		out[i] = id
	}
	return out, nil
}

func cloneFloats(s []float64) []float64 {
	if len(s) == 0 {
		return nil
	}
	return append([]float64(nil), s...)
}
