package lake

import (
	"image/color"

	"waterfreezes/internal/terrain"
)

// Display values. Each cell shows one of these palette indices.
const (
	displaySoil uint8 = iota
	displaySand
	displayMud
	displayMarsh
	displayShallow
	displayDeep
	displayMovingShallow
	displayMovingDeep
	displayOcean
	displayThinIce
	displayIce
	displayThickIce
	displayMarshIce
	displayBridge
	displayBuilding
	displayFrost
	displayCount
)

// Frost above this level is drawn over the ground.
const frostVisible = 0.5

var lakePalette = [displayCount]color.RGBA{
	displaySoil:          {R: 92, G: 70, B: 46, A: 255},
	displaySand:          {R: 194, G: 178, B: 128, A: 255},
	displayMud:           {R: 70, G: 56, B: 40, A: 255},
	displayMarsh:         {R: 64, G: 96, B: 72, A: 255},
	displayShallow:       {R: 60, G: 120, B: 190, A: 255},
	displayDeep:          {R: 24, G: 60, B: 140, A: 255},
	displayMovingShallow: {R: 80, G: 140, B: 200, A: 255},
	displayMovingDeep:    {R: 40, G: 90, B: 170, A: 255},
	displayOcean:         {R: 16, G: 40, B: 100, A: 255},
	displayThinIce:       {R: 170, G: 210, B: 235, A: 255},
	displayIce:           {R: 205, G: 230, B: 245, A: 255},
	displayThickIce:      {R: 235, G: 245, B: 252, A: 255},
	displayMarshIce:      {R: 160, G: 190, B: 180, A: 255},
	displayBridge:        {R: 120, G: 84, B: 50, A: 255},
	displayBuilding:      {R: 200, G: 60, B: 50, A: 255},
	displayFrost:         {R: 225, G: 228, B: 235, A: 255},
}

// Palette exposes the color palette used for rendering the lake world.
func (w *World) Palette() []color.RGBA {
	return lakePalette[:]
}

func displayFor(id terrain.ID) uint8 {
	switch id {
	case terrain.Sand, terrain.Gravel:
		return displaySand
	case terrain.Mud, terrain.MarshyTerrain:
		return displayMud
	case terrain.Marsh:
		return displayMarsh
	case terrain.WaterShallow:
		return displayShallow
	case terrain.WaterDeep:
		return displayDeep
	case terrain.WaterMovingShallow:
		return displayMovingShallow
	case terrain.WaterMovingChestDeep:
		return displayMovingDeep
	case terrain.WaterOceanShallow, terrain.WaterOceanDeep:
		return displayOcean
	case terrain.LakeIceThin:
		return displayThinIce
	case terrain.LakeIce:
		return displayIce
	case terrain.LakeIceThick:
		return displayThickIce
	case terrain.MarshIceThin:
		return displayMarshIce
	case terrain.Bridge, terrain.HeavyBridge:
		return displayBridge
	default:
		return displaySoil
	}
}

func (w *World) rebuildDisplay() {
	for i, id := range w.top {
		v := displayFor(id)
		switch {
		case len(w.things[i]) > 0:
			v = displayBuilding
		case v <= displayMud && w.frost[i] > frostVisible:
			v = displayFrost
		}
		w.display[i] = v
	}
}

// IceMask returns each cell's ice depth relative to its water type's
// maximum, in [0,1].
func (w *World) IceMask() []float32 {
	return w.depthMask(w.comp.Ice, func(s terrain.WaterStats) float64 { return s.MaxIceDepth })
}

// WaterMask returns each cell's liquid water depth relative to its water
// type's maximum, in [0,1].
func (w *World) WaterMask() []float32 {
	return w.depthMask(w.comp.Water, func(s terrain.WaterStats) float64 { return s.MaxWaterDepth })
}

func (w *World) depthMask(depth func(int) float64, limit func(terrain.WaterStats) float64) []float32 {
	mask := make([]float32, len(w.top))
	for i := range mask {
		water := w.comp.TrackedWater(i)
		if water == terrain.None {
			continue
		}
		stats, err := w.table.Stats(water)
		if err != nil || limit(stats) <= 0 {
			continue
		}
		mask[i] = float32(min(depth(i)/limit(stats), 1))
	}
	return mask
}

// ExposureMask returns each tracked cell's exposure scaled by the eight
// neighbours it can have, in [0,1].
func (w *World) ExposureMask() []float32 {
	mask := make([]float32, len(w.top))
	for i := range mask {
		if w.comp.TrackedWater(i) != terrain.None {
			mask[i] = float32(min(w.comp.Exposure(i)/8, 1))
		}
	}
	return mask
}

// FrostMask returns each cell's frost cover.
func (w *World) FrostMask() []float32 {
	mask := make([]float32, len(w.frost))
	for i, f := range w.frost {
		mask[i] = float32(f)
	}
	return mask
}
