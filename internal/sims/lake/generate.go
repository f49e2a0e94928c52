package lake

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"waterfreezes/internal/terrain"
)

const (
	terrainOctaves     = 4
	terrainPersistence = 0.5
	riverFrequency     = 0.025
	tempFrequency      = 4.0
)

// generate lays out the map: lakes and marshes from layered simplex noise,
// one meandering river crossing west to east and bridges over the river.
func (w *World) generate(seed int64) {
	p := w.cfg.Params
	elev := opensimplex.NewNormalized(seed)
	for y := 0; y < w.size.H; y++ {
		for x := 0; x < w.size.W; x++ {
			v := octaveNoise(elev, float64(x), float64(y), terrainOctaves, p.NoiseScale, terrainPersistence)
			w.top[w.size.Index(x, y)] = classify(v, p)
		}
	}
	w.carveRiver(opensimplex.NewNormalized(seed + 1))
	w.placeBridges()

	temp := perlin.NewPerlin(2, 2, 5, seed)
	for i := range w.tempBase {
		x, y := w.size.Coords(i)
		nx := float64(x) / float64(max(w.size.W, 1)) * tempFrequency
		ny := float64(y) / float64(max(w.size.H, 1)) * tempFrequency
		w.tempBase[i] = temp.Noise2D(nx, ny) * p.TempNoise
	}
	w.log.Debug("map generated", "seed", seed, "w", w.size.W, "h", w.size.H)
}

func classify(v float64, p Params) terrain.ID {
	switch {
	case v >= p.DeepLevel:
		return terrain.WaterDeep
	case v >= p.ShallowLevel:
		return terrain.WaterShallow
	case v >= p.MarshLevel:
		return terrain.Marsh
	case v >= p.MarshLevel-0.03:
		return terrain.Sand
	default:
		return terrain.Soil
	}
}

// carveRiver runs a river along a noise-displaced centre line. The middle of
// the channel is chest-deep, the outermost rows are shallow.
func (w *World) carveRiver(noise opensimplex.Noise) {
	width := w.cfg.Params.RiverWidth
	if width <= 0 || w.size.H == 0 {
		return
	}
	half := width / 2
	swing := w.cfg.Params.RiverMeander * float64(w.size.H) / 2
	for x := 0; x < w.size.W; x++ {
		centre := w.riverCentre(noise, x, swing)
		for dy := -half; dy <= width-1-half; dy++ {
			y := centre + dy
			if y < 0 || y >= w.size.H {
				continue
			}
			id := terrain.WaterMovingChestDeep
			if width >= 3 && (dy == -half || dy == width-1-half) {
				id = terrain.WaterMovingShallow
			}
			w.top[w.size.Index(x, y)] = id
		}
	}
}

func (w *World) riverCentre(noise opensimplex.Noise, x int, swing float64) int {
	offset := (noise.Eval2(float64(x)*riverFrequency, 0) - 0.5) * 2 * swing
	return w.size.H/2 + int(math.Round(offset))
}

// placeBridges spans the river at evenly spaced columns. The river water
// stays underneath.
func (w *World) placeBridges() {
	n := w.cfg.Params.BridgeCount
	if n <= 0 || w.cfg.Params.RiverWidth <= 0 {
		return
	}
	for k := 1; k <= n; k++ {
		x := w.size.W * k / (n + 1)
		for y := 0; y < w.size.H; y++ {
			i := w.size.Index(x, y)
			if id := w.top[i]; id == terrain.WaterMovingChestDeep || id == terrain.WaterMovingShallow {
				w.under[i] = id
				w.top[i] = terrain.Bridge
			}
		}
	}
}

// octaveNoise layers octaves of normalized noise and rescales the sum back
// into [0,1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for range octaves {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}
