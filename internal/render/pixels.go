// Package render turns per-cell simulation state into RGBA pixel buffers.
// The ebiten painters live behind the ebiten build tag; the pixel fills
// are plain Go so headless builds can test them.
package render

import (
	"image/color"
	"math"
)

// Mask shading.
const (
	maskMaxAlpha  = 140.0
	maskGlowBase  = 0.35
	maskGlowRange = 0.65
	maskBias      = 0.75
)

// fillPaletteRGBA writes one pixel per cell, looking its color up in
// palette. Values past the end use the last entry; an empty palette clears
// the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		px := buf[4*i : 4*i+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}

// fillMaskRGBA shades tint by each cell's intensity in [0,1]. Zero cells
// are transparent so the map shows through.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	for i, v := range mask {
		px := buf[4*i : 4*i+4]
		intensity := min(max(float64(v), 0), 1)
		if intensity == 0 {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			continue
		}
		glow := maskGlowBase + maskGlowRange*math.Sqrt(intensity)
		px[0] = scaleComponent(tint.R, glow)
		px[1] = scaleComponent(tint.G, glow)
		px[2] = scaleComponent(tint.B, glow)
		px[3] = uint8(math.Round(maskMaxAlpha * math.Pow(intensity, maskBias)))
	}
}

func scaleComponent(v uint8, factor float64) uint8 {
	return uint8(min(max(math.Round(float64(v)*factor), 0), 255))
}
