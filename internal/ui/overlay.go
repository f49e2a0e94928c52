//go:build ebiten

package ui

import (
	"image/color"

	"waterfreezes/internal/core"
	"waterfreezes/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type readoutProvider interface {
	Readout(x, y int) []string
}

type iceMaskProvider interface {
	IceMask() []float32
}

type waterMaskProvider interface {
	WaterMask() []float32
}

type exposureMaskProvider interface {
	ExposureMask() []float32
}

type frostMaskProvider interface {
	FrostMask() []float32
}

// overlayMask is one toggleable layer, bound to a digit key.
type overlayMask struct {
	key  ebiten.Key
	tint color.RGBA
	on   bool
	mask func() []float32
}

// Overlay draws optional mask layers over the map and tracks the hovered
// cell.
type Overlay struct {
	sim     core.Sim
	scale   int
	painter *render.GridPainter
	masks   []*overlayMask

	hoverX, hoverY int
	hovering       bool
}

// NewOverlay builds the layers sim supports: 1 ice, 2 water, 3 exposure,
// 4 frost.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	o := &Overlay{sim: sim, scale: max(scale, 1), painter: render.NewGridPainter(size.W, size.H)}
	if p, ok := sim.(iceMaskProvider); ok {
		o.add(ebiten.KeyDigit1, color.RGBA{R: 230, G: 245, B: 255}, p.IceMask)
	}
	if p, ok := sim.(waterMaskProvider); ok {
		o.add(ebiten.KeyDigit2, color.RGBA{R: 64, G: 164, B: 223}, p.WaterMask)
	}
	if p, ok := sim.(exposureMaskProvider); ok {
		o.add(ebiten.KeyDigit3, color.RGBA{R: 255, G: 120, B: 40}, p.ExposureMask)
	}
	if p, ok := sim.(frostMaskProvider); ok {
		o.add(ebiten.KeyDigit4, color.RGBA{R: 180, G: 120, B: 255}, p.FrostMask)
	}
	return o
}

func (o *Overlay) add(key ebiten.Key, tint color.RGBA, mask func() []float32) {
	o.masks = append(o.masks, &overlayMask{key: key, tint: tint, mask: mask})
}

// Update toggles layers and follows the cursor.
func (o *Overlay) Update() {
	for _, m := range o.masks {
		if inpututil.IsKeyJustPressed(m.key) {
			m.on = !m.on
		}
	}
	mx, my := ebiten.CursorPosition()
	o.hoverX, o.hoverY = mx/o.scale, my/o.scale
	size := o.sim.Size()
	o.hovering = mx >= 0 && my >= 0 && size.InBounds(o.hoverX, o.hoverY)
}

// Readout describes the hovered cell, or nil when the cursor is off the
// map.
func (o *Overlay) Readout() []string {
	p, ok := o.sim.(readoutProvider)
	if !ok || !o.hovering {
		return nil
	}
	return p.Readout(o.hoverX, o.hoverY)
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	for _, m := range o.masks {
		if m.on {
			o.painter.BlitMask(screen, m.mask(), m.tint, o.scale)
		}
	}
}
