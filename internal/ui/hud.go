//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"waterfreezes/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffBg   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonOffText = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the map: status, the
// adjustable controls and the readout of the hovered cell.
type HUD struct {
	sim   core.Sim
	width int
	title string

	panel *ebiten.Image
	pixel *ebiten.Image

	snapshot core.ParameterSnapshot
	controls []control
	rects    []controlRects
	set      setter
	readout  []string
	offsetX  int
}

type controlRects struct {
	top         int
	minus, plus image.Rectangle
}

// NewHUD constructs a HUD for sim with a panel of the given width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), set: setterFor(sim)}
	h.title = "Controls"
	if sim != nil && sim.Name() != "" {
		h.title = fmt.Sprintf("%s controls", sim.Name())
	}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = newControls(p.ParameterControls())
		h.layout()
	}
	return h
}

// SetReadout replaces the hovered cell description.
func (h *HUD) SetReadout(lines []string) {
	if h != nil {
		h.readout = lines
	}
}

// Update refreshes the parameter snapshot and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	p, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = p.Parameters()
	for i := range h.controls {
		h.controls[i].refresh(h.snapshot)
	}
	h.handleClick()
}

func (h *HUD) handleClick() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	if px < 0 {
		return
	}
	for i := range h.controls {
		switch {
		case pointInRect(px, my, h.rects[i].minus):
			h.set.adjust(&h.controls[i], -1)
			return
		case pointInRect(px, my, h.rects[i].plus):
			h.set.adjust(&h.controls[i], 1)
			return
		}
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for _, line := range statusLines(h.snapshot) {
		y += textLine
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, dimColor)
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i], h.rects[i])
	}

	y = controlsTop + len(h.controls)*lineHeight + textLine
	for _, line := range h.readout {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
		y += textLine
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(c *control, r controlRects) {
	face := basicfont.Face7x13
	y := r.top + labelBaseline
	text.Draw(h.panel, c.def.Label, face, panelPadding, y, textColor)
	valueColor := textColor
	if !c.hasValue {
		valueColor = dimColor
	}
	w := text.BoundString(face, c.label).Dx()
	text.Draw(h.panel, c.label, face, r.minus.Min.X-buttonGap-w, y, valueColor)

	canSet := h.set.canSet(c.def.Type)
	_, down := c.target(-1)
	_, up := c.target(1)
	h.drawButton(r.minus, "-", canSet && down)
	h.drawButton(r.plus, "+", canSet && up)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = buttonOffBg, buttonOffText
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	h.rects = make([]controlRects, len(h.controls))
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		by := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, by, h.width-panelPadding, by+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, by, plus.Min.X-buttonGap, by+buttonSize)
		h.rects[i] = controlRects{top: top, minus: minus, plus: plus}
	}
}

func pointInRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	textLine       = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 2*textLine + 8
)
