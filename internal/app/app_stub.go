//go:build !ebiten

package app

import (
	"errors"

	"waterfreezes/internal/core"
)

var errHeadless = errors.New("the lake viewer needs the 'ebiten' build tag")

// Game stands in for the lake viewer in headless builds, where the
// simulations still run through cmd/freeze-sweep and cmd/freeze-stream.
type Game struct{}

// New panics: there is no window to show the map in.
func New(core.Sim, *Config) *Game {
	panic(errHeadless)
}

// Reset does nothing without a viewer.
func (g *Game) Reset(int64) {}

// Update reports errHeadless so a caller's run loop stops at once.
func (g *Game) Update() error { return errHeadless }

// Draw has nothing to draw on.
func (g *Game) Draw(any) {}

// Layout has no screen to lay out.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
