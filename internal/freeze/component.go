package freeze

import (
	"fmt"
	"log/slog"
	"slices"

	"waterfreezes/internal/terrain"
)

// Component runs the freeze simulation for one map.
type Component struct {
	host     Host
	table    *terrain.Table
	settings Settings
	log      *slog.Logger
	enforcer *Enforcer

	bridges BridgeInterop
	frost   FrostClearer

	grid        Grid
	initialized bool

	season      Season
	seasonAt    int
	seasonKnown bool

	// iceFront holds, for the duration of one update, which cells showed
	// ice when the update began.
	iceFront      []bool
	iceFrontValid bool

	nbuf []int
	abuf []int
}

// Option configures a Component.
type Option func(*Component)

// WithSettings overrides the default settings.
func WithSettings(s Settings) Option {
	return func(c *Component) { c.settings = s.Normalize() }
}

// WithLogger routes component logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Component) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEnforcer replaces the structure enforcer.
func WithEnforcer(e *Enforcer) Option {
	return func(c *Component) {
		if e != nil {
			c.enforcer = e
		}
	}
}

// New builds an uninitialized component for host. The grids are built
// lazily on the first tick or terrain change, or by Initialize.
func New(host Host, table *terrain.Table, opts ...Option) *Component {
	c := &Component{
		host:     host,
		table:    table,
		settings: DefaultSettings(),
		log:      slog.Default(),
		enforcer: DefaultEnforcer(),
	}
	c.bridges, _ = host.(BridgeInterop)
	c.frost, _ = host.(FrostClearer)
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "freeze")
	return c
}

// Settings returns the active settings.
func (c *Component) Settings() Settings { return c.settings }

// SetSettings replaces the active settings.
func (c *Component) SetSettings(s Settings) { c.settings = s.Normalize() }

// Table returns the terrain table the component classifies with.
func (c *Component) Table() *terrain.Table { return c.table }

// Initialized reports whether the grids have been built.
func (c *Component) Initialized() bool { return c.initialized }

// Initialize builds any missing grid from the map's current terrain. It is
// idempotent.
func (c *Component) Initialize() error {
	if c.initialized && c.grid.Complete() {
		return nil
	}
	n := c.host.NumCells()
	if err := c.grid.Validate(n); err != nil {
		return err
	}
	if c.grid.NaturalWater == nil {
		c.grid.NaturalWater = make([]terrain.ID, n)
		for i := range n {
			if t := c.waterAt(i); c.table.IsFreezableWater(t) {
				c.grid.NaturalWater[i] = t
			}
		}
	}
	if c.grid.TrackedWater == nil {
		// Natural cells stay tracked whatever they currently show.
		c.grid.TrackedWater = slices.Clone(c.grid.NaturalWater)
		for i, water := range c.grid.TrackedWater {
			if water == terrain.None {
				c.grid.TrackedWater[i] = c.trackableAt(i)
			}
		}
		for i, ice := range c.grid.IceDepth {
			if ice > 0 && c.grid.TrackedWater[i] == terrain.None {
				c.grid.IceDepth[i] = 0
			}
		}
	}
	if c.grid.IceDepth == nil {
		c.grid.IceDepth = make([]float64, n)
	}
	if c.grid.WaterDepth == nil {
		c.grid.WaterDepth = make([]float64, n)
		for i, water := range c.grid.TrackedWater {
			if water == terrain.None {
				continue
			}
			stats, err := c.table.Stats(water)
			if err != nil {
				return err
			}
			c.grid.WaterDepth[i] = stats.MaxWaterDepth
		}
	}
	if c.grid.Exposure == nil {
		c.grid.Exposure = make([]float64, n)
		for i, water := range c.grid.TrackedWater {
			if water != terrain.None {
				c.computeExposure(i)
			}
		}
	}
	c.initialized = true
	c.log.Debug("grids initialized", "cells", n)
	return nil
}

// waterAt is the water a cell holds: the terrain under a bridge, otherwise
// the top terrain.
func (c *Component) waterAt(i int) terrain.ID {
	top := c.host.TerrainAt(i)
	if c.table.IsBridge(top) {
		return c.host.UnderTerrainAt(i)
	}
	return top
}

// trackableAt is the water identity a cell that is not natural water would
// be tracked as: its freezable water, or for ice the first freezable water
// whose ice bands name it.
func (c *Component) trackableAt(i int) terrain.ID {
	t := c.waterAt(i)
	switch {
	case c.table.IsFreezableWater(t):
		return t
	case c.table.IsThawableIce(t):
		return c.waterForIce(t)
	}
	return terrain.None
}

func (c *Component) waterForIce(ice terrain.ID) terrain.ID {
	for _, water := range c.table.FreezableWater() {
		stats, err := c.table.Stats(water)
		if err != nil {
			continue
		}
		if stats.ThinIce == ice || stats.Ice == ice || stats.ThickIce == ice {
			return water
		}
	}
	return terrain.None
}

// MapGenerated seeds the grids of a freshly generated map.
func (c *Component) MapGenerated() error {
	return c.Initialize()
}

// OnTick advances the simulation. Only every IceRate-th tick does work.
func (c *Component) OnTick() error {
	if err := c.Initialize(); err != nil {
		return err
	}
	if c.host.Ticks()%c.settings.IceRate != 0 {
		return nil
	}
	c.snapshotIceFront()
	defer func() { c.iceFrontValid = false }()

	for i, water := range c.grid.TrackedWater {
		if water == terrain.None {
			continue
		}
		stats, err := c.table.Stats(water)
		if err != nil {
			c.log.Error("tracked water has no stats", "cell", i, "terrain", water, "err", err)
			return err
		}
		c.updatePhase(i, stats)
		if err := c.updateStage(i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) snapshotIceFront() {
	n := len(c.grid.TrackedWater)
	if cap(c.iceFront) < n {
		c.iceFront = make([]bool, n)
	}
	c.iceFront = c.iceFront[:n]
	for i := range c.iceFront {
		c.iceFront[i] = c.table.IsThawableIce(c.host.TerrainAt(i))
	}
	c.iceFrontValid = true
}

func (c *Component) showsIce(i int) bool {
	if c.iceFrontValid {
		return c.iceFront[i]
	}
	return c.table.IsThawableIce(c.host.TerrainAt(i))
}

// currentSeason caches the host season for SeasonCacheTicks.
func (c *Component) currentSeason() Season {
	now := c.host.Ticks()
	if !c.seasonKnown || now < c.seasonAt || now-c.seasonAt > c.settings.SeasonCacheTicks {
		c.season = c.host.Season()
		c.seasonAt = now
		c.seasonKnown = true
	}
	return c.season
}

func (c *Component) inRange(op string, i int) error {
	if i < 0 || i >= len(c.grid.TrackedWater) {
		return reject(op, i, fmt.Sprintf("cell out of range [0,%d)", len(c.grid.TrackedWater)))
	}
	return nil
}

// Ice returns the ice depth of cell i.
func (c *Component) Ice(i int) float64 { return at(c.grid.IceDepth, i) }

// Water returns the liquid water depth of cell i.
func (c *Component) Water(i int) float64 { return at(c.grid.WaterDepth, i) }

// Exposure returns the exposure of cell i.
func (c *Component) Exposure(i int) float64 { return at(c.grid.Exposure, i) }

// NaturalWater returns the natural water identity of cell i.
func (c *Component) NaturalWater(i int) terrain.ID { return at(c.grid.NaturalWater, i) }

// TrackedWater returns the tracked water identity of cell i.
func (c *Component) TrackedWater(i int) terrain.ID { return at(c.grid.TrackedWater, i) }

func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}

// TakeIce zeroes the ice of cell i, returns the removed amount and
// re-resolves the cell's stage.
func (c *Component) TakeIce(i int) (float64, error) {
	if err := c.Initialize(); err != nil {
		return 0, err
	}
	if err := c.inRange("take ice", i); err != nil {
		return 0, err
	}
	ice := c.grid.IceDepth[i]
	c.grid.IceDepth[i] = 0
	if err := c.updateStage(i); err != nil {
		return ice, err
	}
	return ice, nil
}

// Readout describes cell i for a mouseover panel. Lines are only produced
// for the state the cell actually has.
func (c *Component) Readout(i int) []string {
	if !c.initialized || i < 0 || i >= len(c.grid.TrackedWater) {
		return nil
	}
	var lines []string
	if ice := c.grid.IceDepth[i]; ice > 0 {
		lines = append(lines, fmt.Sprintf("Ice depth %.0f", ice))
	}
	if water := c.grid.WaterDepth[i]; water > 0 {
		lines = append(lines, fmt.Sprintf("Water depth %.0f", water))
	}
	if natural := c.grid.NaturalWater[i]; natural != terrain.None {
		lines = append(lines, fmt.Sprintf("Natural water: %s", c.label(natural)))
	}
	if tracked := c.grid.TrackedWater[i]; tracked != terrain.None && tracked != c.grid.NaturalWater[i] {
		lines = append(lines, fmt.Sprintf("Water: %s", c.label(tracked)))
	}
	if c.grid.TrackedWater[i] != terrain.None {
		lines = append(lines, fmt.Sprintf("Exposure %.0f", c.grid.Exposure[i]))
	}
	return lines
}

func (c *Component) label(id terrain.ID) string {
	if d, ok := c.table.Def(id); ok && d.Label != "" {
		return d.Label
	}
	return string(id)
}
