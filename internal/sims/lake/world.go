// Package lake is a self-contained colony map that hosts the freeze
// simulation: generated lakes, a river and marshes under a seasonal
// climate, with buildings that settlers put up on the ice in winter.
package lake

import (
	"log/slog"

	"waterfreezes/internal/core"
	"waterfreezes/internal/freeze"
	"waterfreezes/internal/terrain"
	pkgcore "waterfreezes/pkg/core"
)

// World is the lake map. It implements core.Sim and freeze.Host.
type World struct {
	cfg   Config
	size  core.Size
	table *terrain.Table
	log   *slog.Logger

	top      []terrain.ID
	under    []terrain.ID
	tempBase []float64
	frost    []float64
	display  []uint8

	things    map[int][]freeze.Structure
	built     int
	destroyed int

	ticks int
	comp  *freeze.Component
	err   error

	rng *pkgcore.RNG
}

var _ freeze.Host = (*World)(nil)
var _ core.Sim = (*World)(nil)
var _ freeze.FrostClearer = (*World)(nil)

// New returns a lake world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a lake world configured from cfg. Reset must be
// called before stepping.
func NewWithConfig(cfg Config) *World {
	table := cfg.Table
	if table == nil {
		table = terrain.MustVanilla()
	}
	return NewWithTable(cfg, table, slog.Default())
}

// NewWithTable returns a lake world classifying terrain with table.
func NewWithTable(cfg Config, table *terrain.Table, log *slog.Logger) *World {
	cfg = cfg.normalized()
	size := core.Size{W: max(cfg.Width, 0), H: max(cfg.Height, 0)}
	total := size.Cells()
	if log == nil {
		log = slog.Default()
	}
	w := &World{
		cfg:      cfg,
		size:     size,
		table:    table,
		log:      log.With("sim", "lakes"),
		top:      make([]terrain.ID, total),
		under:    make([]terrain.ID, total),
		tempBase: make([]float64, total),
		frost:    make([]float64, total),
		display:  make([]uint8, total),
		things:   make(map[int][]freeze.Structure),
		rng:      pkgcore.NewRNG(cfg.Seed),
	}
	w.comp = w.newComponent()
	return w
}

func (w *World) newComponent() *freeze.Component {
	return freeze.New(w, w.table, freeze.WithSettings(w.cfg.Freeze), freeze.WithLogger(w.log))
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "lakes" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.size }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Component exposes the freeze component of the map.
func (w *World) Component() *freeze.Component { return w.comp }

// Err returns the error that halted the world, if any.
func (w *World) Err() error { return w.err }

// Table returns the terrain table of the map.
func (w *World) Table() *terrain.Table { return w.table }

// Reset generates a fresh map. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = pkgcore.NewRNG(seed)
	w.ticks = 0
	w.err = nil
	w.built, w.destroyed = 0, 0
	clear(w.things)
	clear(w.frost)
	clear(w.under)

	w.generate(seed)
	w.comp = w.newComponent()
	if err := w.comp.MapGenerated(); err != nil {
		w.halt(err)
	}
	w.rebuildDisplay()
}

// Step advances the clock by StepTicks, ticking the freeze component on
// every tick, then lets the settlers build.
func (w *World) Step() {
	if w.err != nil || w.size.Cells() == 0 {
		return
	}
	for range w.cfg.Params.StepTicks {
		w.ticks++
		if err := w.comp.OnTick(); err != nil {
			w.halt(err)
			return
		}
		if w.ticks%w.comp.Settings().IceRate == 0 {
			w.settleFrost()
			w.build()
		}
	}
	w.rebuildDisplay()
}

func (w *World) halt(err error) {
	w.err = err
	w.log.Error("simulation halted", "tick", w.ticks, "err", err)
}

// NumCells implements freeze.Host.
func (w *World) NumCells() int { return len(w.top) }

// TerrainAt implements freeze.Host.
func (w *World) TerrainAt(i int) terrain.ID { return w.top[i] }

// UnderTerrainAt implements freeze.Host.
func (w *World) UnderTerrainAt(i int) terrain.ID { return w.under[i] }

// SetTerrain writes the top terrain of cell i and notifies the component.
func (w *World) SetTerrain(i int, id terrain.ID) {
	old := w.top[i]
	w.top[i] = id
	if err := w.comp.OnTerrainChanged(i, old, id); err != nil && w.err == nil {
		w.halt(err)
	}
}

// SetUnderTerrain implements freeze.Host.
func (w *World) SetUnderTerrain(i int, id terrain.ID) { w.under[i] = id }

// Neighbors8 implements freeze.Host.
func (w *World) Neighbors8(i int, dst []int) []int { return w.size.Neighbors8(i, dst) }

// ThingsAt implements freeze.Host.
func (w *World) ThingsAt(i int) []freeze.Structure { return w.things[i] }

// ClearFrost implements freeze.FrostClearer.
func (w *World) ClearFrost(i int) { w.frost[i] = 0 }

// Ticks implements freeze.Host.
func (w *World) Ticks() int { return w.ticks }

// SetTicks moves the clock, e.g. to start a run in a given season.
func (w *World) SetTicks(t int) { w.ticks = max(t, 0) }

// Frost returns the frost cover of cell i in [0,1].
func (w *World) Frost(i int) float64 { return w.frost[i] }

// Dig turns land at cell i into shallow water.
func (w *World) Dig(i int) bool {
	if w.table.IsWater(w.top[i]) || w.table.IsThawableIce(w.top[i]) || w.table.IsBridge(w.top[i]) {
		return false
	}
	w.SetTerrain(i, terrain.WaterShallow)
	return true
}

// Fill turns water or ice at cell i into soil.
func (w *World) Fill(i int) bool {
	if !w.table.IsWater(w.top[i]) && !w.table.IsThawableIce(w.top[i]) {
		return false
	}
	w.SetTerrain(i, terrain.Soil)
	return true
}

// PumpDry dries cell i the way a moisture pump does.
func (w *World) PumpDry(i int) bool {
	was := w.top[i]
	if !w.table.IsWater(was) {
		return false
	}
	w.SetTerrain(i, terrain.Mud)
	if err := w.comp.OnPumpDry(i, was); err != nil {
		w.halt(err)
	}
	return true
}

// Readout describes the cell at x, y for the viewer.
func (w *World) Readout(x, y int) []string {
	if !w.size.InBounds(x, y) {
		return nil
	}
	i := w.size.Index(x, y)
	lines := []string{w.label(w.top[i])}
	if w.table.IsBridge(w.top[i]) && w.under[i] != terrain.None {
		lines[0] += " over " + w.label(w.under[i])
	}
	lines = append(lines, formatTemp(w.TemperatureAt(i)))
	lines = append(lines, w.comp.Readout(i)...)
	for _, s := range w.things[i] {
		if b, ok := s.(*Building); ok {
			lines = append(lines, b.Describe())
		}
	}
	return lines
}

func (w *World) label(id terrain.ID) string {
	if d, ok := w.table.Def(id); ok && d.Label != "" {
		return d.Label
	}
	return string(id)
}

func init() {
	core.Register("lakes", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
