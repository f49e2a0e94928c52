package terrain

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// Table is the immutable lookup of terrain definitions and water stats. It
// is built once and shared by every map.
type Table struct {
	defs      map[ID]Def
	order     []ID
	stats     map[ID]WaterStats
	freezable map[ID]struct{}
	thawable  map[ID]struct{}
	bridges   map[ID]bool
}

// NewTable validates defs and builds the lookup. All problems found are
// reported together.
func NewTable(defs []Def) (*Table, error) {
	t := &Table{
		defs:      make(map[ID]Def, len(defs)),
		stats:     make(map[ID]WaterStats),
		freezable: make(map[ID]struct{}),
		thawable:  make(map[ID]struct{}),
		bridges:   make(map[ID]bool, len(defs)),
	}

	var err error
	for _, d := range defs {
		if d.ID == None {
			err = multierr.Append(err, &ConfigError{Reason: "definition without an id"})
			continue
		}
		if _, dup := t.defs[d.ID]; dup {
			err = multierr.Append(err, configErrorf(d.ID, "defined more than once"))
			continue
		}
		d.Affordances = slices.Clone(d.Affordances)
		t.defs[d.ID] = d
		t.order = append(t.order, d.ID)
		t.bridges[d.ID] = d.Bridge || looksLikeBridge(d.Label) || looksLikeBridge(string(d.ID))
	}

	for _, id := range t.order {
		d := t.defs[id]
		if d.Stats == nil {
			continue
		}
		s := d.Stats.withDefaults()
		if verr := t.validateStats(id, s); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		t.stats[id] = s
		if !s.Freezable() {
			continue
		}
		t.freezable[id] = struct{}{}
		for _, target := range []ID{s.ThinIce, s.Ice, s.ThickIce} {
			if target != None {
				t.thawable[target] = struct{}{}
			}
		}
	}

	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) validateStats(id ID, s WaterStats) error {
	var err error
	if s.MaxWaterDepth <= 0 {
		err = multierr.Append(err, configErrorf(id, "max water depth must be positive, got %v", s.MaxWaterDepth))
	}
	if s.MaxIceDepth < 0 {
		err = multierr.Append(err, configErrorf(id, "max ice depth must not be negative, got %v", s.MaxIceDepth))
	}
	if s.IceThreshold > s.ThickIceThreshold {
		err = multierr.Append(err, configErrorf(id, "ice threshold %v above thick ice threshold %v", s.IceThreshold, s.ThickIceThreshold))
	}
	for _, target := range []ID{s.ThinIce, s.Ice, s.ThickIce} {
		if target == None {
			continue
		}
		if _, ok := t.defs[target]; !ok {
			err = multierr.Append(err, configErrorf(id, "ice terrain %q is not defined", target))
		}
	}
	if !s.Freezable() {
		if s.Ice != None || s.ThickIce != None {
			err = multierr.Append(err, configErrorf(id, "regular or thick ice mapping without a thin ice mapping"))
		}
		return err
	}
	if s.MaxIceDepth <= 0 {
		err = multierr.Append(err, configErrorf(id, "freezable water needs a positive max ice depth"))
	}
	if s.MaxIceDepth >= s.IceThreshold && s.Ice == None && s.ThickIce == None {
		err = multierr.Append(err, configErrorf(id, "max ice depth %v reaches the regular ice band without a regular or thick ice mapping", s.MaxIceDepth))
	}
	if s.MaxIceDepth >= s.ThickIceThreshold && s.ThickIce == None {
		err = multierr.Append(err, configErrorf(id, "max ice depth %v reaches the thick ice band without a thick ice mapping", s.MaxIceDepth))
	}
	return err
}

func looksLikeBridge(s string) bool {
	return strings.Contains(strings.ToLower(s), "bridge")
}

// Def returns the definition registered under id.
func (t *Table) Def(id ID) (Def, bool) {
	d, ok := t.defs[id]
	return d, ok
}

// Defs returns every definition in registration order.
func (t *Table) Defs() []Def {
	out := make([]Def, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.defs[id])
	}
	return out
}

// Stats returns the water stats of id. A terrain without stats is a
// configuration error for any caller that needs them.
func (t *Table) Stats(id ID) (WaterStats, error) {
	s, ok := t.stats[id]
	if !ok {
		return WaterStats{}, configErrorf(id, "no water stats registered")
	}
	return s, nil
}

// HasStats reports whether id carries water stats.
func (t *Table) HasStats(id ID) bool {
	_, ok := t.stats[id]
	return ok
}

// IsFreezableWater reports whether id is water with a thin ice mapping.
func (t *Table) IsFreezableWater(id ID) bool {
	_, ok := t.freezable[id]
	return ok
}

// IsThawableIce reports whether id is the ice stage of some freezable water.
func (t *Table) IsThawableIce(id ID) bool {
	_, ok := t.thawable[id]
	return ok
}

// IsBridge reports whether id is a bridge: flagged as one, or named like one.
func (t *Table) IsBridge(id ID) bool {
	if id == None {
		return false
	}
	if b, ok := t.bridges[id]; ok {
		return b
	}
	return looksLikeBridge(string(id))
}

// IsWater reports whether id is any kind of water, freezable or not.
func (t *Table) IsWater(id ID) bool {
	if d, ok := t.defs[id]; ok && d.Water {
		return true
	}
	return t.HasStats(id)
}

// Affordances returns the affordances id offers.
func (t *Table) Affordances(id ID) []Affordance {
	return t.defs[id].Affordances
}

// HasAffordance reports whether id offers a.
func (t *Table) HasAffordance(id ID, a Affordance) bool {
	return slices.Contains(t.defs[id].Affordances, a)
}

// FreezableWater lists the freezable water types, sorted.
func (t *Table) FreezableWater() []ID { return sortedKeys(t.freezable) }

// ThawableIce lists the ice types, sorted.
func (t *Table) ThawableIce() []ID { return sortedKeys(t.thawable) }

func sortedKeys(m map[ID]struct{}) []ID {
	out := make([]ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
