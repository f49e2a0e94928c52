package lake

import (
	"fmt"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/terrain"
)

// Kind is a building type settlers put up on the ice.
type Kind uint8

const (
	KindShelf Kind = iota
	KindHeater
	KindCooler
	KindFishingHole
	kindCount
)

type kindDef struct {
	defName string
	needs   terrain.Affordance
	caps    freeze.Capability
	// spacing is the minimum Chebyshev distance to the next building of the
	// same kind, or 0.
	spacing int
	onIce   bool
}

var kindDefs = [kindCount]kindDef{
	KindShelf:       {defName: "Shelf", needs: terrain.AffordanceMedium},
	KindHeater:      {defName: "Heater", needs: terrain.AffordanceMedium, caps: freeze.CapFlick | freeze.CapBreakdown},
	KindCooler:      {defName: "Cooler", needs: terrain.AffordanceLight, caps: freeze.CapBreakdown},
	KindFishingHole: {defName: "IceFishingHole", spacing: 3, onIce: true},
}

const packageID = "waterfreezes.lakes"

// Building is a structure standing on the lake map.
type Building struct {
	world *World
	kind  Kind
	cell  int

	on     bool
	broken bool
	gone   bool
}

var _ freeze.Structure = (*Building)(nil)

func (b *Building) DefName() string                      { return kindDefs[b.kind].defName }
func (b *Building) PackageID() string                    { return packageID }
func (b *Building) IsBuilding() bool                     { return true }
func (b *Building) Destroyable() bool                    { return !b.gone }
func (b *Building) QuestTagged() bool                    { return false }
func (b *Building) AffordanceNeeded() terrain.Affordance { return kindDefs[b.kind].needs }
func (b *Building) Has(c freeze.Capability) bool         { return kindDefs[b.kind].caps&c != 0 }
func (b *Building) SwitchedOn() bool                     { return b.on }
func (b *Building) BrokenDown() bool                     { return b.broken }
func (b *Building) SwitchOff()                           { b.on = false }
func (b *Building) Breakdown()                           { b.broken = true }

// Kind returns the building type.
func (b *Building) Kind() Kind { return b.kind }

// Cell returns the cell the building stands on.
func (b *Building) Cell() int { return b.cell }

// Gone reports whether the building was destroyed.
func (b *Building) Gone() bool { return b.gone }

// PlaceWorkers lists the placement rules of the building's kind.
func (b *Building) PlaceWorkers() []freeze.PlaceWorker {
	d := kindDefs[b.kind]
	var out []freeze.PlaceWorker
	if d.onIce {
		out = append(out, needsIce{b.world})
	}
	if d.spacing > 0 {
		out = append(out, needsDistance{b.world, d.spacing})
	}
	return out
}

// Destroy removes the building from the map.
func (b *Building) Destroy(mode freeze.DestroyMode) {
	if b.gone {
		return
	}
	b.gone = true
	b.world.removeThing(b)
	b.world.destroyed++
	b.world.log.Debug("building destroyed", "def", b.DefName(), "cell", b.cell, "wreck", mode == freeze.DestroyFailConstruction)
}

// Describe is the readout line of the building.
func (b *Building) Describe() string {
	state := "on"
	switch {
	case b.broken:
		state = "broken"
	case !b.on && b.Has(freeze.CapFlick):
		state = "off"
	case !b.Has(freeze.CapFlick):
		state = "standing"
	}
	return fmt.Sprintf("%s (%s)", b.DefName(), state)
}

type needsIce struct{ w *World }

func (needsIce) Name() string { return "PlaceWorker_NeedsIce" }

func (p needsIce) AllowsPlacing(_ freeze.Structure, cell int) freeze.Acceptance {
	if p.w.table.IsThawableIce(p.w.top[cell]) {
		return freeze.Accept()
	}
	return freeze.Reject("must be placed on ice")
}

// needsDistance refuses placement near another building of the same type.
// Its reason is one the enforcer ignores, so it never breaks standing
// buildings.
type needsDistance struct {
	w    *World
	dist int
}

func (needsDistance) Name() string { return "PlaceWorker_NeedsDistance" }

func (p needsDistance) AllowsPlacing(s freeze.Structure, cell int) freeze.Acceptance {
	x, y := p.w.size.Coords(cell)
	for _, other := range p.w.size.Rect(x-p.dist, y-p.dist, x+p.dist, y+p.dist) {
		for _, t := range p.w.things[other] {
			if t != s && t.DefName() == s.DefName() {
				return freeze.Reject("VPE_NeedsDistance")
			}
		}
	}
	return freeze.Accept()
}

func (w *World) addThing(b *Building) {
	w.things[b.cell] = append(w.things[b.cell], b)
	w.built++
}

func (w *World) removeThing(b *Building) {
	list := w.things[b.cell]
	for k, t := range list {
		if t == b {
			list = append(list[:k:k], list[k+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(w.things, b.cell)
		return
	}
	w.things[b.cell] = list
}

// Place puts a new building of kind k on cell i if the terrain and the
// kind's placement rules allow it.
func (w *World) Place(k Kind, i int) (*Building, bool) {
	if k >= kindCount || i < 0 || i >= len(w.top) || len(w.things[i]) > 0 {
		return nil, false
	}
	b := &Building{world: w, kind: k, cell: i, on: true}
	if need := b.AffordanceNeeded(); need != "" && !w.table.HasAffordance(w.top[i], need) {
		return nil, false
	}
	for _, pw := range b.PlaceWorkers() {
		if !pw.AllowsPlacing(b, i).Accepted {
			return nil, false
		}
	}
	w.addThing(b)
	return b, true
}

// Buildings returns every standing building, ordered by cell.
func (w *World) Buildings() []*Building {
	var out []*Building
	for i := range w.top {
		for _, t := range w.things[i] {
			if b, ok := t.(*Building); ok {
				out = append(out, b)
			}
		}
	}
	return out
}

// Built and Destroyed count buildings placed and lost since the last reset.
func (w *World) Built() int     { return w.built }
func (w *World) Destroyed() int { return w.destroyed }

// build lets settlers try one building on a random icy cell while it is
// freezing outside.
func (w *World) build() {
	if w.OutdoorTemp() >= 0 || !w.rng.Chance(w.cfg.Params.BuildChance) || len(w.top) == 0 {
		return
	}
	i := w.rng.IntN(len(w.top))
	if !w.table.IsThawableIce(w.top[i]) {
		return
	}
	if b, ok := w.Place(Kind(w.rng.IntN(int(kindCount))), i); ok {
		w.log.Debug("building placed", "def", b.DefName(), "cell", i)
	}
}

// settleFrost grows frost on freezing land and melts it in the warmth.
// Tracked water never holds frost.
func (w *World) settleFrost() {
	step := w.cfg.Params.FrostPerUpdate
	for i := range w.frost {
		if w.comp.TrackedWater(i) != terrain.None {
			continue
		}
		if w.TemperatureAt(i) < 0 {
			w.frost[i] = min(w.frost[i]+step, 1)
		} else {
			w.frost[i] = max(w.frost[i]-2*step, 0)
		}
	}
}
