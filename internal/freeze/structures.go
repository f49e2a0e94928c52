package freeze

import (
	"slices"
	"strings"

	"waterfreezes/internal/terrain"
)

// Capability is an optional behaviour a structure supports.
type Capability uint8

const (
	CapFlick Capability = 1 << iota
	CapBreakdown
)

// DestroyMode selects how a structure is removed.
type DestroyMode uint8

const (
	DestroyVanish DestroyMode = iota
	// DestroyFailConstruction leaves the usual wreckage of a collapse.
	DestroyFailConstruction
)

// Acceptance is a place worker's verdict on a position.
type Acceptance struct {
	Accepted bool
	Reason   string
}

// Accept is the accepting verdict.
func Accept() Acceptance { return Acceptance{Accepted: true} }

// Reject refuses placement for reason.
func Reject(reason string) Acceptance { return Acceptance{Reason: reason} }

// PlaceWorker is a custom placement rule attached to a structure type.
type PlaceWorker interface {
	Name() string
	AllowsPlacing(s Structure, cell int) Acceptance
}

// Structure is a building standing on a cell.
type Structure interface {
	DefName() string
	PackageID() string
	IsBuilding() bool
	Destroyable() bool
	// QuestTagged structures belong to a scripted event and are never touched.
	QuestTagged() bool

	PlaceWorkers() []PlaceWorker
	// AffordanceNeeded is the terrain affordance the structure requires, or
	// the empty string.
	AffordanceNeeded() terrain.Affordance

	Has(c Capability) bool
	SwitchedOn() bool
	BrokenDown() bool
	SwitchOff()
	Breakdown()
	Destroy(mode DestroyMode)
}

// Action is what the enforcer did to a structure.
type Action uint8

const (
	ActionNone Action = iota
	ActionSwitchedOff
	ActionBrokenDown
	ActionDestroyed
)

func (a Action) String() string {
	switch a {
	case ActionSwitchedOff:
		return "switched off"
	case ActionBrokenDown:
		return "broken down"
	case ActionDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// Outcome records one enforcement action.
type Outcome struct {
	Cell           int
	DefName        string
	Action         Action
	AffordanceLost bool
}

// Enforcer breaks or removes buildings whose placement rules no longer
// hold after the terrain under them changed.
type Enforcer struct {
	// Exceptions are "packageID.defName" keys, compared case-insensitively.
	Exceptions       []string
	ExceptedPrefixes []string
	// SkippedPlaceWorkers are never consulted.
	SkippedPlaceWorkers []string
	// IgnoredReasons are rejection reasons that do not count as failures.
	IgnoredReasons []string
}

// DefaultEnforcer returns an enforcer with the stock exception lists.
func DefaultEnforcer() *Enforcer {
	return &Enforcer{
		Exceptions: []string{
			"ludeon.rimworld.WaterproofConduit",
			"ludeon.rimworld.royalty.Shuttle",
			"ludeon.rimworld.royalty.ShuttleCrashed",
			"dubwise.dubsbadhygiene.sewagePipeStuff",
			"aelanna.arimreborn.core.ARR_AetherSpotWater",
			"owlchemist.invisiblewalls.Owl_InvisibleWall",
			"somewhereoutinspace.spaceports.Spaceports_FuelProcessor",
		},
		ExceptedPrefixes:    []string{"Ancient", "VFEA_"},
		SkippedPlaceWorkers: []string{"PlaceWorker_Conduit"},
		IgnoredReasons: []string{
			"VPE_NeedsDistance",
			"WFFT_NeedsDistance",
			"RBB.TrapTooClose",
			"RBB.FSTooClose",
			"VME_NeedsDistance",
		},
	}
}

func (e *Enforcer) excepted(s Structure) bool {
	if s.QuestTagged() {
		return true
	}
	name := s.DefName()
	for _, p := range e.ExceptedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	key := s.PackageID() + "." + name
	for _, ex := range e.Exceptions {
		if strings.EqualFold(ex, key) {
			return true
		}
	}
	return false
}

// Enforce re-validates every structure on cell against its current terrain
// t and reacts to the ones that fail.
func (e *Enforcer) Enforce(table *terrain.Table, cell int, t terrain.ID, things []Structure) []Outcome {
	var out []Outcome
	// Destroying may edit the host's list under us.
	for _, s := range slices.Clone(things) {
		if s == nil || !s.IsBuilding() || !s.Destroyable() || e.excepted(s) {
			continue
		}
		workerFailed := e.placeWorkersFail(s, cell)
		affordanceFailed := e.affordanceFails(table, s, t)
		if !workerFailed && !affordanceFailed {
			continue
		}
		onlyAffordance := affordanceFailed && !workerFailed

		o := Outcome{Cell: cell, DefName: s.DefName(), AffordanceLost: affordanceFailed}
		flick, breaks := s.Has(CapFlick), s.Has(CapBreakdown)
		switch {
		case flick && breaks:
			if !s.SwitchedOn() || s.BrokenDown() {
				continue
			}
			s.Breakdown()
			s.SwitchOff()
			o.Action = ActionSwitchedOff
		case breaks && !(onlyAffordance && table.IsWater(t)):
			if s.BrokenDown() {
				continue
			}
			s.Breakdown()
			o.Action = ActionBrokenDown
		default:
			s.Destroy(DestroyFailConstruction)
			o.Action = ActionDestroyed
		}
		out = append(out, o)
	}
	return out
}

func (e *Enforcer) placeWorkersFail(s Structure, cell int) bool {
	for _, pw := range s.PlaceWorkers() {
		if slices.Contains(e.SkippedPlaceWorkers, pw.Name()) {
			continue
		}
		r := pw.AllowsPlacing(s, cell)
		if r.Accepted || slices.Contains(e.IgnoredReasons, r.Reason) {
			continue
		}
		return true
	}
	return false
}

// affordanceFails only judges terrain the table knows.
func (e *Enforcer) affordanceFails(table *terrain.Table, s Structure, t terrain.ID) bool {
	need := s.AffordanceNeeded()
	if need == "" {
		return false
	}
	d, ok := table.Def(t)
	if !ok || d.Affordances == nil {
		return false
	}
	return !slices.Contains(d.Affordances, need)
}
