package freeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterfreezes/internal/terrain"
)

type fakeWorker struct {
	name    string
	verdict Acceptance
	calls   int
}

func (w *fakeWorker) Name() string { return w.name }

func (w *fakeWorker) AllowsPlacing(Structure, int) Acceptance {
	w.calls++
	return w.verdict
}

type fakeStructure struct {
	def     string
	pkg     string
	quest   bool
	fixed   bool
	workers []PlaceWorker
	need    terrain.Affordance
	caps    Capability

	on        bool
	broken    bool
	destroyed bool
	mode      DestroyMode
}

func building(def string, need terrain.Affordance, caps Capability) *fakeStructure {
	return &fakeStructure{def: def, pkg: "ludeon.rimworld", need: need, caps: caps, on: true}
}

func (s *fakeStructure) DefName() string                      { return s.def }
func (s *fakeStructure) PackageID() string                    { return s.pkg }
func (s *fakeStructure) IsBuilding() bool                     { return true }
func (s *fakeStructure) Destroyable() bool                    { return !s.fixed }
func (s *fakeStructure) QuestTagged() bool                    { return s.quest }
func (s *fakeStructure) PlaceWorkers() []PlaceWorker          { return s.workers }
func (s *fakeStructure) AffordanceNeeded() terrain.Affordance { return s.need }
func (s *fakeStructure) Has(c Capability) bool                { return s.caps&c != 0 }
func (s *fakeStructure) SwitchedOn() bool                     { return s.on }
func (s *fakeStructure) BrokenDown() bool                     { return s.broken }
func (s *fakeStructure) SwitchOff()                           { s.on = false }
func (s *fakeStructure) Breakdown()                           { s.broken = true }

func (s *fakeStructure) Destroy(mode DestroyMode) {
	s.destroyed = true
	s.mode = mode
}

func TestEnforcerTiers(t *testing.T) {
	table := terrain.MustVanilla()
	e := DefaultEnforcer()

	t.Run("flick and breakdown switches off", func(t *testing.T) {
		s := building("Heater", terrain.AffordanceHeavy, CapFlick|CapBreakdown)
		out := e.Enforce(table, 0, terrain.LakeIceThin, []Structure{s})
		require.Len(t, out, 1)
		assert.Equal(t, ActionSwitchedOff, out[0].Action)
		assert.False(t, s.on)
		assert.True(t, s.broken)
		assert.False(t, s.destroyed)

		assert.Empty(t, e.Enforce(table, 0, terrain.LakeIceThin, []Structure{s}))
	})
	t.Run("breakdown only breaks down", func(t *testing.T) {
		s := building("Cooler", terrain.AffordanceHeavy, CapBreakdown)
		out := e.Enforce(table, 0, terrain.LakeIce, []Structure{s})
		require.Len(t, out, 1)
		assert.Equal(t, ActionBrokenDown, out[0].Action)
		assert.True(t, out[0].AffordanceLost)
		assert.True(t, s.broken)
		assert.False(t, s.destroyed)
	})
	t.Run("breakdown only on water is destroyed", func(t *testing.T) {
		s := building("Cooler", terrain.AffordanceHeavy, CapBreakdown)
		out := e.Enforce(table, 0, terrain.WaterShallow, []Structure{s})
		require.Len(t, out, 1)
		assert.Equal(t, ActionDestroyed, out[0].Action)
		assert.True(t, s.destroyed)
	})
	t.Run("breakdown only failing a worker on water breaks down", func(t *testing.T) {
		s := building("Cooler", terrain.AffordanceHeavy, CapBreakdown)
		s.workers = []PlaceWorker{&fakeWorker{name: "PlaceWorker_Cooler", verdict: Reject("blocked")}}
		out := e.Enforce(table, 0, terrain.WaterShallow, []Structure{s})
		require.Len(t, out, 1)
		assert.Equal(t, ActionBrokenDown, out[0].Action)
	})
	t.Run("plain structure is destroyed", func(t *testing.T) {
		s := building("Wall", terrain.AffordanceHeavy, 0)
		out := e.Enforce(table, 0, terrain.LakeIceThin, []Structure{s})
		require.Len(t, out, 1)
		assert.Equal(t, ActionDestroyed, out[0].Action)
		assert.Equal(t, DestroyFailConstruction, s.mode)
	})
	t.Run("valid structure is kept", func(t *testing.T) {
		s := building("Wall", terrain.AffordanceLight, 0)
		assert.Empty(t, e.Enforce(table, 0, terrain.LakeIceThin, []Structure{s}))
		assert.False(t, s.destroyed)
	})
}

func TestEnforcerExceptions(t *testing.T) {
	table := terrain.MustVanilla()
	e := DefaultEnforcer()

	ancient := building("AncientFence", terrain.AffordanceHeavy, 0)
	quest := building("Wall", terrain.AffordanceHeavy, 0)
	quest.quest = true
	listed := building("waterproofconduit", terrain.AffordanceHeavy, 0)
	listed.pkg = "Ludeon.RimWorld"
	fixed := building("Wall", terrain.AffordanceHeavy, 0)
	fixed.fixed = true

	things := []Structure{ancient, quest, listed, fixed, nil}
	assert.Empty(t, e.Enforce(table, 0, terrain.WaterDeep, things))
	for _, s := range []*fakeStructure{ancient, quest, listed, fixed} {
		assert.False(t, s.destroyed, s.def)
	}
}

func TestEnforcerPlaceWorkers(t *testing.T) {
	table := terrain.MustVanilla()
	e := DefaultEnforcer()

	conduit := &fakeWorker{name: "PlaceWorker_Conduit", verdict: Reject("no")}
	spacing := &fakeWorker{name: "PlaceWorker_Spacing", verdict: Reject("VPE_NeedsDistance")}
	s := building("Pipe", "", 0)
	s.workers = []PlaceWorker{conduit, spacing}

	assert.Empty(t, e.Enforce(table, 0, terrain.LakeIce, []Structure{s}))
	assert.Zero(t, conduit.calls)
	assert.Equal(t, 1, spacing.calls)

	s.workers = append(s.workers, &fakeWorker{name: "PlaceWorker_NotUnderRoof", verdict: Reject("roofed")})
	out := e.Enforce(table, 0, terrain.LakeIce, []Structure{s})
	require.Len(t, out, 1)
	assert.False(t, out[0].AffordanceLost)
	assert.True(t, s.destroyed)
}

func TestEnforcerSkipsUnknownTerrain(t *testing.T) {
	s := building("Wall", terrain.AffordanceHeavy, 0)
	assert.Empty(t, DefaultEnforcer().Enforce(terrain.MustVanilla(), 0, "ModdedSwamp", []Structure{s}))
}

func TestStageRunsEnforcer(t *testing.T) {
	h, c := pond(t)
	i := h.idx(2, 1)
	s := building("Lamp", terrain.AffordanceHeavy, 0)
	h.things[i] = []Structure{s}

	require.NoError(t, c.SetIceDepthToMax(i))
	assert.True(t, s.destroyed)
}

func TestStageSkipsEnforcerUnderBridges(t *testing.T) {
	h := newFakeHost(3, 3, terrain.WaterShallow)
	h.top[4] = terrain.Bridge
	h.under[4] = terrain.WaterShallow
	c := newTestComponent(t, h)
	s := building("Lamp", terrain.AffordanceHeavy, 0)
	h.things[4] = []Structure{s}

	require.NoError(t, c.SetIceDepthToMax(4))
	assert.False(t, s.destroyed)
}
