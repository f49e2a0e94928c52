package terrain

// Terrain identifiers of the bundled definitions.
const (
	Soil          ID = "Soil"
	Sand          ID = "Sand"
	Gravel        ID = "Gravel"
	MarshyTerrain ID = "MarshyTerrain"
	Mud           ID = "Mud"

	WaterShallow         ID = "WaterShallow"
	WaterDeep            ID = "WaterDeep"
	WaterMovingShallow   ID = "WaterMovingShallow"
	WaterMovingChestDeep ID = "WaterMovingChestDeep"
	Marsh                ID = "Marsh"
	WaterOceanShallow    ID = "WaterOceanShallow"
	WaterOceanDeep       ID = "WaterOceanDeep"

	LakeIceThin  ID = "WF_LakeIceThin"
	LakeIce      ID = "WF_LakeIce"
	LakeIceThick ID = "WF_LakeIceThick"
	MarshIceThin ID = "WF_MarshIceThin"

	Bridge      ID = "Bridge"
	HeavyBridge ID = "HeavyBridge"
)

var (
	landAffordances         = []Affordance{AffordanceLight, AffordanceMedium, AffordanceHeavy}
	shallowWaterAffordances = []Affordance{AffordanceShallowWater, AffordanceBridgeable}
	movingWaterAffordances  = []Affordance{AffordanceShallowWater, AffordanceMovingFluid, AffordanceBridgeable}
	deepWaterAffordances    = []Affordance{AffordanceDeepWater, AffordanceBridgeable}
	iceAffordances          = []Affordance{AffordanceLight, AffordanceIce}
	thickIceAffordances     = []Affordance{AffordanceLight, AffordanceMedium, AffordanceIce}
)

// Vanilla returns the bundled terrain definitions: ordinary land, the five
// freezable water types with their ice stages, salt water that never
// freezes, and bridges.
func Vanilla() []Def {
	return []Def{
		{ID: Soil, Label: "soil", Affordances: landAffordances},
		{ID: Sand, Label: "sand", Affordances: landAffordances},
		{ID: Gravel, Label: "gravel", Affordances: landAffordances},
		{ID: MarshyTerrain, Label: "marshy soil", Affordances: []Affordance{AffordanceLight}},
		{ID: Mud, Label: "mud", Affordances: []Affordance{AffordanceLight}},

		{ID: WaterShallow, Label: "shallow water", Water: true, Affordances: shallowWaterAffordances, Stats: &WaterStats{
			MaxWaterDepth: 100, MaxIceDepth: 100,
			ThinIce: LakeIceThin, Ice: LakeIce,
		}},
		{ID: WaterDeep, Label: "deep water", Water: true, Affordances: deepWaterAffordances, Stats: &WaterStats{
			FreezingPoint: -1, MaxWaterDepth: 400, MaxIceDepth: 400,
			ThinIce: LakeIceThin, Ice: LakeIce, ThickIce: LakeIceThick,
		}},
		{ID: WaterMovingShallow, Label: "shallow moving water", Water: true, Affordances: movingWaterAffordances, Stats: &WaterStats{
			MaxWaterDepth: 100, MaxIceDepth: 100, IsMoving: true,
			ThinIce: LakeIceThin, Ice: LakeIce,
		}},
		{ID: WaterMovingChestDeep, Label: "chest-deep moving water", Water: true, Affordances: movingWaterAffordances, Stats: &WaterStats{
			FreezingPoint: -1, MaxWaterDepth: 250, MaxIceDepth: 250, IsMoving: true,
			ThinIce: LakeIceThin, Ice: LakeIce, ThickIce: LakeIceThick,
		}},
		{ID: Marsh, Label: "marsh", Water: true, Affordances: []Affordance{AffordanceShallowWater}, Stats: &WaterStats{
			FreezingPoint: 0.5, MaxWaterDepth: 40, MaxIceDepth: 40,
			ThinIce: MarshIceThin,
		}},
		{ID: WaterOceanShallow, Label: "shallow ocean water", Water: true, Affordances: shallowWaterAffordances},
		{ID: WaterOceanDeep, Label: "deep ocean water", Water: true, Affordances: deepWaterAffordances},

		{ID: LakeIceThin, Label: "thin ice", Affordances: iceAffordances},
		{ID: LakeIce, Label: "ice", Affordances: thickIceAffordances},
		{ID: LakeIceThick, Label: "thick ice", Affordances: []Affordance{AffordanceLight, AffordanceMedium, AffordanceHeavy, AffordanceIce}},
		{ID: MarshIceThin, Label: "marsh ice", Affordances: iceAffordances},

		{ID: Bridge, Label: "bridge", Bridge: true, Affordances: []Affordance{AffordanceLight, AffordanceMedium}},
		{ID: HeavyBridge, Label: "heavy bridge", Bridge: true, Affordances: landAffordances},
	}
}

// MustVanilla builds the bundled table, panicking on a defect. The bundled
// definitions are covered by tests, so a failure here is a programming error.
func MustVanilla() *Table {
	t, err := NewTable(Vanilla())
	if err != nil {
		panic(err)
	}
	return t
}
