// Package terrain holds the static terrain definitions of a map and the
// classification table of water-bearing terrain types that drives freezing
// and thawing.
package terrain

// ID identifies a terrain type. The zero value means "no terrain".
type ID string

// None is the empty terrain identifier.
const None ID = ""

// Affordance names a capability a terrain type offers to structures placed
// on it (e.g. "Heavy", "ShallowWater").
type Affordance string

// Common affordances used by the bundled definitions.
const (
	AffordanceLight        Affordance = "Light"
	AffordanceMedium       Affordance = "Medium"
	AffordanceHeavy        Affordance = "Heavy"
	AffordanceBridgeable   Affordance = "Bridgeable"
	AffordanceMovingFluid  Affordance = "MovingFluid"
	AffordanceShallowWater Affordance = "ShallowWater"
	AffordanceDeepWater    Affordance = "DeepWater"
	AffordanceIce          Affordance = "Ice"
)

// Default stage thresholds used when a WaterStats entry leaves them unset.
const (
	DefaultThinIceRatio      = 0.15
	DefaultIceThreshold      = 50
	DefaultThickIceThreshold = 110
)

// WaterStats is the per-type physical metadata of a water terrain.
type WaterStats struct {
	// FreezingPoint is an offset from 0°C.
	FreezingPoint float64 `json:"freezingPoint"`
	MaxWaterDepth float64 `json:"maxWaterDepth"`
	MaxIceDepth   float64 `json:"maxIceDepth"`
	// IsMoving marks river-like water: it resists freezing and its ice lasts
	// longer near land instead of away from it.
	IsMoving bool `json:"isMoving"`

	// ThinIce is mandatory for the type to freeze at all.
	ThinIce  ID `json:"thinIce"`
	Ice      ID `json:"ice"`
	ThickIce ID `json:"thickIce"`

	// ThinIceRatio is the ice/(ice+water) ratio below which the cell still
	// shows open water. IceThreshold and ThickIceThreshold are absolute ice
	// depths.
	ThinIceRatio      float64 `json:"thinIceRatio"`
	IceThreshold      float64 `json:"iceThreshold"`
	ThickIceThreshold float64 `json:"thickIceThreshold"`
}

// Freezable reports whether the stats describe water that can turn to ice.
func (s WaterStats) Freezable() bool { return s.ThinIce != None }

func (s WaterStats) withDefaults() WaterStats {
	if s.ThinIceRatio <= 0 {
		s.ThinIceRatio = DefaultThinIceRatio
	}
	if s.IceThreshold <= 0 {
		s.IceThreshold = DefaultIceThreshold
	}
	if s.ThickIceThreshold <= 0 {
		s.ThickIceThreshold = DefaultThickIceThreshold
	}
	return s
}

// Def is the static description of one terrain type.
type Def struct {
	ID          ID           `json:"id"`
	Label       string       `json:"label"`
	Bridge      bool         `json:"bridge"`
	Water       bool         `json:"water"`
	Affordances []Affordance `json:"affordances"`
	Stats       *WaterStats  `json:"stats,omitempty"`
}
