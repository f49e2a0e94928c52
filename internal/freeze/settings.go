package freeze

import (
	"strconv"

	"waterfreezes/internal/core"
)

// Bounds of the configurable update interval.
const (
	MinIceRate = 500
	MaxIceRate = 2500
)

// Settings holds the tunables of the freeze simulation.
type Settings struct {
	// IceRate is the update interval in ticks. Rates are tuned against
	// ReferenceRate and rescaled so that freezing progresses at the same
	// speed per game time regardless of the interval.
	IceRate        int
	FreezingFactor float64
	ThawingFactor  float64

	MoisturePumpClearsNaturalWater bool

	ReferenceRate     float64
	MovingWaterOffset float64
	SeasonCacheTicks  int
}

// DefaultSettings returns the standard tuning.
func DefaultSettings() Settings {
	return Settings{
		IceRate:           1000,
		FreezingFactor:    4,
		ThawingFactor:     2,
		ReferenceRate:     2500,
		MovingWaterOffset: 10,
		SeasonCacheTicks:  60000,
	}
}

// Normalize clamps every field into its supported range.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	s.IceRate = min(max(s.IceRate, MinIceRate), MaxIceRate)
	if s.FreezingFactor < 0 {
		s.FreezingFactor = 0
	}
	if s.ThawingFactor < 0 {
		s.ThawingFactor = 0
	}
	if s.ReferenceRate <= 0 {
		s.ReferenceRate = d.ReferenceRate
	}
	if s.SeasonCacheTicks <= 0 {
		s.SeasonCacheTicks = d.SeasonCacheTicks
	}
	return s
}

// rate converts a per-reference-interval amount into a per-update amount.
func (s Settings) rate() float64 {
	return float64(s.IceRate) / s.ReferenceRate
}

// SettingsFromMap populates settings from flag-style key/value pairs.
func SettingsFromMap(cfg map[string]string) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	if v, ok := cfg["ice_rate"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			s.IceRate = parsed
		}
	}
	if v, ok := cfg["freezing_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			s.FreezingFactor = parsed
		}
	}
	if v, ok := cfg["thawing_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			s.ThawingFactor = parsed
		}
	}
	if v, ok := cfg["moisture_pump_clears_natural_water"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			s.MoisturePumpClearsNaturalWater = parsed
		}
	}
	return s.Normalize()
}

// Parameters describes the settings for HUD and CLI listings.
func (s Settings) Parameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Freezing",
		Params: []core.Parameter{
			core.IntParam("ice_rate", "Ice update interval", s.IceRate),
			core.FloatParam("freezing_factor", "Freezing factor", s.FreezingFactor),
			core.FloatParam("thawing_factor", "Thawing factor", s.ThawingFactor),
			core.BoolParam("moisture_pump_clears_natural_water", "Pumps clear natural water", s.MoisturePumpClearsNaturalWater),
		},
	}
}

// Controls lists the HUD-adjustable settings.
func (s Settings) Controls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "ice_rate", Label: "Ice interval", Type: core.ParamTypeInt, Step: 250, Min: MinIceRate, Max: MaxIceRate, HasMin: true, HasMax: true},
		{Key: "freezing_factor", Label: "Freezing factor", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
		{Key: "thawing_factor", Label: "Thawing factor", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
	}
}

// SetInt updates an integer setting, clamping into range. It reports
// whether key names an integer setting.
func (s *Settings) SetInt(key string, value int) bool {
	switch key {
	case "ice_rate":
		s.IceRate = value
	default:
		return false
	}
	*s = s.Normalize()
	return true
}

// SetFloat updates a floating point setting, clamping into range.
func (s *Settings) SetFloat(key string, value float64) bool {
	switch key {
	case "freezing_factor":
		s.FreezingFactor = value
	case "thawing_factor":
		s.ThawingFactor = value
	default:
		return false
	}
	*s = s.Normalize()
	return true
}
