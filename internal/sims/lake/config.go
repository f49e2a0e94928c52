package lake

import (
	"strconv"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/terrain"
)

// Params holds the map generation and climate tunables of the lake world.
type Params struct {
	NoiseScale     float64
	ShallowLevel   float64
	DeepLevel      float64
	MarshLevel     float64
	RiverWidth     int
	RiverMeander   float64
	BridgeCount    int
	BuildChance    float64
	FrostPerUpdate float64

	MeanTemp        float64
	SeasonAmplitude float64
	TempNoise       float64

	TicksPerDay   int
	DaysPerSeason int
	StepTicks     int
}

// Config controls the lake world dimensions, generation and climate.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
	Freeze freeze.Settings
	// Table classifies terrain. Nil means the bundled definitions.
	Table *terrain.Table
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  160,
		Height: 120,
		Seed:   2024,
		Params: Params{
			NoiseScale:      0.045,
			ShallowLevel:    0.68,
			DeepLevel:       0.76,
			MarshLevel:      0.64,
			RiverWidth:      3,
			RiverMeander:    0.35,
			BridgeCount:     2,
			BuildChance:     0.05,
			FrostPerUpdate:  0.02,
			MeanTemp:        2,
			SeasonAmplitude: 18,
			TempNoise:       3,
			TicksPerDay:     60000,
			DaysPerSeason:   15,
			StepTicks:       250,
		},
		Freeze: freeze.DefaultSettings(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	floats := map[string]*float64{
		"noise_scale":      &c.Params.NoiseScale,
		"shallow_level":    &c.Params.ShallowLevel,
		"deep_level":       &c.Params.DeepLevel,
		"marsh_level":      &c.Params.MarshLevel,
		"river_meander":    &c.Params.RiverMeander,
		"build_chance":     &c.Params.BuildChance,
		"frost_per_update": &c.Params.FrostPerUpdate,
		"mean_temp":        &c.Params.MeanTemp,
		"season_amplitude": &c.Params.SeasonAmplitude,
		"temp_noise":       &c.Params.TempNoise,
	}
	for key, dst := range floats {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	ints := map[string]*int{
		"river_width":     &c.Params.RiverWidth,
		"bridge_count":    &c.Params.BridgeCount,
		"ticks_per_day":   &c.Params.TicksPerDay,
		"days_per_season": &c.Params.DaysPerSeason,
		"step_ticks":      &c.Params.StepTicks,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	c.Freeze = freeze.SettingsFromMap(cfg)
	return c.normalized()
}

// normalized clamps params the calendar and step loop divide by or iterate
// over, and keeps the water levels ordered.
func (c Config) normalized() Config {
	if c.Params.DeepLevel < c.Params.ShallowLevel {
		c.Params.DeepLevel = c.Params.ShallowLevel
	}
	if c.Params.MarshLevel > c.Params.ShallowLevel {
		c.Params.MarshLevel = c.Params.ShallowLevel
	}
	c.Params.TicksPerDay = max(c.Params.TicksPerDay, 1)
	c.Params.DaysPerSeason = max(c.Params.DaysPerSeason, 1)
	c.Params.StepTicks = max(c.Params.StepTicks, 1)
	c.Params.RiverWidth = max(c.Params.RiverWidth, 0)
	c.Params.BridgeCount = max(c.Params.BridgeCount, 0)
	return c
}
