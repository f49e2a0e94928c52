package lake

import (
	"fmt"

	"waterfreezes/internal/core"
	"waterfreezes/internal/freeze"
)

// Parameters lists the world, climate and freeze tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				core.FloatParam("noise_scale", "Noise scale", p.NoiseScale),
				core.FloatParam("shallow_level", "Shallow water level", p.ShallowLevel),
				core.FloatParam("deep_level", "Deep water level", p.DeepLevel),
				core.FloatParam("marsh_level", "Marsh level", p.MarshLevel),
				core.IntParam("river_width", "River width", p.RiverWidth),
				core.FloatParam("river_meander", "River meander", p.RiverMeander),
				core.IntParam("bridge_count", "Bridges", p.BridgeCount),
			},
		},
		{
			Name: "Climate",
			Params: []core.Parameter{
				core.FloatParam("mean_temp", "Mean temperature", p.MeanTemp),
				core.FloatParam("season_amplitude", "Season amplitude", p.SeasonAmplitude),
				core.FloatParam("temp_noise", "Local temperature noise", p.TempNoise),
				core.IntParam("ticks_per_day", "Ticks per day", p.TicksPerDay),
				core.IntParam("days_per_season", "Days per season", p.DaysPerSeason),
				core.IntParam("step_ticks", "Ticks per step", p.StepTicks),
			},
		},
		{
			Name: "Settlers",
			Params: []core.Parameter{
				core.FloatParam("build_chance", "Build chance", p.BuildChance),
				core.FloatParam("frost_per_update", "Frost per update", p.FrostPerUpdate),
			},
		},
		w.comp.Settings().Parameters(),
	}
	groups[len(groups)-1].Summary = w.status()
	return core.ParameterSnapshot{Groups: groups}
}

func (w *World) status() string {
	return fmt.Sprintf("day %d, %s, %.1f°C, %d buildings lost", w.Day()+1, w.Season(), w.OutdoorTemp(), w.destroyed)
}

// ParameterControls exposes the HUD-adjustable controls.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: "mean_temp", Label: "Mean temp", Type: core.ParamTypeFloat, Step: 1},
		{Key: "season_amplitude", Label: "Season amp", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
		{Key: "step_ticks", Label: "Ticks/step", Type: core.ParamTypeInt, Step: 250, Min: 1, HasMin: true},
	}
	return append(controls, w.comp.Settings().Controls()...)
}

// SetIntParameter updates an integer tunable at runtime.
func (w *World) SetIntParameter(key string, value int) bool {
	if key == "step_ticks" {
		w.cfg.Params.StepTicks = max(value, 1)
		return true
	}
	s := w.comp.Settings()
	if !s.SetInt(key, value) {
		return false
	}
	w.applySettings(s)
	return true
}

// SetFloatParameter updates a floating point tunable at runtime.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "mean_temp":
		w.cfg.Params.MeanTemp = value
		return true
	case "season_amplitude":
		w.cfg.Params.SeasonAmplitude = max(value, 0)
		return true
	}
	s := w.comp.Settings()
	if !s.SetFloat(key, value) {
		return false
	}
	w.applySettings(s)
	return true
}

func (w *World) applySettings(s freeze.Settings) {
	w.cfg.Freeze = s
	w.comp.SetSettings(s)
}
