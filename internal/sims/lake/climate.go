package lake

import (
	"fmt"
	"math"

	"waterfreezes/internal/freeze"
)

// Phase of the year, in [0,1), at which the season curve peaks.
const midsummer = 0.375

// Thresholds for climates that never leave one season.
const (
	permanentWinterMax = 0
	permanentSummerMin = 10
)

// yearTicks is the length of one year: four seasons.
func (w *World) yearTicks() int {
	return w.cfg.Params.TicksPerDay * w.cfg.Params.DaysPerSeason * 4
}

// Day returns the zero-based day of the current tick.
func (w *World) Day() int { return w.ticks / w.cfg.Params.TicksPerDay }

// Season implements freeze.Host. Maps whose yearly maximum stays below zero
// are in permanent winter, maps whose yearly minimum stays warm are in
// permanent summer.
func (w *World) Season() freeze.Season {
	p := w.cfg.Params
	amp := math.Abs(p.SeasonAmplitude)
	switch {
	case p.MeanTemp+amp < permanentWinterMax:
		return freeze.SeasonPermanentWinter
	case p.MeanTemp-amp > permanentSummerMin:
		return freeze.SeasonPermanentSummer
	}
	switch (w.Day() / p.DaysPerSeason) % 4 {
	case 0:
		return freeze.SeasonSpring
	case 1:
		return freeze.SeasonSummer
	case 2:
		return freeze.SeasonFall
	default:
		return freeze.SeasonWinter
	}
}

// TicksForSeason returns the first tick of season s in year zero.
func (w *World) TicksForSeason(s freeze.Season) int {
	per := w.cfg.Params.TicksPerDay * w.cfg.Params.DaysPerSeason
	switch s {
	case freeze.SeasonSummer:
		return per
	case freeze.SeasonFall:
		return 2 * per
	case freeze.SeasonWinter:
		return 3 * per
	default:
		return 0
	}
}

// TemperatureAt implements freeze.Host: the seasonal curve plus a fixed
// per-cell offset from the climate noise.
func (w *World) TemperatureAt(i int) float64 {
	return w.OutdoorTemp() + w.tempBase[i]
}

// OutdoorTemp is the map-wide temperature of the current tick.
func (w *World) OutdoorTemp() float64 {
	p := w.cfg.Params
	year := w.yearTicks()
	f := float64(w.ticks%year) / float64(year)
	return p.MeanTemp + p.SeasonAmplitude*math.Cos(2*math.Pi*(f-midsummer))
}

func formatTemp(t float64) string {
	return fmt.Sprintf("Temperature %.1f°C", t)
}
