package lake

import (
	"context"
	"fmt"

	"waterfreezes/internal/freeze"
	"waterfreezes/internal/terrain"
)

// YearReport captures telemetry from a deterministic multi-year run used for
// tuning the freeze settings.
type YearReport struct {
	// Tracked is the number of cells tracking water at the start.
	Tracked int
	// PeakFrozen is the largest fraction of tracked cells holding ice on any
	// sampled day, and PeakDay the first day it was reached.
	PeakFrozen float64
	PeakDay    int
	// PeakIce is the largest total ice volume on any sampled day.
	PeakIce float64
	// SummerResidue is the ice volume left on the last day of the final
	// summer. Settings that let ice survive summer score high here.
	SummerResidue float64
	Built         int
	Destroyed     int
	Days          int
}

func (r YearReport) String() string {
	return fmt.Sprintf("tracked=%d peakFrozen=%.2f@day%d peakIce=%.0f residue=%.1f built=%d destroyed=%d days=%d",
		r.Tracked, r.PeakFrozen, r.PeakDay, r.PeakIce, r.SummerResidue, r.Built, r.Destroyed, r.Days)
}

// RunYears generates a map from cfg, runs it for the given number of years
// and samples it once per day. It stops early when ctx is done.
func RunYears(ctx context.Context, cfg Config, years int) (YearReport, error) {
	w := NewWithConfig(cfg)
	w.Reset(cfg.Seed)
	if err := w.Err(); err != nil {
		return YearReport{}, err
	}

	var rep YearReport
	rep.Tracked, _, _ = w.census()
	end := years * w.yearTicks()
	day := -1
	prevSeason := freeze.SeasonUndefined
	var lastSummerIce float64
	for w.ticks < end {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		w.Step()
		if err := w.Err(); err != nil {
			return rep, err
		}
		if d := w.Day(); d != day {
			day = d
			rep.Days++
			tracked, frozen, ice := w.census()
			if tracked > 0 {
				if f := float64(frozen) / float64(tracked); f > rep.PeakFrozen {
					rep.PeakFrozen, rep.PeakDay = f, day
				}
			}
			rep.PeakIce = max(rep.PeakIce, ice)
			season := w.Season()
			if season == freeze.SeasonSummer {
				lastSummerIce = ice
			}
			if prevSeason == freeze.SeasonSummer && season != freeze.SeasonSummer {
				rep.SummerResidue = lastSummerIce
			}
			prevSeason = season
		}
	}
	rep.Built, rep.Destroyed = w.built, w.destroyed
	return rep, nil
}

// census counts tracked and frozen cells and sums their ice.
func (w *World) census() (tracked, frozen int, ice float64) {
	for i := range w.top {
		if w.comp.TrackedWater(i) == terrain.None {
			continue
		}
		tracked++
		if v := w.comp.Ice(i); v > 0 {
			frozen++
			ice += v
		}
	}
	return tracked, frozen, ice
}
