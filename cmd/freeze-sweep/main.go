// Command freeze-sweep runs lake maps through whole years under a grid of
// freeze settings and climates and ranks how convincingly they freeze in
// winter and clear in summer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"time"

	"gopkg.in/src-d/go-billy.v4/osfs"

	"waterfreezes/internal/sims/lake"
	"waterfreezes/internal/terrain"
)

type paramSet struct {
	iceRate  int
	freezing float64
	thawing  float64
	meanTemp float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("iceRate=%d freezing=%.1f thawing=%.1f meanTemp=%.1f", p.iceRate, p.freezing, p.thawing, p.meanTemp)
}

type scenarioResult struct {
	params paramSet
	report lake.YearReport
	err    error
}

// score rewards a broad winter freeze and penalizes ice that outlives
// summer.
func (r scenarioResult) score() float64 {
	if r.err != nil || r.report.Tracked == 0 {
		return -1
	}
	residue := r.report.SummerResidue / max(r.report.PeakIce, 1)
	return r.report.PeakFrozen - residue
}

func main() {
	years := flag.Int("years", 2, "years to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 96, "map width")
	height := flag.Int("h", 64, "map height")
	seed := flag.Int64("seed", 2024, "map seed")
	days := flag.Int("days", 5, "days per season")
	terrainFile := flag.String("terrain", "", "JSON terrain definitions to use instead of the bundled ones")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	base := lake.DefaultConfig()
	base.Width, base.Height, base.Seed = *width, *height, *seed
	base.Params.DaysPerSeason = max(*days, 1)
	base.Params.StepTicks = 500
	if *terrainFile != "" {
		table, err := terrain.LoadFile(osfs.New("."), *terrainFile)
		if err != nil {
			log.Fatalf("load terrain: %v", err)
		}
		base.Table = table
	}

	var sets []paramSet
	for _, rate := range []int{500, 1000, 2000} {
		for _, freezing := range []float64{2, 4, 6} {
			for _, thawing := range []float64{1, 2, 4} {
				for _, temp := range []float64{-4, 2, 8} {
					sets = append(sets, paramSet{iceRate: rate, freezing: freezing, thawing: thawing, meanTemp: temp})
				}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d years)\n", len(sets), *workers, *years)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup
	for range max(*workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- runScenario(ctx, base, p, *years)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		defer close(jobs)
		for _, p := range sets {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var all []scenarioResult
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			fmt.Printf("Scenario %s failed: %v\n", res.params, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].score() > all[j].score() })
	fmt.Printf("\nTop %d results (elapsed %s, %d failed):\n", min(*top, len(all)), time.Since(start).Round(time.Millisecond), failed)
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) score=%.3f %s %s\n", i+1, all[i].score(), all[i].report, all[i].params)
	}
}

func runScenario(ctx context.Context, base lake.Config, p paramSet, years int) scenarioResult {
	cfg := base
	cfg.Freeze.IceRate = p.iceRate
	cfg.Freeze.FreezingFactor = p.freezing
	cfg.Freeze.ThawingFactor = p.thawing
	cfg.Freeze = cfg.Freeze.Normalize()
	cfg.Params.MeanTemp = p.meanTemp

	rep, err := lake.RunYears(ctx, cfg, years)
	return scenarioResult{params: p, report: rep, err: err}
}
