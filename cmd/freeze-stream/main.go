// Command freeze-stream runs lake maps headless and streams their ice to
// websocket clients on /ws. Clients may send administrative commands back;
// they are applied between steps. Map state is saved on an interval and on
// shutdown. -load resumes the freeze grids only: terrain is regenerated from
// the seed and the calendar, buildings and frost start over.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"gopkg.in/src-d/go-billy.v4/osfs"

	"waterfreezes/internal/core"
	"waterfreezes/internal/freeze"
	"waterfreezes/internal/save"
	"waterfreezes/internal/sims/lake"
	"waterfreezes/internal/stream"
	"waterfreezes/internal/terrain"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	maps := flag.Int("maps", 1, "number of maps, seeded seed, seed+1, ...")
	seed := flag.Int64("seed", 2024, "seed of the first map")
	width := flag.Int("w", 96, "map width")
	height := flag.Int("h", 64, "map height")
	tps := flag.Int("tps", 10, "steps per second")
	saveDir := flag.String("save", "", "directory for map saves; empty disables saving")
	saveEvery := flag.Duration("save-every", time.Minute, "interval between saves")
	load := flag.Bool("load", false, "resume the ice and water grids from -save; the calendar, buildings and frost start over")
	terrainFile := flag.String("terrain", "", "JSON terrain definitions to use instead of the bundled ones")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	table := terrain.MustVanilla()
	if *terrainFile != "" {
		t, err := terrain.LoadFile(osfs.New("."), *terrainFile)
		if err != nil {
			log.Fatalf("load terrain: %v", err)
		}
		table = t
	}

	reg := freeze.NewRegistry()
	worlds := make(map[freeze.MapID]*lake.World, *maps)
	for k := range max(*maps, 1) {
		cfg := lake.DefaultConfig()
		cfg.Width, cfg.Height, cfg.Seed = *width, *height, *seed+int64(k)
		w := lake.NewWithTable(cfg, table, logger.With("map", k+1))
		w.Reset(cfg.Seed)
		id := freeze.MapID(k + 1)
		worlds[id] = w
		reg.Add(id, w.Component())
	}

	var store *save.Store
	if *saveDir != "" {
		store = save.New(osfs.New(*saveDir), ".")
		if *load {
			if err := store.LoadAll(reg); err != nil {
				log.Fatalf("load saves: %v", err)
			}
			logger.Info("freeze grids loaded; calendar restarts at tick 0", "dir", *saveDir)
		}
	}

	hub := stream.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()
	logger.Info("streaming", "addr", *addr, "maps", len(worlds))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, logger, hub, reg, worlds, store, core.NewFixedStep(*tps).Interval(), *saveEvery)

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("shutdown", "err", serr)
	}
	if store != nil {
		if serr := store.SaveAll(reg); serr != nil {
			logger.Error("final save failed", "err", serr)
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// run steps every map, applies client commands and publishes frames until
// ctx ends or a map halts. Every component access happens here.
func run(ctx context.Context, logger *slog.Logger, hub *stream.Hub, reg *freeze.Registry, worlds map[freeze.MapID]*lake.World, store *save.Store, step, saveEvery time.Duration) error {
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	lastSave := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-hub.Commands():
			res, err := stream.Apply(reg, cmd)
			if err != nil {
				logger.Warn("command failed", "map", cmd.Map, "op", cmd.Op, "err", err)
				continue
			}
			logger.Info("command applied", "map", res.Map, "op", res.Op, "cells", res.Cells, "rejected", res.Failures)
		case <-ticker.C:
			for _, id := range reg.IDs() {
				w := worlds[id]
				w.Step()
				if err := w.Err(); err != nil {
					return err
				}
				size := w.Size()
				hub.Publish(stream.Snapshot(id, w.Ticks(), w.Season(), size.W, size.H, w.Component()))
			}
			if store != nil && time.Since(lastSave) >= saveEvery {
				if err := store.SaveAll(reg); err != nil {
					logger.Error("save failed", "err", err)
				}
				lastSave = time.Now()
			}
		}
	}
}
