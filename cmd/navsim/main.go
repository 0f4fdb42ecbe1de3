package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gridnav/internal/config"
	"github.com/udisondev/gridnav/internal/db"
	"github.com/udisondev/gridnav/internal/levelwatch"
	"github.com/udisondev/gridnav/internal/nav"
	"github.com/udisondev/gridnav/internal/terrain"
)

const ConfigPath = "config/navsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GRIDNAV_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadNavigation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	nav.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("navsim starting",
		"log_level", cfg.LogLevel,
		"source", cfg.Level.Source,
		"agents", cfg.Sim.Agents,
		"ticks", cfg.Sim.Ticks)

	heuristic, err := nav.ParseHeuristic(cfg.Heuristic)
	if err != nil {
		return fmt.Errorf("configuring path finder: %w", err)
	}

	grid, err := loadGrid(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("level loaded", "width", grid.Width(), "height", grid.Height())

	navCtx := nav.NewContext(grid)
	sim := NewSimulation(navCtx, cfg.Sim.Agents, cfg.Sim.Seed, heuristic)

	g, gctx := errgroup.WithContext(ctx)
	simCtx, stop := context.WithCancel(gctx)
	defer stop()

	if cfg.Level.Watch {
		w, err := levelwatch.New(cfg.Level.Path)
		if err != nil {
			return fmt.Errorf("watching level: %w", err)
		}
		g.Go(func() error {
			slog.Info("watching level file", "path", cfg.Level.Path)
			return w.Run(simCtx, func(path string) { reloadLevel(navCtx, path) })
		})
	}

	g.Go(func() error {
		defer stop()
		if err := sim.Run(simCtx, cfg.Sim.Ticks, cfg.Sim.TickInterval); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	sum := sim.Summary()
	slog.Info("simulation finished",
		"ticks", sum.Ticks,
		"agents", sum.Agents,
		"moves", sum.Moves,
		"arrivals", sum.Arrivals,
		"in_sight", sum.InSight,
		"stuck", sum.Stuck,
		"respawns", sum.Respawns,
		"searches", sum.Finder.Searches,
		"cache_hits", sum.Finder.CacheHits,
		"failures", sum.Finder.Failures,
		"rejected", sum.Finder.Rejected,
		"graph_generation", navCtx.Generation())
	return nil
}

// loadGrid reads the configured level from a file or the database.
func loadGrid(ctx context.Context, cfg config.Navigation) (terrain.Grid, error) {
	switch cfg.Level.Source {
	case config.SourceDatabase:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		m, err := database.Levels().Load(ctx, cfg.Level.Name)
		if err != nil {
			return nil, fmt.Errorf("loading level from database: %w", err)
		}
		return m, nil
	default:
		return loadLevelFile(cfg.Level.Path)
	}
}

func loadLevelFile(path string) (*terrain.Map, error) {
	lvl, err := terrain.LoadLevel(path)
	if err != nil {
		return nil, err
	}
	m, err := lvl.Map()
	if err != nil {
		return nil, fmt.Errorf("building level %s: %w", path, err)
	}
	return m, nil
}

// reloadLevel rebinds navCtx to the file's new content. A file that fails
// to parse keeps the current level.
func reloadLevel(navCtx *nav.Context, path string) {
	m, err := loadLevelFile(path)
	if err != nil {
		slog.Warn("level reload failed", "path", path, "error", err)
		return
	}
	if navCtx.Rebind(m) {
		slog.Info("level reloaded", "path", path, "generation", navCtx.Generation())
		return
	}
	slog.Debug("level unchanged", "path", path)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
