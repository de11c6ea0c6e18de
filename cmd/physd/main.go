package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "daemon config file (yaml)")
	scenePath := flag.String("scene", "", "scene file, overrides the config")
	listen := flag.String("listen", "", "listen address, overrides the config")
	level := flag.String("log-level", "", "debug, info, warn or error; overrides the config")
	tick := flag.Int("tick", 0, "steps per second, overrides the config")
	noReload := flag.Bool("no-reload", false, "disable scene hot reload")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "physd:", err)
		os.Exit(1)
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}
	if *listen != "" {
		cfg.Server.ListenAddr = *listen
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if *tick > 0 {
		cfg.TickRate = *tick
	}
	if *noReload {
		cfg.HotReload = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "physd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	sc, err := scene.LoadFile(cfg.Scene)
	if err != nil {
		return err
	}

	app, err := injector.InitializeApp(level, sc, cfg.Server)
	if err != nil {
		return err
	}
	logger := app.Logger.With(log.String("component", "physd"))
	defer func() { _ = app.Logger.Sync() }()

	if err = app.Server.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Server.Close() }()

	var (
		scenes <-chan *scene.Scene
		errs   <-chan error
	)
	if cfg.HotReload {
		w, err := scene.NewWatcher(cfg.Scene, app.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		scenes, errs = w.Scenes, w.Errors
	}

	world := app.World
	dT := 1 / float64(cfg.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	logger.Info("Simulation started",
		log.String("scene", sc.Name),
		log.Int("tick_rate", cfg.TickRate),
		log.Int("bodies", len(world.Names)))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Simulation stopped", log.Uint64("steps", world.System.Steps()))
			return nil

		case <-ticker.C:
			if _, err := world.System.Step(dT); err != nil {
				logger.Error("Step failed", log.Error(err))
			}

		case next := <-scenes:
			rebuilt, err := injector.ProvideWorld(next, app.Logger, app.Events)
			if err != nil {
				logger.Warn("Scene rebuild failed, keeping the current world", log.Error(err))
				continue
			}
			world = rebuilt
			app.Server.SetSource(world.System)
			logger.Info("Scene reloaded",
				log.String("scene", next.Name),
				log.Int("bodies", len(world.Names)))

		case err := <-errs:
			logger.Warn("Scene reload failed, keeping the current world", log.Error(err))
		}
	}
}
