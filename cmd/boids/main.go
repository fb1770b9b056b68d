package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/viewer"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML config file, defaults are used when empty")
	schemaFile := flag.String("schema", "", "JSON schema file, the embedded one is used when empty")
	strategy := flag.String("index", "", "override indexStrategy: quadtree, grid or linear")
	flag.Parse()

	logger := log.DefaultLogger
	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			logger.Fatalf("💥 %v", err)
		}
	}
	if *strategy != "" {
		cfg.IndexStrategy = *strategy
	}

	sim, err := simulation.New(cfg, logger)
	if err != nil {
		logger.Fatalf("💥 cannot start the simulation: %v", err)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("BoidsWorld", actor.WithLogger(logger))
	if err != nil {
		logger.Fatalf("💥 cannot create the actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("💥 cannot start the actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := viewer.NewGame(ctx, sim, system)
	if err != nil {
		logger.Fatalf("💥 %v", err)
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Boids: %d agents, %s index", sim.Len(), cfg.IndexStrategy))
	ebiten.SetTPS(cfg.TickRate)
	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("💥 %v", err)
	}
}
