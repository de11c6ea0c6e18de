package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
	"github.com/zeusync/physics2d/internal/server"
)

// ProviderSet builds a streamed world from a scene.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	bus.New,
	ProvideWorld,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

// App is the wired daemon graph.
type App struct {
	Logger log.Log
	Events bus.EventBus
	World  *scene.World
	Server *server.Server
}

func ProvideLogger(level log.Level) log.Log {
	return log.New(level)
}

// ProvideWorld builds sc into a system that logs to logger and publishes on
// events. It is also used to rebuild the world when the scene file changes.
func ProvideWorld(sc *scene.Scene, logger log.Log, events bus.EventBus) (*scene.World, error) {
	return scene.Build(sc, physics.WithLogger(logger), physics.WithEventBus(events))
}

// ProvideServer creates the snapshot server streaming world.
func ProvideServer(cfg server.Config, logger log.Log, events bus.EventBus, world *scene.World) (*server.Server, error) {
	srv, err := server.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	srv.SetSource(world.System)
	if err = srv.Attach(events); err != nil {
		return nil, err
	}
	return srv, nil
}
