//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/server"
)

func InitializeApp(level log.Level, sc *scene.Scene, cfg server.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
