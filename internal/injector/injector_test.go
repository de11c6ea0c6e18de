package injector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/server"
)

const testScene = `
name: drop
bodies:
  - name: floor
    static: true
    position: {x: 0, y: 20}
    shape: {type: rectangle, width: 40, height: 2}
  - name: ball
    position: {x: 0, y: 0}
    shape: {type: circle, radius: 1}
`

func TestInitializeApp(t *testing.T) {
	sc, err := scene.LoadYAML(strings.NewReader(testScene))
	require.NoError(t, err)

	app, err := InitializeApp(log.LevelError, sc, server.DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, app.World)
	assert.Len(t, app.World.System.Bodies(), 2)

	_, err = app.World.System.Step(1.0 / 60)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), app.Server.Stats().Frames)
	assert.Equal(t, uint64(1), app.Events.Metrics().DeliveredHandlers)
}

func TestInitializeApp_InvalidServerConfig(t *testing.T) {
	sc, err := scene.LoadYAML(strings.NewReader(testScene))
	require.NoError(t, err)

	cfg := server.DefaultConfig()
	cfg.ListenAddr = ""
	_, err = InitializeApp(log.LevelError, sc, cfg)
	assert.ErrorIs(t, err, server.ErrInvalidConfig)
}
