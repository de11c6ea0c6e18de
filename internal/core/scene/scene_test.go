package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
)

const dropYAML = `
name: drop
physics:
  iterations: 2
  layer_map:
    1: 3
bodies:
  - name: floor
    static: true
    position: {x: 0, y: 20}
    shape: {type: rectangle, width: 40, height: 2}
  - name: ball
    position: {x: 0, y: 10}
    restitution: 0.5
    friction: {static: 0.9, dynamic: 0.8}
    shape: {type: circle, radius: 1, density: 2}
  - name: tri
    position: {x: 5, y: 5}
    rotation: 0.5
    scale: 2
    shape:
      type: polygon
      layer: 2
      vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 0, y: 1}]
sensors:
  - name: zone
    position: {x: 0, y: 18}
    shape: {type: regular, radius: 3, sides: 6}
`

func TestLoadYAMLAndBuild(t *testing.T) {
	s, err := LoadYAML(strings.NewReader(dropYAML))
	require.NoError(t, err)

	assert.Equal(t, "drop", s.Name)
	assert.Equal(t, 2, s.Physics.Iterations)
	assert.Equal(t, 10.0, s.Physics.PPM, "unset values keep defaults")
	assert.Equal(t, collision.LayerMap{1: 3}, s.Physics.LayerMap)
	require.Len(t, s.Bodies, 3)
	assert.Equal(t, geometry.Vec(0, 20), s.Bodies[0].Position)

	w, err := Build(s, physics.WithLogger(log.Nop()))
	require.NoError(t, err)
	assert.Len(t, w.Names, 4)

	ball, ok := w.System.Body(w.Names["ball"])
	require.True(t, ok)
	assert.Equal(t, 0.5, ball.Restitution())
	assert.Equal(t, body.Friction{Static: 0.9, Dynamic: 0.8}, ball.Friction())
	assert.InDelta(t, 2*3.141592653589793, ball.Mass(), 1e-12)

	floor, _ := w.System.Body(w.Names["floor"])
	assert.True(t, floor.IsStatic())

	tri, _ := w.System.Body(w.Names["tri"])
	assert.Equal(t, uint32(2), tri.Shape().Layer())
	assert.Equal(t, 2.0, tri.Transform().Scale)

	_, err = w.System.Step(1.0 / 60)
	require.NoError(t, err)
	assert.Greater(t, ball.Position().Y, 10.0)
}

func TestLoadJSON(t *testing.T) {
	const doc = `{
		"name": "json",
		"physics": {"ppm": 32},
		"bodies": [
			{"name": "a", "position": {"x": 1, "y": 2}, "shape": {"type": "circle", "radius": 0.5}}
		]
	}`
	s, err := LoadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 32.0, s.Physics.PPM)
	assert.Equal(t, 4, s.Physics.Iterations)
	require.Len(t, s.Bodies, 1)
	assert.Equal(t, geometry.Vec(1, 2), s.Bodies[0].Position)

	_, err = LoadJSON(strings.NewReader(`{"bodies": [], "extra": 1}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("bodies:\n  - shape: {type: capsule}\n"))
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = LoadYAML(strings.NewReader(`
bodies:
  - {name: a, shape: {type: circle, radius: 1}}
sensors:
  - {name: a, shape: {type: circle, radius: 1}}
`))
	assert.ErrorIs(t, err, ErrInvalidScene)

	_, err = LoadYAML(strings.NewReader("physics: {iterations: -1}\n"))
	assert.ErrorIs(t, err, ErrInvalidScene)
	assert.ErrorIs(t, err, physics.ErrInvalidIterations)

	s, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultConfig(), s.Physics)
}

func TestBuild_ShapeErrors(t *testing.T) {
	s, err := LoadYAML(strings.NewReader("bodies:\n  - {name: bad, shape: {type: circle, radius: 0}}\n"))
	require.NoError(t, err)
	_, err = Build(s, physics.WithLogger(log.Nop()))
	assert.ErrorIs(t, err, collision.ErrInvalidRadius)

	s, err = LoadYAML(strings.NewReader("sensors:\n  - {shape: {type: polygon, vertices: [{x: 0, y: 0}, {x: 1, y: 1}]}}\n"))
	require.NoError(t, err)
	_, err = Build(s, physics.WithLogger(log.Nop()))
	assert.ErrorIs(t, err, collision.ErrTooFewVertices)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(dropYAML), 0o644))
	s, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "drop", s.Name)

	jsonPath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "j"}`), 0o644))
	s, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "j", s.Name)

	_, err = LoadFile(filepath.Join(dir, "scene.toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: first\n"), 0o644))

	w, err := NewWatcher(path, log.Nop())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("name: other\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("name: second\n"), 0o644))

	select {
	case s := <-w.Scenes:
		assert.Equal(t, "second", s.Name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("scene was not reloaded")
	}

	require.NoError(t, os.WriteFile(path, []byte("bodies:\n  - shape: {type: blob}\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, ErrUnknownShape)
	case s := <-w.Scenes:
		t.Fatalf("unexpected scene %q", s.Name)
	case <-time.After(3 * time.Second):
		t.Fatal("reload error was not reported")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
