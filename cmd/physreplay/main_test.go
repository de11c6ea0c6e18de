package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/scene"
)

const pileYAML = `
name: pile
bodies:
  - name: floor
    static: true
    position: {x: 0, y: 30}
    shape: {type: rectangle, width: 60, height: 2}
  - name: a
    position: {x: 0, y: 20}
    shape: {type: rectangle, width: 4, height: 4}
  - name: b
    position: {x: 1, y: 14}
    rotation: 0.3
    shape: {type: regular, radius: 2, sides: 5}
  - name: c
    position: {x: -1, y: 8}
    shape: {type: circle, radius: 1.5}
`

func TestReplay_Deterministic(t *testing.T) {
	sc, err := scene.LoadYAML(strings.NewReader(pileYAML))
	require.NoError(t, err)

	digests, err := replay(context.Background(), sc, 4, 240, 1.0/60, 2)
	require.NoError(t, err)
	require.Len(t, digests, 4)
	assert.NoError(t, compare(digests))

	one, err := replay(context.Background(), sc, 1, 1, 1.0/60, 1)
	require.NoError(t, err)
	two, err := replay(context.Background(), sc, 1, 2, 1.0/60, 1)
	require.NoError(t, err)
	assert.NotEqual(t, one[0], two[0])
}

func TestReplay_Cancelled(t *testing.T) {
	sc, err := scene.LoadYAML(strings.NewReader(pileYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = replay(ctx, sc, 2, 10, 1.0/60, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	assert.NoError(t, compare([]uint64{7}))
	assert.ErrorIs(t, compare([]uint64{7, 7, 8}), errDiverged)
}
