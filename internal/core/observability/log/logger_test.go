package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"fatal":   LevelFatal,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_SetLevelSharedWithChildren(t *testing.T) {
	l := &Logger{zapLogger: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.InfoLevel)}
	child := l.With(String("component", "test"))

	assert.Equal(t, LevelInfo, child.GetLevel())
	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, l.GetLevel())
	assert.Equal(t, LevelError, child.GetLevel())
}

func TestToZapFields(t *testing.T) {
	fields := toZapFields(
		String("s", "v"),
		Int("i", 1),
		Float64("f", 0.5),
		Uint64("u", 2),
		Error(errors.New("boom")),
		ErrorWithKey("nil", nil),
		Any("a", []int{1}),
	)
	require.Len(t, fields, 7)
	assert.Equal(t, "s", fields[0].Key)
	assert.Equal(t, "error", fields[4].Key)
	assert.Equal(t, zap.Skip(), fields[5])
}

func TestNopAndProvide(t *testing.T) {
	n := Nop()
	n.Info("discarded", Int("n", 1))
	assert.NotNil(t, Provide())
	assert.Equal(t, "warn", LevelWarn.String())
}
