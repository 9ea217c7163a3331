package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel(" debug ")
	assert.True(t, ok)
	assert.Equal(t, LevelDebug, l)

	l, ok = ParseLevel("warn")
	assert.False(t, ok)
	assert.Equal(t, LevelInfo, l)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel(LevelInfo) })

	SetLevel(LevelError)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())

	SetLevel(LevelDebug)
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	SetLevel(Level("bogus"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}
