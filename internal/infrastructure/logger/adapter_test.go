package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "my-session_1", sanitize("my-session_1"))
	assert.Equal(t, "a_b_c", sanitize("a b/c"))
	assert.Equal(t, "session", sanitize(""))
	assert.Len(t, sanitize(string(make([]byte, 200))), 50)
}

func TestNopLoggerIsSafe(t *testing.T) {
	l := NewNop()
	l.Debug("m", "k", 1)
	l.Info("m")
	l.Warn("m", "k", "v")
	l.Error("m")

	child := l.WithField("component", "test").WithFields(map[string]any{"a": 1})
	child.Info("nested")

	assert.NoError(t, l.Close())
}
