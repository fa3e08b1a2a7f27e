package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsUnknownLevelAndFormat(t *testing.T) {
	_, err := Init("loud", "json")
	require.Error(t, err)

	_, err = Init("info", "xml")
	require.Error(t, err)
}

func TestInitInstallsGlobal(t *testing.T) {
	l, err := Init("debug", "console")
	require.NoError(t, err)
	require.Same(t, l, L())

	nop := zap.NewNop()
	Set(nop)
	require.Same(t, nop, L())
	Sync()
}

func TestLPanicsWhenUnset(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	global = nil
	require.Panics(t, func() { L() })
}

func TestNamedScopesComponent(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))

	Named(Store).Info("store ready")
	Named(HTTP).Warn("slow request")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "http", entries[1].LoggerName)
	assert.Equal(t, "slow request", entries[1].Message)
}
