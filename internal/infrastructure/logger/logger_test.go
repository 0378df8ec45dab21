package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taskmaster/taskflow/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "debug", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestLogServiceCall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).WithComponent("tasks")

	log.LogServiceCall("task", "create", 5*time.Millisecond, nil)
	log.LogServiceCall("task", "get", time.Millisecond, errors.New("task not found: 9"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "tasks", entries[0].ContextMap()["component"])
	assert.Equal(t, "create", entries[0].ContextMap()["operation"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "task not found: 9", entries[1].ContextMap()["error"])
}
