package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: path, Format: "json"})
	require.NoError(t, err)
	logger.Info("hello", zap.String("who", "world"))
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
	assert.Contains(t, string(content), `"who":"world"`)
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "chatty", OutputPath: "stderr", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestKVLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	kv := NewKVLogger(zap.New(core))

	kv.Info("Bill submitted", "bill_id", "b1", "amount", 500, 42, "dropped", "dangling")
	kv.Error("Failed", "error", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "b1", fields["bill_id"])
	assert.EqualValues(t, 500, fields["amount"])
	assert.Len(t, fields, 2)

	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@a", "employee@test.tld", "first.last+tag@corp.example.com"} {
		assert.NoError(t, ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"", "a", "@a", "a@", "a b@c", "a@b@c"} {
		assert.Error(t, ValidateEmail(bad), bad)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Vol test", SanitizeString("  Vol\x00 test\n"))
}
