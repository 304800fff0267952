package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "rewards.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}

	require.NoError(t, InitLogger(cfg))
	assert.NotNil(t, Log)

	Named("chain").Info("Test log message")
	Sync()

	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(&Config{Level: "LOUD"})
	assert.Error(t, err)
}

func TestLogUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Named("boot").Debug("no setup needed")
	})
}
