package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outputChan := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputChan <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout
	return <-outputChan
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestLogLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	output := captureOutput(func() {
		logger := NewLogger()
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")
	})

	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestNewLoggerWithLevel(t *testing.T) {
	output := captureOutput(func() {
		logger := NewLoggerWithLevel("warn")
		logger.Debug("filtered out")
		logger.Warn("kept")
	})

	assert.NotContains(t, output, "filtered out")
	assert.Contains(t, output, "kept")
}

func TestNewLoggerWithLevel_UnknownLevel(t *testing.T) {
	output := captureOutput(func() {
		logger := NewLoggerWithLevel("bogus")
		logger.Debug("below info")
		logger.Info("at info")
	})

	assert.NotContains(t, output, "below info")
	assert.Contains(t, output, "at info")
}

func TestWithField(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	output := captureOutput(func() {
		logger := NewLogger().WithField("workspace_id", "ws1")
		logger.Info("scoped message")
	})

	assert.Contains(t, output, "workspace_id")
	assert.Contains(t, output, "ws1")
	assert.Contains(t, output, "scoped message")
}

func TestWithFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	output := captureOutput(func() {
		logger := NewLogger().WithFields(map[string]interface{}{
			"workspace_id": "ws1",
			"task_id":      "t1",
		})
		logger.Info("scoped message")
	})

	assert.Contains(t, output, "workspace_id")
	assert.Contains(t, output, "task_id")
}

func TestWithField_DoesNotMutateParent(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	output := captureOutput(func() {
		parent := NewLogger()
		_ = parent.WithField("child_only", "value")
		parent.Info("parent message")
	})

	assert.NotContains(t, output, "child_only")
}
