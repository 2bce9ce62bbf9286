package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIDs(t *testing.T) {
	id := NewLocalID()
	assert.True(t, IsLocalID(id))
	assert.NotEqual(t, id, NewLocalID())
	assert.False(t, IsLocalID("m42"))
	assert.False(t, IsLocalID(""))
}

func TestLoggerGatesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %s", "once")
	logger.Warnf("shown twice")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO: shown once")
	assert.Contains(t, out, "WARN: shown twice")
}

func TestLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", &buf)
	logger.Debugf("visible")
	assert.Contains(t, buf.String(), "DEBUG: visible")
}
