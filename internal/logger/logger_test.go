package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithGoal("autostart-registered").Info("strategy applied")

	out := buf.String()
	require.Contains(t, out, `"goal":"autostart-registered"`)
	require.Contains(t, out, "strategy applied")
}

func TestLoggerErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	log.Error(errors.New("schtasks exited 1"), "registration failed")

	out := buf.String()
	require.Contains(t, out, "schtasks exited 1")
	require.Contains(t, out, "registration failed")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	require.NotPanics(t, func() {
		log.Info("ignored")
		log.Warn("ignored")
		log.Error(nil, "ignored")
		log.WithGoal("x").Debug("ignored")
	})
}
