package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"blogfront/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONBeforeLevelIsKnown(t *testing.T) {
	t.Setenv("DEBUG", "")
	logger.Init("")
	t.Cleanup(logger.Silence)

	var buf bytes.Buffer
	logger.Log.SetOutput(&buf)
	require.Equal(t, logrus.InfoLevel, logger.Log.GetLevel())

	logger.Log.Error("Config load error")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "Config load error", line["message"])
	require.Equal(t, "error", line["level"])
	require.Contains(t, line, "timestamp")
}

func TestSetLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	t.Cleanup(func() { logger.SetLevel("info") })

	logger.SetLevel("warn")
	require.Equal(t, logrus.WarnLevel, logger.Log.GetLevel())

	logger.SetLevel(" debug ")
	require.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())

	logger.SetLevel("loud")
	require.Equal(t, logrus.InfoLevel, logger.Log.GetLevel())

	t.Setenv("DEBUG", "true")
	logger.SetLevel("error")
	require.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())
}
