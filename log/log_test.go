package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	turncontext "github.com/armankhl/smart-info-desk-agent/context"
)

func TestFormatterIncludesTurnID(t *testing.T) {
	var buf bytes.Buffer
	Init("debug")
	SetOutput(&buf)
	defer Init("warn")

	ctx := turncontext.WithTurnID(context.Background(), "abc-123")
	Infof(ctx, "selected tool %s", "get_weather")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "selected tool get_weather")
	assert.Contains(t, out, "[turn:abc-123]")
	assert.Contains(t, out, "log_test.go:")
}

func TestFormatterWithoutTurnID(t *testing.T) {
	var buf bytes.Buffer
	Init("info")
	SetOutput(&buf)
	defer Init("warn")

	Warn(context.Background(), "no turn")
	assert.Contains(t, buf.String(), "[WARNING] ")
	assert.NotContains(t, buf.String(), "[turn:")
}

func TestInitLevel(t *testing.T) {
	Init("error")
	assert.Equal(t, logrus.ErrorLevel, Logger.GetLevel())

	Init("not-a-level")
	assert.Equal(t, logrus.WarnLevel, Logger.GetLevel())
}
