package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestWithRunAndComponent(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	log := NewWithOutput(&buf).WithRun().WithComponent("normalizer")
	log.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"run_id":`)
	assert.Contains(t, out, `"component":"normalizer"`)
	assert.Contains(t, out, `"msg":"hello"`)
}

func TestWithError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	var buf bytes.Buffer
	log := NewWithOutput(&buf)
	log.WithError(errors.New("boom")).Warn("failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)

	buf.Reset()
	log.WithError(nil).Warn("no error")
	assert.NotContains(t, buf.String(), `"error"`)
}
