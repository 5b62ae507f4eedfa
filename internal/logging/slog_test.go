package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")

	buf.Reset()
	logger = NewWithWriter(&buf, true)
	logger.Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")
}

func TestErrWithNil(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError+"=")
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	masked := SanitizeToken("ya29.very-secret-token")
	assert.False(t, strings.Contains(masked, "secret"))
	assert.Contains(t, masked, "22 chars")
}
