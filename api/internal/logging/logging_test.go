package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	setup(&buf, "debug", true)

	log.WithField("dish", "bibimbap").Debug("generated")

	out := buf.String()
	assert.Contains(t, out, `"dish":"bibimbap"`)
	assert.Contains(t, out, `"message":"generated"`)
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	setup(&buf, "chatty", false)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}
