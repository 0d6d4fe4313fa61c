package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelValid(t *testing.T) {
	for _, l := range []LogLevel{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		assert.True(t, l.Valid(), l)
	}
	assert.False(t, LogLevel("verbose").Valid())
	assert.False(t, LogLevel("").Valid())
}
