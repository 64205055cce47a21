package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":    zapcore.DebugLevel,
		" WARN ":   zapcore.WarnLevel,
		"warning":  zapcore.WarnLevel,
		"error":    zapcore.ErrorLevel,
		"":         zapcore.InfoLevel,
		"verbose":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestHashValue(t *testing.T) {
	assert.Equal(t, "", HashValue(""))

	a := HashValue("session-abc")
	assert.Len(t, a, 12)
	assert.Equal(t, a, HashValue("session-abc"))
	assert.NotEqual(t, a, HashValue("session-abd"))
	assert.NotContains(t, a, "session")
}

func TestNewTagsServiceAndEnv(t *testing.T) {
	log := New(Options{Service: "storefront", Env: "test", Level: "error"})

	assert.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
