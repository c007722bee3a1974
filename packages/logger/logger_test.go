package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       zerolog.Level
	}{
		{"no candidates", nil, DefaultLevel},
		{"empty strings", []string{"", ""}, DefaultLevel},
		{"first valid wins", []string{"info", "error"}, zerolog.InfoLevel},
		{"skips invalid", []string{"loud", "ERROR"}, zerolog.ErrorLevel},
		{"all invalid", []string{"loud"}, DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.candidates...))
		})
	}
}

func TestNew_DefaultLevelHidesDebug(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	log := New(Options{Out: &buf, NoColor: true})

	log.Debug().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	log := New(Options{Out: &buf, NoColor: true, Verbose: true})

	log.Debug().Str("url", "http://example.com").Msg("sending request")

	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "sending request")
	assert.Contains(t, buf.String(), "http://example.com")
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	log := New(Options{Out: &buf, NoColor: true})

	log.Warn().Msg("suppressed")
	assert.Empty(t, buf.String())
}

func TestLevelTag(t *testing.T) {
	assert.Equal(t, "WRN", levelTag("warn"))
	assert.Equal(t, "DBG", levelTag("debug"))
	assert.Equal(t, "CUS", levelTag("custom"))
	assert.Equal(t, "X", levelTag("x"))
}
