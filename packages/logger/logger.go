package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	colorRed    = 31
	colorGreen  = 32
	colorYellow = 33
	colorBlue   = 34
	colorBold   = 1
)

// DefaultLevel keeps stderr quiet unless something needs the user's attention
const DefaultLevel = zerolog.WarnLevel

// Options controls how the diagnostics logger is built
type Options struct {
	Out     io.Writer
	Verbose bool
	NoColor bool
	// Level overrides LOG_LEVEL when non-empty
	Level string
}

// New builds a console logger. Diagnostics always go to stderr by default so they never
// mix with response bytes on stdout.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(opts.Level, os.Getenv("LOG_LEVEL"))
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	noColor := opts.NoColor
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			ll, ok := i.(string)
			if !ok {
				return strings.ToUpper(fmt.Sprintf("%v", i))
			}
			tag := levelTag(ll)
			if noColor {
				return tag
			}
			switch ll {
			case "debug", "trace":
				return colorize(tag, colorBlue)
			case "info":
				return colorize(tag, colorGreen)
			case "warn":
				return colorize(tag, colorYellow)
			case "error", "fatal", "panic":
				return colorize(tag, colorRed)
			default:
				return colorize(tag, colorBold)
			}
		},
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// ParseLevel returns the first parseable level among candidates, or DefaultLevel.
func ParseLevel(candidates ...string) zerolog.Level {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if lvl, err := zerolog.ParseLevel(strings.ToLower(c)); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	return DefaultLevel
}

func levelTag(l string) string {
	switch l {
	case "trace":
		return "TRC"
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	case "fatal":
		return "FTL"
	case "panic":
		return "PNC"
	}
	if len(l) >= 3 {
		return strings.ToUpper(l[:3])
	}
	return strings.ToUpper(l)
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
