package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string
	Pretty bool
	Out    io.Writer
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
}

// Diagnostics reports simulation defects as warnings.
type Diagnostics struct {
	log zerolog.Logger
}

func NewDiagnostics(log zerolog.Logger) Diagnostics {
	return Diagnostics{log: log.With().Str("component", "diagnostics").Logger()}
}

func (d Diagnostics) Defect(op, detail string) {
	d.log.Warn().Str("op", op).Msg(detail)
}
