package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecnf/log"
)

// logLevel configures the default logger as soon as kong decodes it, so the
// level also applies to messages logged while parsing the command line.
type logLevel string

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

// logFormat configures the default logger as soon as kong decodes it.
type logFormat string

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout, or 'none'."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the final flag values to the default logger.
func (c *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(c.Level))),
		log.WithFormat(log.ParseFormat(string(c.Format))),
		log.WithTimeLayout(c.TimeLayout),
		log.WithCaller(c.Caller),
		log.WithPretty(c.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(c.Level)),
		slog.String("format", string(c.Format)),
		slog.String("time", c.TimeLayout),
		slog.Bool("caller", c.Caller),
		slog.Bool("pretty", c.Pretty),
	)
}

// scan applies the logging flags found in args before kong parses them.
// Boolean flags do not pass through a TextUnmarshaler, so this is the only
// way they take effect early. Arguments after "--" are not flags.
func (c *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		arg, value, assigned := strings.Cut(args[i], "=")

		var name string

		negated := false

		switch {
		case strings.HasPrefix(arg, "--no-log-"):
			name, negated = strings.TrimPrefix(arg, "--no-log-"), true
		case strings.HasPrefix(arg, "--log-"):
			name = strings.TrimPrefix(arg, "--log-")
		default:
			continue
		}

		// next returns the value of a flag that takes one, consuming the
		// following argument if the value was not assigned with '='.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		// enabled returns the value of a boolean flag.
		enabled := func() (bool, bool) {
			if !assigned {
				return !negated, true
			}

			v, err := strconv.ParseBool(value)
			if err != nil {
				return false, false
			}

			return v != negated, true
		}

		switch {
		case name == "level" && !negated:
			_ = c.Level.UnmarshalText([]byte(next()))

		case name == "format" && !negated:
			_ = c.Format.UnmarshalText([]byte(next()))

		case name == "time-layout" && !negated:
			c.TimeLayout = next()
			log.Config(log.WithTimeLayout(c.TimeLayout))

		case name == "caller":
			if v, ok := enabled(); ok {
				c.Caller = v
				log.Config(log.WithCaller(v))
			}

		case name == "pretty":
			if v, ok := enabled(); ok {
				c.Pretty = v
				log.Config(log.WithPretty(v))
			}
		}
	}
}
