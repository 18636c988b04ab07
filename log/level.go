package log

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Level is the severity of a log message.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a logger created without [WithLevel].
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns an iterator over the names of the defined levels, from
// most to least verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range levels {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// String returns the lower-case level name. Levels between the defined ones
// are written with an offset, as in "info+2".
func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}

	return strings.ToLower(slog.Level(l).String())
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Level) UnmarshalText(text []byte) error {
	s := string(text)
	if strings.EqualFold(s, "trace") {
		*l = LevelTrace

		return nil
	}

	var sl slog.Level

	err := sl.UnmarshalText(text)
	if err != nil {
		return err
	}

	*l = Level(sl)

	return nil
}

// ParseLevel returns the level named by s, accepting any case and an
// optional offset ("warn-1"). It returns [DefaultLevel] if s is not a level.
func ParseLevel(s string) Level {
	var l Level

	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))
	if err != nil {
		return DefaultLevel
	}

	return l
}

// Format selects the encoding of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format of a logger created without [WithFormat].
const DefaultFormat = FormatText

var formatName = map[Format]string{
	FormatText: "text",
	FormatJSON: "json",
}

// Formats returns an iterator over the names of the defined formats.
func Formats() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Values(formatName)))
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatName[f]; ok {
		return name
	}

	return "format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat returns the format named by s, ignoring case and surrounding
// space. It returns [DefaultFormat] if s is not a format.
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))

	for f, name := range formatName {
		if name == s {
			return f
		}
	}

	return DefaultFormat
}
