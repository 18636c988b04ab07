// Package log wraps [log/slog] with the logger configuration shared by the
// ecnf command and library.
//
// A [Logger] is created with [Make] and functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Attributes are typed [slog.Attr] values:
//
//	logger.Info("parsed", slog.String("file", path), slog.Int("entries", n))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used by the parser to report
// each section it opens and closes.
//
// # Formats
//
// [FormatText] and [FormatJSON] follow [slog.TextHandler] and
// [slog.JSONHandler]. With [WithPretty], text records are colorized when the
// output is a terminal and JSON records are indented.
//
// # Default Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger on standard error, which [Config] reconfigures.
package log
