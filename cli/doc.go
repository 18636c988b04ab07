// Package cli builds the ecnf command line with kong.
//
// # Usage
//
//	ecnf [flags] <command> [source]
//
// The source is a file path or "-" for standard input, which is the default.
// Without a command, the entries of the source are listed:
//
//	$ ecnf app.ecnf
//	DB.NAME : "app"
//	DB.PASS : <none>
//
// # Configuration
//
// Flag defaults are read from config.ecnf in the user configuration
// directory (for example ~/.config/ecnf/config.ecnf), and from config.json
// beside it. Run "ecnf init" to write the file from the current flags:
//
//	LOG: {
//	  CALLER: "false"
//	  FORMAT: "text"
//	  LEVEL: "info"
//	  PRETTY: "true"
//	  TIME: {
//	    LAYOUT: "RFC3339"
//	  }
//	}
//
// Flags given on the command line take precedence.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, or error
//   - --log-format: text or json
//   - --log-time-layout: a layout name such as RFC3339 or Kitchen, or none
//   - --[no-]log-caller: include the source position of each message
//   - --[no-]log-pretty: colorize text or indent JSON
//
// # Profiling Options
//
// Available only when built with the pprof tag:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread, or trace
//   - --pprof-dir: output directory, by default in the user cache directory
package cli
