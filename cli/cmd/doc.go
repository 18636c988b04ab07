// Package cmd implements the ecnf subcommands.
//
// Each command is a kong command struct whose Run method receives the
// context built by package cli. Commands read one source document, a file
// path or "-" for standard input, and write to the output stored in the
// context by [WithOutput] (standard output by default).
package cmd

var (
	// ConfigIdentifier is the kong variable holding the path of the ECNF
	// configuration file.
	ConfigIdentifier = "config"

	// CacheIdentifier is the kong variable holding the path of the cache
	// directory.
	CacheIdentifier = "cache"
)
