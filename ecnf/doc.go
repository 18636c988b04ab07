// Package ecnf parses Environment-CoNF (ECNF) documents into a flat mapping
// of dotted key paths to optional string values.
//
// # Format
//
// An ECNF document is a sequence of lines. Each line is blank, a comment,
// a section close, or a key line:
//
//	# app version
//	VERSION: "4.2.23"
//
//	DB: {
//	  DRIVER: "SQLite"
//	  PASSWORD:
//	  LOG_FILE: {
//	    PATH: "database.log"
//	  }
//	}
//
// Keys are uppercase ASCII letters and underscores and must begin with a
// letter. A key is followed by ':' and then one of:
//
//   - nothing: the key is present but has no value
//   - a double-quoted string: the text between the first and last quote,
//     verbatim (there are no escape sequences)
//   - '{': opens a section named by the key, closed by a line holding only '}'
//
// The document above parses to:
//
//	VERSION          "4.2.23"
//	DB.DRIVER        "SQLite"
//	DB.PASSWORD      <none>
//	DB.LOG_FILE.PATH "database.log"
//
// Sections contribute a path segment to every key inside them; they never
// appear in the result themselves. When the same full path is written twice,
// the last write wins.
//
// # Parsing
//
// [Parse], [ParseString], and [ParseFile] consume an entire document and
// return a [Map] or the first error encountered. Errors are [*ParseError]
// values carrying the 1-based line number; use [errors.Is] with the
// sentinels ([ErrInvalidKey], [ErrUnknownSeparator], [ErrUnknownValue],
// [ErrIllegalSectionClose], [ErrUnterminatedSection], [ErrReadFailure]) to
// classify them.
//
// # Output
//
// A [Map] can be written back as canonical ECNF ([Map.Format]), or as JSON,
// YAML, TOML, or shell environment assignments, and decoded into a struct
// with [Unmarshal].
package ecnf
