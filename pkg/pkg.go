//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, embedded from pkg/VERSION.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name and the base name of its configuration and
	// cache directories.
	Name = "ecnf"
	// Description summarizes the command in help output.
	Description = "Parse, query, and convert ECNF configuration files"
)

// AuthorInfo identifies a project author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the project authors.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
