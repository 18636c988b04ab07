package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
)

// loadConfig is a [kong.ConfigurationLoader] for ECNF configuration files.
//
// Each flag is looked up by its name in upper case, where every hyphen may be
// either a section separator or an underscore. The flag --log-level is set by
// any of these documents:
//
//	LOG: {
//	  LEVEL: "debug"
//	}
//
//	LOG.LEVEL: "debug"
//
//	LOG_LEVEL: "debug"
//
// An absent value (LEVEL:) leaves the flag at its default. A document that
// fails to parse is ignored with a warning, so that "ecnf init --force" can
// still replace it.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	m, err := ecnf.Parse(context.Background(), r)
	if err != nil {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return resolver{}, nil
	}

	return resolver(m), nil
}

// resolver implements [kong.Resolver] over a parsed configuration file.
type resolver ecnf.Map

// Validate implements [kong.Resolver].
func (resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range configKeys(flag.Name) {
		val, ok := ecnf.Map(r).Lookup(key)
		if !ok {
			continue
		}

		if s, set := val.Get(); set {
			return s, nil
		}

		return nil, nil
	}

	return nil, nil
}

// configKeys returns the keys that may hold the value of flag name. The form
// using only section separators is first and the form using only
// underscores is last.
func configKeys(name string) []string {
	parts := strings.Split(strings.ToUpper(name), "-")
	keys := []string{parts[0]}

	for _, part := range parts[1:] {
		next := make([]string, 0, 2*len(keys))

		for _, sep := range []string{ecnf.PathSeparator, "_"} {
			for _, key := range keys {
				next = append(next, key+sep+part)
			}
		}

		keys = next
	}

	return keys
}
