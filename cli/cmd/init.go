package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
	"github.com/ardnew/ecnf/profile"
)

const (
	defaultConfigIndent = 2
	defaultConfigMode   = 0o600
)

// Init writes the current global flag values to the configuration file,
// which supplies the flag defaults of later runs.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file."     short:"f"`
	Print bool `help:"Write to the command output instead of a file."`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoContext
	}

	conf := flagConfig(ktx)

	if i.Print {
		return conf.Format(ctx, outputFrom(ctx), defaultConfigIndent)
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || path == "" {
		return ErrNoContext.With(slog.String("var", ConfigIdentifier))
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !i.Force {
		mode |= os.O_EXCL
	}

	file, err := os.OpenFile(path, mode, defaultConfigMode)
	if errors.Is(err, fs.ErrExist) {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(ErrFileExists)
	}

	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	err = conf.Format(ctx, file, defaultConfigIndent)
	if cerr := file.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", path),
		slog.Int("entries", len(conf)),
	)

	return nil
}

// FlagKey returns the configuration key of a flag: log-level is LOG.LEVEL.
func FlagKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", ecnf.PathSeparator))
}

// flagConfig collects the values of the application flags. Empty strings
// become absent values; help and profiling flags are skipped.
func flagConfig(ktx *kong.Context) ecnf.Map {
	conf := make(ecnf.Map)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || flag.Name == "help" ||
			strings.HasPrefix(flag.Name, profile.Tag) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v == "" {
				conf[FlagKey(flag.Name)] = ecnf.None()
			} else {
				conf[FlagKey(flag.Name)] = ecnf.Some(v)
			}

		default:
			conf[FlagKey(flag.Name)] = ecnf.Some(fmt.Sprint(v))
		}
	}

	return conf
}
