package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecnf/cli/cmd"
	"github.com/ardnew/ecnf/pkg"
)

// CLI is the command line of ecnf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	List    cmd.List    `cmd:"" default:"withargs" help:"List entries as KEY : value (default)."`
	Get     cmd.Get     `cmd:""                    help:"Print the value of a key."`
	Check   cmd.Check   `cmd:""                    help:"Validate a document."`
	Fmt     cmd.Fmt     `cmd:""                    help:"Format or convert a document."`
	Eval    cmd.Eval    `cmd:""                    help:"Evaluate an expression over a document."`
	Watch   cmd.Watch   `cmd:""                    help:"Print a document each time it changes."`
	Browse  cmd.Browse  `cmd:""                    help:"Search keys interactively."`
	Init    cmd.Init    `cmd:""                    help:"Write the configuration file from the current flags."`
	Version cmd.Version `cmd:""                    help:"Print the version."`
}

// Run parses args and executes the selected command. The exit function is
// called by kong after printing help or a usage error.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	err := pkg.MkdirAll(defaultDirMode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Flags such as --log-pretty are applied before kong starts so that
	// messages logged while parsing use them.
	cli.Log.scan(args)

	parser, err := newParser(ctx, &cli, exit)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func newParser(
	ctx context.Context,
	cli *CLI,
	exit func(code int),
) (*kong.Kong, error) {
	path := configPath(configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier: path,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath(jsonExt)),
		kong.Configuration(loadConfig, path),
		vars,
	)
}
