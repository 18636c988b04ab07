package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ecnf/ecnf"
)

// Fmt writes a document in canonical ECNF or converts it to another format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical ECNF (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	TOML   TOML   `cmd:""                    help:"Format as TOML."`
	Env    Env    `cmd:""                    help:"Format as shell export statements."`
}

// formatter writes a parsed document to the command output.
type formatter func(ctx context.Context, m ecnf.Map) error

func (s Source) format(ctx context.Context, name string, fn formatter) error {
	m, err := s.parse(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, m)
	if err != nil {
		return ErrFormat.With(
			slog.String("format", name),
			slog.String("source", s.name()),
		).Wrap(err)
	}

	return nil
}

// Native formats a document as canonical ECNF.
type Native struct {
	Indent int `default:"2" help:"Indent width of nested sections." short:"i"`

	Source `embed:""`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	return f.format(ctx, "native", func(ctx context.Context, m ecnf.Map) error {
		return m.Format(ctx, outputFrom(ctx), f.Indent)
	})
}

// JSON formats a document as a JSON object.
type JSON struct {
	Indent int  `default:"2" help:"Indent width, or 0 for a single line." short:"i"`
	Nested bool `            help:"Nest sections as objects."             short:"n"`

	Source `embed:""`
}

// Run executes the fmt json command.
func (f *JSON) Run(ctx context.Context) error {
	return f.format(ctx, "json", func(ctx context.Context, m ecnf.Map) error {
		return m.FormatJSON(ctx, outputFrom(ctx), f.Indent, f.Nested)
	})
}

// YAML formats a document as a YAML mapping.
type YAML struct {
	Indent int  `default:"2" help:"Indent width, or 0 for flow style." short:"i"`
	Nested bool `            help:"Nest sections as mappings."         short:"n"`

	Source `embed:""`
}

// Run executes the fmt yaml command.
func (f *YAML) Run(ctx context.Context) error {
	return f.format(ctx, "yaml", func(ctx context.Context, m ecnf.Map) error {
		return m.FormatYAML(ctx, outputFrom(ctx), f.Indent, f.Nested)
	})
}

// TOML formats a document as a TOML document with a table per section.
type TOML struct {
	Indent int `default:"2" help:"Indent width of nested tables." short:"i"`

	Source `embed:""`
}

// Run executes the fmt toml command.
func (f *TOML) Run(ctx context.Context) error {
	return f.format(ctx, "toml", func(ctx context.Context, m ecnf.Map) error {
		return m.FormatTOML(ctx, outputFrom(ctx), f.Indent)
	})
}

// Env formats a document as POSIX shell export statements.
type Env struct {
	Source `embed:""`
}

// Run executes the fmt env command.
func (f *Env) Run(ctx context.Context) error {
	return f.format(ctx, "env", func(ctx context.Context, m ecnf.Map) error {
		return m.FormatEnv(ctx, outputFrom(ctx))
	})
}
