package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
)

type (
	contextKey struct{}
	inputKey   struct{}
	outputKey  struct{}
)

// WithContext returns a copy of ctx holding the parsed command line.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// WithInput returns a copy of ctx whose standard input is r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a copy of ctx whose command output is w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource names standard input as a source.
const stdinSource = "-"

// Source is the positional document argument shared by the commands.
type Source struct {
	Source string `arg:"" default:"-" help:"Input file, or '-' for stdin." name:"source"`
}

// open returns the reader of the source document.
func (s Source) open(ctx context.Context) (io.ReadCloser, error) {
	if s.Source == "" || s.Source == stdinSource {
		return io.NopCloser(inputFrom(ctx)), nil
	}

	f, err := os.Open(s.Source)
	if err != nil {
		return nil, ErrOpenSource.With(slog.String("source", s.Source)).Wrap(err)
	}

	return f, nil
}

// parse reads and parses the source document.
func (s Source) parse(ctx context.Context) (ecnf.Map, error) {
	r, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m, err := ecnf.Parse(ctx, r, ecnf.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrParse.With(slog.String("source", s.name())).Wrap(err)
	}

	log.DebugContext(ctx, "parsed source",
		slog.String("source", s.name()),
		slog.Int("entries", len(m)),
	)

	return m, nil
}

func (s Source) name() string {
	if s.Source == "" {
		return stdinSource
	}

	return s.Source
}
