package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
)

// Eval evaluates an expr-lang expression over a document.
//
// Sections are nested maps, so DB.NAME refers to the key NAME in section DB.
// Absent values are nil. The function get(path) returns the value at a full
// key path, or nil if it is missing or absent, and has(path) reports whether
// the path is present. The namespace mung edits PATH-like lists:
// mung.prefix(list, dir...) prefixes the OS path list with each dir.
type Eval struct {
	Expr      string `arg:"" help:"Expression to evaluate, such as 'DB.PORT ?? \"5432\"'." name:"expr"`
	Undefined bool   `       help:"Treat unknown names as nil instead of failing."`

	Source `embed:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	m, err := e.parse(ctx)
	if err != nil {
		return err
	}

	env, err := m.Tree()
	if err != nil {
		return ErrEvalExpr.With(slog.String("source", e.name())).Wrap(err)
	}

	out, err := evaluate(ctx, e.Expr, m, env, e.Undefined)
	if err != nil {
		return err
	}

	return writeResult(ctx, out)
}

func evaluate(
	ctx context.Context,
	input string,
	m ecnf.Map,
	env map[string]any,
	undefined bool,
) (any, error) {
	// ECNF keys are upper case, so lower-case names cannot shadow entries.
	env[mungIdentifier] = map[string]any{
		"prefix":   mungPrefix,
		"prefixif": mungPrefixIf,
	}

	opts := []expr.Option{
		expr.Env(env),
		expr.Function("get",
			func(params ...any) (any, error) {
				val, ok := m.Lookup(params[0].(string))
				if !ok || !val.Valid() {
					return nil, nil
				}

				return val.String(), nil
			},
			new(func(string) any),
		),
		expr.Function("has",
			func(params ...any) (any, error) {
				_, ok := m.Lookup(params[0].(string))

				return ok, nil
			},
			new(func(string) bool),
		),
	}

	if undefined {
		opts = append(opts, expr.AllowUndefinedVariables())
	}

	program, err := expr.Compile(input, opts...)
	if err != nil {
		return nil, ErrCompileExpr.With(slog.String("expr", input)).Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrEvalExpr.With(slog.String("expr", input)).Wrap(err)
	}

	log.DebugContext(ctx, "evaluated expression",
		slog.String("expr", input),
		slog.String("type", fmt.Sprintf("%T", out)),
	)

	return out, nil
}

const mungIdentifier = "mung"

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// writeResult prints strings and scalars as text and composite values as
// JSON. A nil result prints an empty line.
func writeResult(ctx context.Context, out any) error {
	w := outputFrom(ctx)

	switch v := out.(type) {
	case nil:
		_, err := fmt.Fprintln(w)

		return err

	case string, bool, int, int64, float64:
		_, err := fmt.Fprintln(w, v)

		return err

	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ErrEvalExpr.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}
}
