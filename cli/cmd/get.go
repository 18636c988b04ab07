package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// Get prints the value stored at one key path.
type Get struct {
	Key string `arg:"" help:"Full key path, such as DB.NAME." name:"key"`

	Source `embed:""`
}

// Run executes the get command. An absent value prints an empty line; a
// missing key is an error.
func (g *Get) Run(ctx context.Context) error {
	m, err := g.parse(ctx)
	if err != nil {
		return err
	}

	val, ok := m.Lookup(g.Key)
	if !ok {
		return ErrKeyNotFound.With(
			slog.String("key", g.Key),
			slog.String("source", g.name()),
		)
	}

	_, err = fmt.Fprintln(outputFrom(ctx), val.String())

	return err
}
