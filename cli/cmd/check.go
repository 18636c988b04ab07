package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ecnf/log"
)

// Check parses a document and reports only whether it is valid.
type Check struct {
	Source `embed:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	m, err := c.parse(ctx)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "document is valid",
		slog.String("source", c.name()),
		slog.Int("entries", len(m)),
	)

	return nil
}
