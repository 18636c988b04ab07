package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ecnf/cli/cmd/browse"
)

// Browse searches the keys of a document interactively and prints the
// selected entry as "KEY : value".
type Browse struct {
	Query string `help:"Initial filter text." short:"q"`

	Source `embed:""`
}

// Run executes the browse command. The finder reads keys from the terminal
// and draws on standard error, so the document may come from standard input
// and the selection may be piped.
func (b *Browse) Run(ctx context.Context) error {
	m, err := b.parse(ctx)
	if err != nil {
		return err
	}

	key, ok, err := browse.Run(ctx, m, b.Query,
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
	)
	if err != nil || !ok {
		return err
	}

	val, _ := m.Lookup(key)

	_, err = fmt.Fprintf(outputFrom(ctx), "%s : %s\n", key, val.Quote())

	return err
}
