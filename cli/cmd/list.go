package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/ecnf/ecnf"
)

// List prints every entry of a document as "KEY : value", sorted by key.
// Absent values are printed as <none>.
type List struct {
	Source `embed:""`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	m, err := l.parse(ctx)
	if err != nil {
		return err
	}

	return writeList(outputFrom(ctx), m)
}

func writeList(w io.Writer, m ecnf.Map) error {
	for key, val := range m.All() {
		_, err := fmt.Fprintf(w, "%s : %s\n", key, val.Quote())
		if err != nil {
			return err
		}
	}

	return nil
}
