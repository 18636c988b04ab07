// Command ecnf parses, queries, and converts ECNF configuration files.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ecnf/cli"
	"github.com/ardnew/ecnf/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
