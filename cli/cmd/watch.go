package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
)

// debounceDelay coalesces the bursts of events that editors produce for a
// single save.
const debounceDelay = 100 * time.Millisecond

// Watch prints a document, then prints it again each time the file changes
// until interrupted. A change that fails to parse is logged and the last
// valid document is kept.
type Watch struct {
	Format string `default:"list" enum:"list,native,json,yaml,toml,env" help:"Output format (${enum})." short:"o"`

	Source `embed:""`
}

// Run executes the watch command.
func (wc *Watch) Run(ctx context.Context) error {
	if wc.name() == stdinSource {
		return ErrWatchStdin
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := filepath.Abs(wc.Source.Source)
	if err != nil {
		return ErrWatch.With(slog.String("source", wc.name())).Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so the directory
	// is watched and events are filtered by name.
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return ErrWatch.With(slog.String("source", wc.name())).Wrap(err)
	}

	last, err := wc.parse(ctx)
	if err != nil {
		return err
	}

	err = wc.render(ctx, last)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "watching", slog.String("source", path))

	timer := time.NewTimer(debounceDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "watch stopped", slog.String("source", path))

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path ||
				!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.TraceContext(ctx, "file event",
				slog.String("source", path),
				slog.String("op", event.Op.String()),
			)

			timer.Reset(debounceDelay)

		case <-timer.C:
			m, err := wc.parse(ctx)
			if err != nil {
				log.WarnContext(ctx, "reload failed", slog.Any("error", err))

				continue
			}

			if m.Equal(last) {
				continue
			}

			last = m

			err = wc.render(ctx, m)
			if err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(debounceDelay)
			}

			log.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}

func (wc *Watch) render(ctx context.Context, m ecnf.Map) error {
	w := outputFrom(ctx)

	var err error

	switch wc.Format {
	case "native":
		err = m.Format(ctx, w, defaultConfigIndent)
	case "json":
		err = m.FormatJSON(ctx, w, defaultConfigIndent, true)
	case "yaml":
		err = m.FormatYAML(ctx, w, defaultConfigIndent, true)
	case "toml":
		err = m.FormatTOML(ctx, w, defaultConfigIndent)
	case "env":
		err = m.FormatEnv(ctx, w)
	default:
		err = writeList(w, m)
	}

	if err != nil {
		return ErrFormat.With(slog.String("format", wc.Format)).Wrap(err)
	}

	return nil
}
