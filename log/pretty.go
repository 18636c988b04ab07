package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty text record. Colors are only emitted
// when the output is a terminal that supports them.
type palette struct {
	key, text, number, on, off, duration, stamp lipgloss.Style
	level                                       map[Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:      fg("8"),
		text:     fg("6"),
		number:   fg("3"),
		on:       fg("2"),
		off:      fg("1"),
		duration: fg("5"),
		stamp:    fg("4"),
		level: map[Level]lipgloss.Style{
			LevelTrace: fg("8"),
			LevelDebug: fg("4"),
			LevelInfo:  fg("2"),
			LevelWarn:  fg("3").Bold(true),
			LevelError: fg("1").Bold(true),
		},
	}
}

func (p *palette) levelStyle(l Level) lipgloss.Style {
	switch {
	case l >= LevelError:
		return p.level[LevelError]
	case l >= LevelWarn:
		return p.level[LevelWarn]
	case l >= LevelInfo:
		return p.level[LevelInfo]
	case l >= LevelDebug:
		return p.level[LevelDebug]
	default:
		return p.level[LevelTrace]
	}
}

// prettyHandler writes one colorized line per record:
//
//	TIME LEVEL message key=value group.key=value
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	style      *palette
	mu         *sync.Mutex
	w          io.Writer
	prefix     string
	attrs      []byte
}

func newPrettyHandler(
	w io.Writer,
	formatTime FormatTime,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		style:      newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			buf.WriteString(h.style.stamp.Render(s))
			buf.WriteByte(' ')
		}
	}

	level := Level(r.Level)
	label := fmt.Sprintf("%-5s", strings.ToUpper(level.String()))
	buf.WriteString(h.style.levelStyle(level).Render(label))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf.WriteByte(' ')
			buf.WriteString(h.style.key.Render(
				src.File + ":" + strconv.Itoa(src.Line),
			))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer

	buf.Write(h.attrs)

	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}

	clone := *h
	clone.attrs = buf.Bytes()

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, group, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.formatValue(a.Value))
}

func (h *prettyHandler) formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.on.Render("true")
		}

		return h.style.off.Render("false")

	case slog.KindDuration:
		return h.style.duration.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.stamp.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		if v.Any() == nil {
			return h.style.key.Render("<nil>")
		}
	}

	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\r\n\"=") {
		s = strconv.Quote(s)
	}

	return h.style.text.Render(s)
}

// indentWriter reformats each JSON record written to it across multiple
// indented lines. It relies on [slog.JSONHandler] writing one complete
// record per call.
type indentWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (iw *indentWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	err := json.Indent(&buf, p, "", "  ")
	if err != nil {
		buf.Reset()
		buf.Write(p)
	}

	iw.mu.Lock()
	defer iw.mu.Unlock()

	_, err = iw.w.Write(buf.Bytes())
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
