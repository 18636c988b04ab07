package ecnf

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/ecnf/log"
)

const (
	commentPrefix  = '#'
	keySeparator   = ':'
	sectionOpen    = "{"
	sectionClose   = "}"
	valueDelimiter = '"'
)

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser reads ECNF documents.
//
// A Parser holds the state of one parse at a time and resets it whenever
// [Parser.Parse] is called. It must not be used from multiple goroutines
// concurrently; the package-level functions create a Parser per call.
type Parser struct {
	result Map
	logger log.Logger
	prefix []string
	line   int
}

// NewParser returns a Parser configured with opts.
func NewParser(opts ...Option) *Parser {
	p := new(Parser)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses an ECNF document from r.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (Map, error) {
	return NewParser(opts...).Parse(ctx, r)
}

// ParseString parses an ECNF document from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (Map, error) {
	return Parse(ctx, strings.NewReader(s), opts...)
}

// ParseFile parses the ECNF document stored at path. Failure to open the
// file is reported as a [KindReadFailure] error at line 0.
func ParseFile(ctx context.Context, path string, opts ...Option) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: KindReadFailure, Err: err}
	}
	defer f.Close()

	return Parse(ctx, f, opts...)
}

// Parse consumes r line by line and returns the flattened document.
// It stops at the first error; no partial result is returned.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (Map, error) {
	p.result = make(Map)
	p.prefix = p.prefix[:0]
	p.line = 0

	p.logger.TraceContext(ctx, "parse start")

	br := bufio.NewReader(r)

	for {
		raw, readErr := br.ReadString('\n')
		if raw == "" && errors.Is(readErr, io.EOF) {
			break
		}

		p.line++

		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, p.fail(ctx, &ParseError{
				Kind: KindReadFailure,
				Line: p.line,
				Err:  readErr,
			})
		}

		if !utf8.ValidString(raw) {
			return nil, p.fail(ctx, &ParseError{
				Kind: KindReadFailure,
				Line: p.line,
				Err:  ErrInvalidUTF8,
			})
		}

		if err := p.consume(ctx, strings.TrimSpace(raw)); err != nil {
			return nil, p.fail(ctx, err)
		}
	}

	if len(p.prefix) > 0 {
		return nil, p.fail(ctx, &ParseError{
			Kind: KindUnterminatedSection,
			Line: p.line,
			Text: p.joinPrefix(),
		})
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("lines", p.line),
		slog.Int("entries", len(p.result)),
	)

	result := p.result
	p.result = nil

	return result, nil
}

// consume applies one trimmed line to the parse state.
func (p *Parser) consume(ctx context.Context, line string) error {
	switch {
	case line == "":
		return nil

	case line[0] == commentPrefix:
		return nil

	case line == sectionClose:
		if len(p.prefix) == 0 {
			return &ParseError{
				Kind: KindIllegalSectionClose,
				Line: p.line,
				Text: line,
			}
		}

		p.logger.TraceContext(ctx, "section close",
			slog.Int("line", p.line),
			slog.String("section", p.joinPrefix()),
		)

		p.prefix = p.prefix[:len(p.prefix)-1]

		return nil

	case !startsWith(line, isSectionKeyChar):
		return &ParseError{
			Kind: KindInvalidKey,
			Line: p.line,
			Text: line,
		}
	}

	c := newCursor(line)
	key := c.scanWhile(isKeyChar)

	c.skipWhitespace()

	if sep, ok := c.next(); !ok || sep != keySeparator {
		return &ParseError{
			Kind:  KindUnknownSeparator,
			Line:  p.line,
			Text:  line,
			Found: sep,
		}
	}

	c.skipWhitespace()

	value := c.rest()

	switch {
	case value == "":
		p.result[p.fullPath(key)] = None()

	case value == sectionOpen:
		p.prefix = append(p.prefix, key)

		p.logger.TraceContext(ctx, "section open",
			slog.Int("line", p.line),
			slog.String("section", p.joinPrefix()),
		)

	case isWrapped(value, valueDelimiter, valueDelimiter):
		p.result[p.fullPath(key)] = Some(value[1 : len(value)-1])

	default:
		return &ParseError{
			Kind:  KindUnknownValue,
			Line:  p.line,
			Text:  line,
			Value: value,
		}
	}

	return nil
}

// fullPath returns key qualified by the open sections.
func (p *Parser) fullPath(key string) string {
	if len(p.prefix) == 0 {
		return key
	}

	return p.joinPrefix() + PathSeparator + key
}

func (p *Parser) joinPrefix() string {
	return strings.Join(p.prefix, PathSeparator)
}

// fail discards the partial result and returns err.
func (p *Parser) fail(ctx context.Context, err error) error {
	p.result = nil

	p.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

	return err
}
