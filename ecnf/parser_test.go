package ecnf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/ecnf/log"
)

func TestParse_Success(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Map
	}{
		{
			name:  "empty",
			input: "",
			want:  Map{},
		},
		{
			name:  "comment",
			input: "# hoge i hoge j",
			want:  Map{},
		},
		{
			name:  "quoted value keeps inner spaces",
			input: `  HO_GE : " FU ga "`,
			want:  Map{"HO_GE": Some(" FU ga ")},
		},
		{
			name:  "blank lines",
			input: "\n\n    HOGE: \"FUGA\"\n\n    HOOO: \"\"\n\n  ",
			want:  Map{"HOGE": Some("FUGA"), "HOOO": Some("")},
		},
		{
			name:  "empty string",
			input: `  HO_GE : ""`,
			want:  Map{"HO_GE": Some("")},
		},
		{
			name:  "absent value",
			input: `  HO_GE : `,
			want:  Map{"HO_GE": None()},
		},
		{
			name:  "empty section",
			input: "\n    DB : {\n    }",
			want:  Map{},
		},
		{
			name: "section",
			input: `
				DB : {
					ACCOUNT_NAME :
					PASSWORD :
					PATH : ""
					DRIVER : "SQLite"
				}`,
			want: Map{
				"DB.ACCOUNT_NAME": None(),
				"DB.PASSWORD":     None(),
				"DB.PATH":         Some(""),
				"DB.DRIVER":       Some("SQLite"),
			},
		},
		{
			name: "nested sections",
			input: `
				DB : {
					DRIVER : "SQLite"
					SQLITE: {
						ACCOUNT_NAME : "user"
						PASSWORD : "_"3$#"
						PATH : ""
					}
					LOG_FILE: {
						DIRECTORY: "./log"
						PATH: "database.log"
					}
					EMPTY: {
					}
				}`,
			want: Map{
				"DB.DRIVER":              Some("SQLite"),
				"DB.SQLITE.ACCOUNT_NAME": Some("user"),
				"DB.SQLITE.PASSWORD":     Some(`_"3$#`),
				"DB.SQLITE.PATH":         Some(""),
				"DB.LOG_FILE.DIRECTORY":  Some("./log"),
				"DB.LOG_FILE.PATH":       Some("database.log"),
			},
		},
		{
			name: "comments and unicode",
			input: `
				# app version
				VERSION :  "4.2.23"

				# screen
				SCREEN:{
					# empty setting
					SC_ZERO: "日本語"
					SC_ONE:
					SC_TWO: "default"

					SC_THREE: "hoge hoge "
				}`,
			want: Map{
				"VERSION":         Some("4.2.23"),
				"SCREEN.SC_ZERO":  Some("日本語"),
				"SCREEN.SC_ONE":   None(),
				"SCREEN.SC_TWO":   Some("default"),
				"SCREEN.SC_THREE": Some("hoge hoge "),
			},
		},
		{
			name:  "deep path",
			input: "A: {\nB: {\nC: \"v\"\n}\n}",
			want:  Map{"A.B.C": Some("v")},
		},
		{
			name:  "last write wins",
			input: "K: \"a\"\nK: \"b\"",
			want:  Map{"K": Some("b")},
		},
		{
			name:  "last write wins across sections",
			input: "A: {\nK: \"a\"\n}\nA: {\nK:\n}",
			want:  Map{"A.K": None()},
		},
		{
			name:  "section name reused as key",
			input: "A: \"x\"\nA: {\nB: \"y\"\n}",
			want:  Map{"A": Some("x"), "A.B": Some("y")},
		},
		{
			name:  "carriage returns",
			input: "A: {\r\nB: \"y\"\r\n}\r\n",
			want:  Map{"A.B": Some("y")},
		},
		{
			name:  "quote inside value",
			input: `Q: """`,
			want:  Map{"Q": Some(`"`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Error(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParseError
	}{
		{
			name:  "trailing comment",
			input: `HOGE: "huge"  # comment`,
			want: ParseError{
				Kind:  KindUnknownValue,
				Line:  1,
				Text:  `HOGE: "huge"  # comment`,
				Value: `"huge"  # comment`,
			},
		},
		{
			name:  "underscore key start",
			input: `_HOGE:"vim style"`,
			want:  ParseError{Kind: KindInvalidKey, Line: 1, Text: `_HOGE:"vim style"`},
		},
		{
			name:  "lowercase key start",
			input: `v_HOGE:"vim style"`,
			want:  ParseError{Kind: KindInvalidKey, Line: 1, Text: `v_HOGE:"vim style"`},
		},
		{
			name:  "lowercase in key",
			input: `HO_gE:"vim style"`,
			want: ParseError{
				Kind:  KindUnknownSeparator,
				Line:  1,
				Text:  `HO_gE:"vim style"`,
				Found: 'g',
			},
		},
		{
			name:  "equals separator",
			input: `HOGE="vim style"`,
			want: ParseError{
				Kind:  KindUnknownSeparator,
				Line:  1,
				Text:  `HOGE="vim style"`,
				Found: '=',
			},
		},
		{
			name:  "missing separator",
			input: "HOGE",
			want:  ParseError{Kind: KindUnknownSeparator, Line: 1, Text: "HOGE"},
		},
		{
			name:  "single quotes",
			input: `HOGE:'vim style'`,
			want: ParseError{
				Kind:  KindUnknownValue,
				Line:  1,
				Text:  `HOGE:'vim style'`,
				Value: `'vim style'`,
			},
		},
		{
			name:  "lone quote",
			input: `HOGE: "`,
			want: ParseError{
				Kind:  KindUnknownValue,
				Line:  1,
				Text:  `HOGE: "`,
				Value: `"`,
			},
		},
		{
			name:  "close without open",
			input: "}",
			want:  ParseError{Kind: KindIllegalSectionClose, Line: 1, Text: "}"},
		},
		{
			name:  "inline empty section",
			input: "HOGE:{}",
			want: ParseError{
				Kind:  KindUnknownValue,
				Line:  1,
				Text:  "HOGE:{}",
				Value: "{}",
			},
		},
		{
			name:  "trailing content after open",
			input: "A: { X",
			want: ParseError{
				Kind:  KindUnknownValue,
				Line:  1,
				Text:  "A: { X",
				Value: "{ X",
			},
		},
		{
			name:  "unterminated",
			input: "\n    DB: {\n        CD: {\n        }\n    ",
			want:  ParseError{Kind: KindUnterminatedSection, Line: 5, Text: "DB"},
		},
		{
			name:  "unterminated after newline",
			input: "A: {\n",
			want:  ParseError{Kind: KindUnterminatedSection, Line: 1, Text: "A"},
		},
		{
			name:  "unterminated reports deepest path",
			input: "A: {\nB: {\n",
			want:  ParseError{Kind: KindUnterminatedSection, Line: 2, Text: "A.B"},
		},
		{
			name:  "line numbers count comments and blanks",
			input: "# one\n\n# three\n\n_BAD:",
			want:  ParseError{Kind: KindInvalidKey, Line: 5, Text: "_BAD:"},
		},
		{
			name:  "extra close",
			input: "A: {\n}\n}",
			want:  ParseError{Kind: KindIllegalSectionClose, Line: 3, Text: "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, got)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.want, *perr)
			assert.ErrorIs(t, err, tt.want.Kind.sentinel())
		})
	}
}

func TestParse_ReadFailure(t *testing.T) {
	cause := errors.New("disk on fire")
	r := io.MultiReader(
		strings.NewReader("A: \"x\"\n"),
		iotest.ErrReader(cause),
	)

	_, err := Parse(context.Background(), r)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, cause)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := ParseString(context.Background(), "A: \"ok\"\nB: \"\xff\"\n")

	require.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.ecnf")
	require.NoError(t, os.WriteFile(path, []byte("DB: {\nNAME: \"x\"\n}\n"), 0o600))

	got, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Map{"DB.NAME": Some("x")}, got)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope"))

	require.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, perr.Line)
}

func TestParser_Reuse(t *testing.T) {
	p := NewParser()
	ctx := context.Background()

	_, err := p.Parse(ctx, strings.NewReader("A: {\n"))
	require.ErrorIs(t, err, ErrUnterminatedSection)

	got, err := p.Parse(ctx, strings.NewReader("B: \"y\""))
	require.NoError(t, err)
	assert.Equal(t, Map{"B": Some("y")}, got, "state leaked from failed parse")

	again, err := p.Parse(ctx, strings.NewReader("B: \"y\""))
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestParser_Logger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
	)

	_, err := ParseString(context.Background(), "DB: {\nNAME:\n}", WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"section open"`)
	assert.Contains(t, out, `"section":"DB"`)
	assert.Contains(t, out, `"msg":"parse complete"`)
	assert.Contains(t, out, `"entries":1`)
}

func TestParse_Deterministic(t *testing.T) {
	const doc = "A: {\nB: \"1\"\nC:\n}\nD: \"2\"\n"

	first, err := ParseString(context.Background(), doc)
	require.NoError(t, err)

	for range 10 {
		got, err := ParseString(context.Background(), doc)
		require.NoError(t, err)
		require.True(t, first.Equal(got))
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"A: \"x\"",
		"A: {\nB:\n}",
		"}",
		"_A:",
		"A: {}",
		"# c\nA=\"x\"",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		m, err := ParseString(context.Background(), input)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is not a *ParseError: %v", err)
			}

			if m != nil {
				t.Fatal("partial result returned with error")
			}

			return
		}

		// A successful parse must survive formatting.
		var buf bytes.Buffer
		if err := m.Format(context.Background(), &buf, 2); err != nil {
			return
		}

		back, err := ParseString(context.Background(), buf.String())
		if err != nil {
			t.Fatalf("formatted document does not parse: %v\n%s", err, buf.String())
		}

		if !m.Equal(back) {
			t.Fatalf("round trip mismatch:\n%v\n%v", m, back)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	var sb strings.Builder

	for range 100 {
		sb.WriteString("# section\nDB: {\n  DRIVER: \"SQLite\"\n  PASSWORD:\n")
		sb.WriteString("  LOG_FILE: {\n    PATH: \"database.log\"\n  }\n}\n")
	}

	doc := sb.String()
	p := NewParser()
	ctx := context.Background()

	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := p.Parse(ctx, strings.NewReader(doc)); err != nil {
			b.Fatal(err)
		}
	}
}
