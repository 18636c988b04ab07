package ecnf

import (
	"errors"
	"log/slog"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l *level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*l = 1
	case "high":
		*l = 2
	default:
		return errors.New("unknown level")
	}

	return nil
}

type dbConfig struct {
	Driver      string
	Password    *string
	AccountName *string
	LogFile     struct {
		Path Value
	}
	Addr    netip.Addr `ecnf:"ADDRESS"`
	Ignored string     `ecnf:"-"`
	Level   level
	hidden  string
}

type appConfig struct {
	Version string
	DB      dbConfig `ecnf:"DB"`
}

func TestUnmarshal(t *testing.T) {
	m := Map{
		"VERSION":          Some("4.2.23"),
		"DB.DRIVER":        Some("SQLite"),
		"DB.PASSWORD":      None(),
		"DB.ACCOUNT_NAME":  Some("user"),
		"DB.LOG_FILE.PATH": Some("database.log"),
		"DB.ADDRESS":       Some("127.0.0.1"),
		"DB.IGNORED":       Some("x"),
		"DB.LEVEL":         Some("high"),
		"DB.HIDDEN":        Some("x"),
		"UNUSED":           Some("x"),
	}

	pw := "keep"
	cfg := appConfig{DB: dbConfig{Password: &pw, Ignored: "orig"}}

	require.NoError(t, Unmarshal(m, &cfg))

	assert.Equal(t, "4.2.23", cfg.Version)
	assert.Equal(t, "SQLite", cfg.DB.Driver)
	assert.Nil(t, cfg.DB.Password, "absent value did not clear pointer")
	require.NotNil(t, cfg.DB.AccountName)
	assert.Equal(t, "user", *cfg.DB.AccountName)
	assert.Equal(t, Some("database.log"), cfg.DB.LogFile.Path)
	assert.Equal(t, netip.MustParseAddr("127.0.0.1"), cfg.DB.Addr)
	assert.Equal(t, "orig", cfg.DB.Ignored)
	assert.Equal(t, level(2), cfg.DB.Level)
	assert.Empty(t, cfg.DB.hidden)
}

func TestUnmarshal_MissingKeepsField(t *testing.T) {
	cfg := appConfig{Version: "default"}
	cfg.DB.LogFile.Path = Some("keep")

	require.NoError(t, Unmarshal(Map{"VERSION": None()}, &cfg))

	assert.Empty(t, cfg.Version, "absent value did not reset string")
	assert.Equal(t, Some("keep"), cfg.DB.LogFile.Path)
}

func TestUnmarshal_AbsentSkipsTextUnmarshaler(t *testing.T) {
	cfg := appConfig{DB: dbConfig{Level: 1}}

	require.NoError(t, Unmarshal(Map{"DB.LEVEL": None()}, &cfg))
	assert.Equal(t, level(1), cfg.DB.Level)
}

func TestUnmarshal_Errors(t *testing.T) {
	var cfg appConfig

	tests := []struct {
		name   string
		target any
		m      Map
		want   error
	}{
		{"nil", nil, Map{}, ErrInvalidTarget},
		{"non-pointer", cfg, Map{}, ErrInvalidTarget},
		{"nil pointer", (*appConfig)(nil), Map{}, ErrInvalidTarget},
		{"pointer to non-struct", new(string), Map{}, ErrInvalidTarget},
		{"unsupported", &struct{ Count int }{}, Map{}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Unmarshal(tt.m, tt.target), tt.want)
		})
	}
}

func TestUnmarshal_TextError(t *testing.T) {
	var cfg appConfig

	err := Unmarshal(Map{"DB.LEVEL": Some("medium")}, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level")

	var ee *Error
	require.ErrorAs(t, err, &ee)

	attrs := map[string]string{}
	for _, a := range ee.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}

	assert.Equal(t, "DB.LEVEL", attrs["key"])
	assert.Equal(t, slog.KindGroup, ee.LogValue().Kind())
}

func TestUpperSnake(t *testing.T) {
	tests := map[string]string{
		"Driver":      "DRIVER",
		"AccountName": "ACCOUNT_NAME",
		"DBPath":      "DB_PATH",
		"LogFile":     "LOG_FILE",
		"URL":         "URL",
		"HTTPServer":  "HTTP_SERVER",
		"A":           "A",
	}

	for in, want := range tests {
		assert.Equal(t, want, upperSnake(in), in)
	}
}
