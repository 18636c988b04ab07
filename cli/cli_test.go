package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/ecnf/cli/cmd"
	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
	"github.com/ardnew/ecnf/pkg"
)

// TestMain points the configuration and cache directories at a temporary
// directory before they are first resolved.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "ecnf-cli-test")
	if err != nil {
		panic(err)
	}

	for _, env := range []string{"HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME"} {
		os.Setenv(env, home)
	}

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	original := log.Default()
	t.Cleanup(func() { log.SetDefault(original) })

	var out bytes.Buffer

	ctx := cmd.WithOutput(context.Background(), &out)
	ctx = cmd.WithInput(ctx, strings.NewReader(stdin))

	exit := func(code int) { t.Fatalf("exit(%d)", code) }
	err := Run(ctx, exit, append([]string{"--log-level=error"}, args...)...)

	return out.String(), err
}

func TestRun_Version(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, pkg.Name+" "+pkg.Version+"\n", out)
}

func TestRun_DefaultList(t *testing.T) {
	out, err := run(t, "DB: {\nNAME: \"x\"\nUSER:\n}\n")
	require.NoError(t, err)
	assert.Equal(t, "DB.NAME : \"x\"\nDB.USER : <none>\n", out)
}

func TestRun_Get(t *testing.T) {
	out, err := run(t, "DB: {\nNAME: \"x\"\n}\n", "get", "DB.NAME")
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)

	_, err = run(t, "DB: {\nNAME: \"x\"\n}\n", "get", "DB.USER")
	require.ErrorIs(t, err, cmd.ErrKeyNotFound)
}

func TestRun_ConfigFile(t *testing.T) {
	path := configPath(configExt)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(
		"LOG: {\n  TIME_LAYOUT: \"kitchen\"\n  CALLER: \"true\"\n}\n",
	), 0o600))
	t.Cleanup(func() { os.Remove(path) })

	out, err := run(t, "", "init", "--print", "--no-log-caller")
	require.NoError(t, err)

	conf, err := ecnf.ParseString(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, "kitchen", conf["LOG.TIME.LAYOUT"].String(), "config file ignored")
	assert.Equal(t, "false", conf["LOG.CALLER"].String(), "flag did not override config")
	assert.Equal(t, "error", conf["LOG.LEVEL"].String())
}

func TestRun_Init(t *testing.T) {
	path := configPath(configExt)
	t.Cleanup(func() { os.Remove(path) })

	_, err := run(t, "", "init")
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = run(t, "", "init")
	require.ErrorIs(t, err, cmd.ErrFileExists)

	_, err = run(t, "", "init", "--force")
	require.NoError(t, err)
}
