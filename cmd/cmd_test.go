package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"envcheck/internal/console"
	"envcheck/internal/logger"
	"envcheck/internal/paths"
	"envcheck/internal/store"
	"envcheck/internal/validate"
	"envcheck/internal/version"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `# @type number
DB_PORT=5432
# @description database name
DB_NAME=
`

type harness struct {
	mem  afero.Fs
	app  *App
	logs *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	old := paths.ConfigHomeOverride
	paths.ConfigHomeOverride = t.TempDir()
	t.Cleanup(func() { paths.ConfigHomeOverride = old })

	logs := &bytes.Buffer{}
	oldLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: logger.LevelTrace})))
	oldTTY := console.SetTTY(false)
	t.Cleanup(func() {
		slog.SetDefault(oldLogger)
		console.SetTTY(oldTTY)
	})

	mem := afero.NewMemMapFs()
	return &harness{mem: mem, app: &App{Store: store.New(mem)}, logs: logs}
}

func (h *harness) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.mem, path, []byte(content), 0o644))
}

func (h *harness) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(h.mem, path)
	require.NoError(t, err)
	return string(data)
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	root := NewRootCmd(h.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateValid(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=5432\nDB_NAME=app\n")
	h.write(t, "/w/.env.example", example)

	out, err := h.run("", "validate", "-f", "/w/.env", "-e", "/w/.env.example")
	require.NoError(t, err)
	assert.Contains(t, out, "All environment variables are valid")
}

func TestValidateFailsAfterPrintingAll(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=abc\nEXTRA=1\n")
	h.write(t, "/w/.env.example", example)

	out, err := h.run("", "check", "-f", "/w/.env", "-e", "/w/.env.example")
	assert.ErrorIs(t, err, validate.ErrValidationFailed)
	assert.Contains(t, out, "Environment variable DB_PORT must be of type number")
	assert.Contains(t, out, "Required environment variable DB_NAME is missing")
	assert.Contains(t, out, "Extra environment variable EXTRA found")
}

func TestValidateJSON(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=1\n")
	h.write(t, "/w/.env.example", example)

	out, err := h.run("", "validate", "-f", "/w/.env", "-e", "/w/.env.example", "-o", "json")
	assert.Error(t, err)

	var doc struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Key  string `json:"key"`
			Kind string `json:"kind"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.False(t, doc.Valid)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "DB_NAME", doc.Errors[0].Key)
	assert.Equal(t, "missing", doc.Errors[0].Kind)
}

func TestValidateUnknownFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "validate", "-o", "xml")
	assert.Error(t, err)
}

func TestMissingExampleSuggestsInit(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "A=1\n")

	_, err := h.run("", "validate", "-f", "/w/.env", "-e", "/w/.env.example")
	var missing *missingExampleError
	require.True(t, errors.As(err, &missing))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = h.run("", "validate", "-f", "/w/none", "-e", "/w/.env.example")
	assert.False(t, errors.As(err, &missing), "a missing live file is not an example problem")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFixNonInteractive(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=5432\n")
	h.write(t, "/w/.env.example", example)

	_, err := h.run("", "fix", "-f", "/w/.env", "-e", "/w/.env.example", "--no-interactive")
	require.NoError(t, err)
	assert.Equal(t, example, h.read(t, "/w/.env"))
	assert.Contains(t, h.logs.String(), "Run '"+version.CommandName+" fix --interactive'")
}

func TestFixInteractiveReadsStdin(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=5432\n")
	h.write(t, "/w/.env.example", example)

	_, err := h.run("\nmydb\n", "fix", "-f", "/w/.env", "-e", "/w/.env.example")
	require.NoError(t, err)
	assert.Contains(t, h.read(t, "/w/.env"), "DB_NAME=mydb\n")
}

func TestFixDryRun(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "DB_PORT=5432\n")
	h.write(t, "/w/.env.example", example)

	out, err := h.run("", "fix", "-f", "/w/.env", "-e", "/w/.env.example", "--no-interactive", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "+DB_NAME=")
	assert.Equal(t, "DB_PORT=5432\n", h.read(t, "/w/.env"))
}

func TestFixInteractiveFlagsConflict(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "fix", "--interactive", "--no-interactive")
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "init", "-e", "/w/.env.example", "--yes")
	require.NoError(t, err)
	assert.Contains(t, h.read(t, "/w/.env.example"), "DB_HOST=localhost")

	h.write(t, "/w/.env.example", "KEEP=1\n")
	_, err = h.run("", "init", "-e", "/w/.env.example", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", h.read(t, "/w/.env.example"), "existing file is left alone")
}

func TestInitAsksBeforeWriting(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("n", "init", "-e", "/w/.env.example")
	require.NoError(t, err)
	exists, err := afero.Exists(h.mem, "/w/.env.example")
	require.NoError(t, err)
	assert.False(t, exists, "declined prompt writes nothing")

	_, err = h.run("y", "init", "-e", "/w/.env.example")
	require.NoError(t, err)
	assert.Contains(t, h.read(t, "/w/.env.example"), "DB_HOST=localhost")
	assert.Contains(t, h.logs.String(), "Answered: Yes")
}

func TestInitFromEnv(t *testing.T) {
	h := newHarness(t)
	h.write(t, "/w/.env", "PORT=8080\nNAME=demo\n")

	_, err := h.run("", "init", "-e", "/w/.env.example", "--from", "/w/.env", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "# @type number\nPORT=<PORT_VALUE>\nNAME=<NAME_VALUE>\n", h.read(t, "/w/.env.example"))
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "envcheck "))
}
