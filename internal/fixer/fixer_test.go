package fixer

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"testing"

	"envcheck/internal/console"
	"envcheck/internal/envfile"
	"envcheck/internal/logger"
	"envcheck/internal/prompt"
	"envcheck/internal/store"
	"envcheck/internal/validate"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleText = `# Database
DB_HOST=localhost
# @type number
DB_PORT=5432
# @description database name
DB_NAME=
`

func setup(t *testing.T, live, example string) (afero.Fs, *store.FS) {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/app/.env", []byte(live), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/app/.env.example", []byte(example), 0o644))
	return mem, store.New(mem)
}

func opts(interactive bool) Options {
	return Options{EnvPath: "/app/.env", ExamplePath: "/app/.env.example", Interactive: interactive}
}

func readFile(t *testing.T, mem afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	return string(data)
}

func TestNonInteractiveSkipsAndWrites(t *testing.T) {
	mem, s := setup(t, "DB_HOST=localhost\nDB_PORT=5432\n", exampleText)
	p := prompt.NewScripted()

	out, err := New(s, p, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
	require.NoError(t, err)

	assert.Empty(t, p.Asked, "prompter must not be called")
	assert.Equal(t, []string{"DB_NAME"}, out.Skipped)
	assert.Empty(t, out.Repaired)
	require.Len(t, out.Result.Errors, 1)
	assert.Equal(t, validate.KindMissing, out.Result.Errors[0].Kind)
	assert.True(t, out.Written)

	want := "# Database\nDB_HOST=localhost\n# @type number\nDB_PORT=5432\n# @description database name\nDB_NAME=\n"
	assert.Equal(t, want, readFile(t, mem, "/app/.env"))
	assert.Equal(t, want, out.After)
}

func TestInteractiveRepairs(t *testing.T) {
	mem, s := setup(t, "DB_HOST=localhost\nDB_PORT=not-a-number\n", exampleText)
	// DB_PORT: empty and non-numeric answers are rejected first.
	p := prompt.NewScripted("", "abc", "6543", "  envcheck  ")

	out, err := New(s, p, envfile.SchemaOptions{}).Run(context.Background(), opts(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"DB_PORT", "DB_PORT", "DB_PORT", "DB_NAME"}, p.Asked)
	assert.Equal(t, []string{"DB_PORT", "DB_NAME"}, out.Repaired)
	assert.Empty(t, out.Skipped)

	got := readFile(t, mem, "/app/.env")
	assert.Contains(t, got, "DB_PORT=6543\n")
	assert.Contains(t, got, "DB_NAME=envcheck\n")
}

func TestRepairTrace(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logger.LevelTrace})))
	oldTTY := console.SetTTY(false)
	t.Cleanup(func() {
		slog.SetDefault(old)
		console.SetTTY(oldTTY)
	})

	_, s := setup(t, "DB_HOST=localhost\nDB_PORT=5432\n", exampleText)
	p := prompt.NewScripted("mydb")

	_, err := New(s, p, envfile.SchemaOptions{}).Run(context.Background(), opts(true))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Repairing DB_NAME (missing).")
	assert.Contains(t, buf.String(), "Set DB_NAME.")
}

func TestValidInputStillPersists(t *testing.T) {
	mem, s := setup(t, "DB_NAME=app\nDB_PORT=5432\nDB_HOST=db\n", exampleText)
	p := prompt.NewScripted()

	out, err := New(s, p, envfile.SchemaOptions{}).Run(context.Background(), opts(true))
	require.NoError(t, err)

	assert.True(t, out.Result.IsValid())
	assert.Empty(t, p.Asked)
	assert.Equal(t, "# Database\nDB_HOST=db\n# @type number\nDB_PORT=5432\n# @description database name\nDB_NAME=app\n",
		readFile(t, mem, "/app/.env"))
}

func TestExtraKeysKept(t *testing.T) {
	mem, s := setup(t, "LOCAL_ONLY=1\nDB_HOST=h\nDB_PORT=1\nDB_NAME=n\n", exampleText)

	out, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
	require.NoError(t, err)

	require.Len(t, out.Result.Warnings, 1)
	assert.Equal(t, validate.KindExtra, out.Result.Warnings[0].Kind)
	assert.Contains(t, readFile(t, mem, "/app/.env"), "### User Defined\n###\nLOCAL_ONLY=1\n")
}

func TestIdempotentNonInteractive(t *testing.T) {
	mem, s := setup(t, "EXTRA=x\nDB_PORT=not-a-number\n", exampleText)
	f := New(s, nil, envfile.SchemaOptions{})

	first, err := f.Run(context.Background(), opts(false))
	require.NoError(t, err)
	afterFirst := readFile(t, mem, "/app/.env")

	second, err := f.Run(context.Background(), opts(false))
	require.NoError(t, err)

	assert.Equal(t, afterFirst, readFile(t, mem, "/app/.env"))
	assert.False(t, second.Changed())
	assert.Equal(t, first.Result, second.Result)
}

func TestDryRun(t *testing.T) {
	live := "DB_HOST=localhost\n"
	mem, s := setup(t, live, exampleText)

	o := opts(false)
	o.DryRun = true
	out, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), o)
	require.NoError(t, err)

	assert.False(t, out.Written)
	assert.True(t, out.Changed())
	assert.Equal(t, live, readFile(t, mem, "/app/.env"))
}

func TestBackup(t *testing.T) {
	live := "DB_HOST=localhost\n"
	mem, s := setup(t, live, exampleText)

	o := opts(false)
	o.Backup = true
	out, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, "/app/.env.bak", out.BackupPath)
	assert.Equal(t, live, readFile(t, mem, "/app/.env.bak"))
}

func TestMissingFiles(t *testing.T) {
	mem := afero.NewMemMapFs()
	s := store.New(mem)

	_, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, afero.WriteFile(mem, "/app/.env", []byte("A=1\n"), 0o644))
	_, err = New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
	var nf *store.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/app/.env.example", nf.Path)
}

// lockedFs refuses to open one path.
type lockedFs struct {
	afero.Fs
	path string
}

func (l lockedFs) Open(name string) (afero.File, error) {
	if name == l.path {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return l.Fs.Open(name)
}

func TestReadFailurePropagates(t *testing.T) {
	for _, path := range []string{"/app/.env", "/app/.env.example"} {
		t.Run(path, func(t *testing.T) {
			mem, _ := setup(t, "DB_HOST=localhost\n", exampleText)
			s := store.New(lockedFs{Fs: mem, path: path})

			_, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
			var re *store.ReadError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, path, re.Path)
			assert.False(t, errors.Is(err, store.ErrNotFound))
			assert.True(t, errors.Is(err, fs.ErrPermission))
			assert.Equal(t, "DB_HOST=localhost\n", readFile(t, mem, "/app/.env"))
		})
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	mem, _ := setup(t, "DB_HOST=localhost\n", exampleText)
	s := store.New(afero.NewReadOnlyFs(mem))

	_, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(false))
	var we *store.WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "DB_HOST=localhost\n", readFile(t, mem, "/app/.env"))
}

func TestPromptFailureWritesNothing(t *testing.T) {
	live := "DB_HOST=localhost\n"
	mem, s := setup(t, live, exampleText)
	p := prompt.NewScripted() // no answers

	_, err := New(s, p, envfile.SchemaOptions{}).Run(context.Background(), opts(true))
	require.Error(t, err)
	assert.Equal(t, live, readFile(t, mem, "/app/.env"))
}

func TestInteractiveWithoutPrompter(t *testing.T) {
	_, s := setup(t, "DB_HOST=localhost\n", exampleText)

	_, err := New(s, nil, envfile.SchemaOptions{}).Run(context.Background(), opts(true))
	assert.Error(t, err)
}

func TestInferTypes(t *testing.T) {
	_, s := setup(t, "DEBUG=maybe\n", "DEBUG=false\n")

	out, err := New(s, nil, envfile.SchemaOptions{InferTypes: true}).Run(context.Background(), opts(false))
	require.NoError(t, err)
	require.Len(t, out.Result.Errors, 1)
	assert.Equal(t, validate.KindTypeMismatch, out.Result.Errors[0].Kind)
	assert.Equal(t, []string{"DEBUG"}, out.Skipped)
}
