package hooks

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, commands Commands) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	shell := NewShell(commands,
		WithDir(t.TempDir()),
		WithEnv(nil),
		WithOutput(&out, &out),
	)
	return shell, &out
}

func TestShellCreateMigration(t *testing.T) {
	shell, out := newTestShell(t, Commands{Migration: "echo {{name}} --create={{table}}"})

	err := shell.CreateMigration(context.Background(), "create_blogs_table", "blogs")
	require.NoError(t, err)
	assert.Equal(t, "create_blogs_table --create=blogs\n", out.String())
}

func TestShellQuotesValues(t *testing.T) {
	shell, out := newTestShell(t, Commands{Migration: "echo {{table}}"})

	err := shell.CreateMigration(context.Background(), "x", "blogs; echo injected")
	require.NoError(t, err)
	assert.Equal(t, "blogs; echo injected\n", out.String())
}

func TestShellEmptyCommandIsNoop(t *testing.T) {
	shell, out := newTestShell(t, Commands{})

	require.NoError(t, shell.DumpAutoloads(context.Background()))
	require.NoError(t, shell.CacheConfig(context.Background()))
	require.NoError(t, shell.CreateMigration(context.Background(), "n", "t"))
	assert.Empty(t, out.String())
}

func TestShellReportsExitStatus(t *testing.T) {
	shell, _ := newTestShell(t, Commands{Autoload: "exit 3"})

	err := shell.DumpAutoloads(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 3")
}

func TestShellReportsParseErrors(t *testing.T) {
	shell, _ := newTestShell(t, Commands{ConfigCache: "echo 'unterminated"})

	err := shell.CacheConfig(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse command")
}

func TestShellRunsInConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	shell := NewShell(Commands{Autoload: "pwd"}, WithDir(dir), WithEnv(nil), WithOutput(&out, &out))

	require.NoError(t, shell.DumpAutoloads(context.Background()))
	assert.Contains(t, out.String(), dir)
}

func TestExpand(t *testing.T) {
	expanded, err := Expand("make {{name}} --create={{table}}", map[string]string{"name": "create_blogs_table", "table": "blogs"})
	require.NoError(t, err)
	assert.Equal(t, "make create_blogs_table --create=blogs", expanded)

	unchanged, err := Expand("composer dump-autoload", nil)
	require.NoError(t, err)
	assert.Equal(t, "composer dump-autoload", unchanged)
}

func TestNoop(t *testing.T) {
	var n Noop
	ctx := context.Background()

	assert.NoError(t, n.CreateMigration(ctx, "create_blogs_table", "blogs"))
	assert.NoError(t, n.DumpAutoloads(ctx))
	assert.NoError(t, n.CacheConfig(ctx))
}
