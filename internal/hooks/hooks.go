// Package hooks holds the external collaborators the generator calls after the
// module files exist: migration generation, autoload refresh and config cache
// rebuild.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// MigrationCreator generates a database migration for a new table.
type MigrationCreator interface {
	CreateMigration(ctx context.Context, name, table string) error
}

// AutoloadDumper refreshes the host project's class autoloader.
type AutoloadDumper interface {
	DumpAutoloads(ctx context.Context) error
}

// ConfigCacher rebuilds the host project's configuration cache.
type ConfigCacher interface {
	CacheConfig(ctx context.Context) error
}

// Noop satisfies every collaborator interface and does nothing.
type Noop struct{}

func (Noop) CreateMigration(context.Context, string, string) error { return nil }
func (Noop) DumpAutoloads(context.Context) error                   { return nil }
func (Noop) CacheConfig(context.Context) error                     { return nil }

// Commands are the shell command lines run for each hook. {{name}} and
// {{table}} in Migration are replaced with shell-quoted values. An empty
// command disables its hook.
type Commands struct {
	Migration   string
	Autoload    string
	ConfigCache string
}

// DefaultCommands returns the artisan and composer commands of a Laravel
// project.
func DefaultCommands() Commands {
	return Commands{
		Migration:   "php artisan make:migration {{name}} --create={{table}}",
		Autoload:    "composer dump-autoload",
		ConfigCache: "php artisan config:cache",
	}
}

// Shell runs hook commands through an in-process POSIX shell interpreter.
type Shell struct {
	commands Commands
	dir      string
	env      []string
	stdout   io.Writer
	stderr   io.Writer
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithDir sets the working directory commands run in.
func WithDir(dir string) ShellOption {
	return func(s *Shell) { s.dir = dir }
}

// WithEnv sets the environment commands run with, as KEY=value pairs.
func WithEnv(env []string) ShellOption {
	return func(s *Shell) { s.env = env }
}

// WithOutput sets where command output goes.
func WithOutput(stdout, stderr io.Writer) ShellOption {
	return func(s *Shell) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// NewShell creates a Shell running commands.
func NewShell(commands Commands, opts ...ShellOption) *Shell {
	s := &Shell{
		commands: commands,
		dir:      ".",
		env:      os.Environ(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMigration runs the migration command for table.
func (s *Shell) CreateMigration(ctx context.Context, name, table string) error {
	return s.Run(ctx, s.commands.Migration, map[string]string{"name": name, "table": table})
}

// DumpAutoloads runs the autoload command.
func (s *Shell) DumpAutoloads(ctx context.Context) error {
	return s.Run(ctx, s.commands.Autoload, nil)
}

// CacheConfig runs the config cache command.
func (s *Shell) CacheConfig(ctx context.Context) error {
	return s.Run(ctx, s.commands.ConfigCache, nil)
}

// Run expands vars into command and executes it. A blank command is a no-op.
func (s *Shell) Run(ctx context.Context, command string, vars map[string]string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	script, err := Expand(command, vars)
	if err != nil {
		return err
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "hook")
	if err != nil {
		return fmt.Errorf("failed to parse command %q: %w", script, err)
	}

	runner, err := interp.New(
		interp.Dir(s.dir),
		interp.Env(expand.ListEnviron(s.env...)),
		interp.StdIO(nil, s.stdout, s.stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return fmt.Errorf("command %q exited with status %d", script, int(exitStatus))
		}
		return fmt.Errorf("command %q failed: %w", script, err)
	}

	return nil
}

// Expand replaces {{key}} in command with the shell-quoted value of vars[key].
func Expand(command string, vars map[string]string) (string, error) {
	for key, value := range vars {
		quoted, err := syntax.Quote(value, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote %s: %w", key, err)
		}
		command = strings.ReplaceAll(command, "{{"+key+"}}", quoted)
	}
	return command, nil
}
