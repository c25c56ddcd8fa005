package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/conneroisu/modforge/internal/config"
	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/generator"
	"github.com/conneroisu/modforge/internal/hooks"
	"github.com/conneroisu/modforge/internal/logging"
	"github.com/conneroisu/modforge/internal/stubs"
	"github.com/conneroisu/modforge/internal/writer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// migrateNoValue is the value --migrate takes when given without "=table".
const migrateNoValue = "true"

var infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

type generateModuleOptions struct {
	namespace string
	migrate   string
}

func newGenerateModuleCmd() *cobra.Command {
	var opts generateModuleOptions

	cmd := &cobra.Command{
		Use:     "generate-module <name>",
		Aliases: []string{"make:module", "module"},
		Short:   "Generate the artifacts of a new module",
		Long: `Generate every artifact of a new module below the root namespace.

The name may contain "/" to nest the module. The command refuses to run when
the module folder already exists and never touches existing modules.

With --migrate the migration and autoload hooks run after the artifacts are
written, creating the plural table of the module (Blog creates "blogs").
--migrate=<table> names the table explicitly.

Examples:
  modforge generate-module Blog
  modforge generate-module Shop/Order --migrate
  modforge generate-module Blog --migrate=posts
  modforge generate-module Invoice --namespace 'Acme\Billing'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateModule(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "root namespace override (default from generator.root_namespace)")
	cmd.Flags().StringVarP(&opts.migrate, "migrate", "m", "", "create the module table migration, optionally naming the table")
	cmd.Flags().Lookup("migrate").NoOptDefVal = migrateNoValue

	return cmd
}

// migrationRequest interprets the --migrate flag: absent or "false" disables
// the hook, a bare flag or "true" uses the derived table, anything else names
// the table.
func migrationRequest(flags *pflag.FlagSet, value string) (migrate bool, table string) {
	if !flags.Changed("migrate") {
		return false, ""
	}
	switch value {
	case "false":
		return false, ""
	case "", migrateNoValue:
		return true, ""
	default:
		return true, value
	}
}

func runGenerateModule(cmd *cobra.Command, name string, opts generateModuleOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	ctx := cmd.Context()

	migrate, table := migrationRequest(cmd.Flags(), opts.migrate)
	req := generator.Request{
		Name:      name,
		Namespace: opts.namespace,
		Migrate:   migrate,
		Table:     table,
	}

	gen := newGenerator(cfg, afero.NewOsFs(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)

	perf := logger.StartOperation("generate-module")
	result, err := gen.Generate(ctx, req)
	if err != nil {
		errors.NewErrorHandler(logger).Handle(ctx, err)
		perf.EndWithError(ctx, err)
		return err
	}
	perf.End(ctx)

	logger.Debug(ctx, "Generation finished", "module", result.Module.String(), "state", result.State)
	return nil
}

// newGenerator wires the generator against fsys using cfg.
func newGenerator(cfg *config.Config, fsys afero.Fs, stdout, stderr io.Writer, logger logging.Logger) *generator.Generator {
	w := writer.New(fsys, cfg.Generator.BasePath, cfg.Generator.Extension,
		writer.WithOverwrite(cfg.Generator.Overwrite))

	loader := stubs.NewLoader(fsys, stubsDir(cfg))

	shell := hooks.NewShell(hooks.Commands{
		Migration:   cfg.Hooks.Migration,
		Autoload:    cfg.Hooks.Autoload,
		ConfigCache: cfg.Hooks.ConfigCache,
	}, hooks.WithDir(cfg.Hooks.Dir), hooks.WithOutput(stdout, stderr))

	return generator.New(loader, w,
		generator.WithRootNamespace(cfg.Generator.RootNamespace),
		generator.WithCollaborators(shell),
		generator.WithNotifier(newNotifier(stdout)),
		generator.WithLogger(logger),
	)
}

// stubsDir resolves a relative stub override directory against the base path.
func stubsDir(cfg *config.Config) string {
	dir := cfg.Generator.StubsDir
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(cfg.Generator.BasePath, dir)
}

// newNotifier prints each step message on its own styled line.
func newNotifier(out io.Writer) generator.Notifier {
	return generator.NotifierFunc(func(_ context.Context, message string) {
		fmt.Fprintln(out, infoStyle.Render(message))
	})
}
