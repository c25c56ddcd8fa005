package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/conneroisu/modforge/internal/config"
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/conneroisu/modforge/internal/render"
	"github.com/conneroisu/modforge/internal/stubs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// StubInfo describes one artifact stub for listing.
type StubInfo struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Stub   string   `json:"stub" yaml:"stub"`
	Source string   `json:"source" yaml:"source"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

func newStubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stubs",
		Short: "Inspect and publish the artifact stubs",
		Long: `Inspect and publish the stubs the generator renders.

Examples:
  modforge stubs list                  # List stubs and their placeholders
  modforge stubs list --format yaml    # Machine readable listing
  modforge stubs publish --dir ./stubs # Copy the stubs for customization`,
	}

	cmd.AddCommand(newStubsListCmd())
	cmd.AddCommand(newStubsPublishCmd())

	return cmd
}

func newStubsListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stubs with their sources and placeholders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runStubsList(cmd.OutOrStdout(), stubs.NewLoader(afero.NewOsFs(), stubsDir(cfg)), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml, json)")

	return cmd
}

// listStubs collects the stub descriptions in build order.
func listStubs(loader *stubs.DirLoader) []StubInfo {
	kinds := naming.Kinds()
	infos := make([]StubInfo, 0, len(kinds))
	for _, kind := range kinds {
		declared := render.Declared(kind)
		tokens := make([]string, 0, len(declared))
		for _, token := range declared {
			tokens = append(tokens, string(token))
		}
		infos = append(infos, StubInfo{
			Kind:   string(kind),
			Stub:   stubs.FileName(kind),
			Source: loader.Source(kind),
			Tokens: tokens,
		})
	}
	return infos
}

func runStubsList(out io.Writer, loader *stubs.DirLoader, format string) error {
	infos := listStubs(loader)

	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(infos)
	case "text":
		for _, info := range infos {
			fmt.Fprintf(out, "%-16s %-26s %s\n", info.Kind, info.Stub, info.Source)
			fmt.Fprintf(out, "  tokens: %s\n", strings.Join(info.Tokens, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, yaml, json)", format)
	}
}

func newStubsPublishCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Copy the embedded stubs into a directory",
		Long: `Copy the embedded stubs into a directory so they can be customized.

Point generator.stubs_dir at the directory afterwards. Stubs missing from the
directory fall back to the embedded copies. Existing files are kept unless
--force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			target := dir
			if !filepath.IsAbs(target) {
				target = filepath.Join(cfg.Generator.BasePath, target)
			}

			written, err := stubs.Publish(afero.NewOsFs(), target, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintln(out, infoStyle.Render("Published "+path))
			}
			if len(written) == 0 {
				fmt.Fprintln(out, "Nothing to publish, every stub already exists in", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "stubs", "target directory, relative to the base path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing stub files")

	return cmd
}
