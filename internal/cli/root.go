// Package cli implementa feedctl, una herramienta de línea de comandos para
// inspeccionar el feed sin levantar el API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"product-feed/internal/app"
	"product-feed/internal/config"
)

// RootOptions guarda las flags globales
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Fixture string
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "feedctl",
		Short: "Inspect the product feed",
		Long:  "feedctl fetches aggregated feed pages, walks a scroll window and resolves product variants.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// los logs de los componentes solo se muestran con --verbose
			if opts.Verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Fixture, "fixture", "", "read catalog and media from a YAML fixture instead of the configured sources")

	cmd.AddCommand(NewPageCommand(opts))
	cmd.AddCommand(NewVariantCommand(opts))
	cmd.AddCommand(NewWalkCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig usa el entorno, o solo el fixture si se pasó --fixture
func (o *RootOptions) loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if o.Fixture != "" {
		cfg.CatalogSource = config.SourceFixture
		cfg.MediaSource = config.SourceFixture
		cfg.FixturePath = o.Fixture
	}
	return cfg
}

func (o *RootOptions) buildStack(ctx context.Context) (*app.Stack, *config.Config, error) {
	cfg := o.loadConfig()
	stack, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "could not build feed sources", err)
	}
	return stack, cfg, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// parseSelections convierte "opt=valor" en pares ordenados
func parseSelections(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, s := range raw {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid selection %q: expected option=value", s))
		}
		out = append(out, [2]string{strings.TrimSpace(key), strings.TrimSpace(value)})
	}
	return out, nil
}
