// Package cli implements the labelforge command-line interface.
//
// This package provides commands for rendering label batches from delimited
// input, inspecting the available fields, and managing the artifact cache.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
//   - render: generate labels as SVG, PDF, or a ZPL printer stream
//   - fields: list the field names an input file offers for selection
//   - cache: manage the rendered-artifact cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/labelforge/labelforge/pkg/buildinfo"
)

// Execute runs the labelforge CLI and returns an error if any command fails.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under ctx so signal-driven cancellation
// reaches every command.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "labelforge",
		Short:        "labelforge renders printable QR labels from tabular input",
		Long:         `labelforge turns delimited records into printable identification labels: one scannable QR symbol per record plus a selection of text fields, as SVG, PDF, or a ZPL printer stream.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("labelforge %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
