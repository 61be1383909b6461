package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/labelforge/labelforge/pkg/cache"
	"github.com/labelforge/labelforge/pkg/pipeline"
	"github.com/labelforge/labelforge/pkg/printer"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from input when empty
	fields   string // comma-separated field selection
	format   string // output format: "svg", "pdf", "zpl"
	mode     string // pdf page mode: "single" or "grid"
	anchor   string // symbol anchor: "top", "center", "" = sink default
	recovery string // symbol error-correction level
	profile  string // TOML label profile path
	border   bool   // draw cell borders in pdf grid output
	printerr string // printer destination host:port for zpl
	refresh  bool   // re-render even on a cache hit
	noCache  bool   // disable the artifact cache entirely
}

// newRenderCmd creates the render command.
//
// Default settings:
//   - format: svg
//   - fields: every field the input header names
//   - geometry: 3.8×1.9 cm canvas with a 1 cm symbol
//   - pdf mode: single (one label per page)
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format: pipeline.FormatSVG,
		mode:   pipeline.ModeSingle,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render labels from a delimited input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := pipeline.ValidateMode(opts.mode); err != nil {
				return err
			}
			if opts.format == pipeline.FormatZPL && opts.printerr == "" {
				return fmt.Errorf("--printer is required for zpl output")
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVar(&opts.fields, "fields", "", "comma-separated fields to print (default: all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, zpl")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "pdf page mode: single (default), grid")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "symbol anchor: top, center (default: per format)")
	cmd.Flags().StringVar(&opts.recovery, "recovery", "", "QR error correction: low (default), medium, high, highest")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "TOML label profile")
	cmd.Flags().BoolVar(&opts.border, "border", false, "draw borders around label cells (pdf grid)")
	cmd.Flags().StringVar(&opts.printerr, "printer", "", "printer destination host:port (zpl)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when the artifact is cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// parseFields splits the --fields flag, dropping empty entries.
func parseFields(s string) []string {
	if s == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// outputPath derives where the artifact lands: the --output flag, or the
// input name with the format extension.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender executes the pipeline for one input file and writes the result.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	popts := pipeline.Options{
		Fields:   parseFields(opts.fields),
		Format:   opts.format,
		Mode:     opts.mode,
		Anchor:   opts.anchor,
		Recovery: opts.recovery,
		Border:   opts.border,
		Refresh:  opts.refresh,
		Logger:   logger,
	}

	if opts.profile != "" {
		p, err := loadProfile(opts.profile)
		if err != nil {
			return err
		}
		popts.Geometry = p.geometry()
		popts.PageWidthMM = p.Page.WidthMM
		popts.PageHeightMM = p.Page.HeightMM
		popts.MarginMM = p.Page.MarginMM
		popts.GapMM = p.Page.GapMM
		if p.Page.Border {
			popts.Border = true
		}
	}

	if opts.format == pipeline.FormatZPL {
		popts.Destination = printer.NewNetDestination(opts.printerr)
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	runner := pipeline.NewRunner(openCache(logger, opts.noCache), logger)
	defer runner.Close()

	result, err := runner.Execute(ctx, in, popts)
	if err != nil {
		reportFailures(result)
		return err
	}
	reportFailures(result)

	if popts.Buffers() {
		path := outputPath(opts.output, input, opts.format)
		if err := writeArtifact(path, result.Artifact); err != nil {
			return err
		}
		if result.CacheHit {
			printInfo("Served from cache")
		}
		printSuccess("Generated %s", styleHighlight.Render(path))
		return nil
	}

	printSuccess("Sent %d label(s) to %s", result.Batch.Succeeded, styleHighlight.Render(opts.printerr))
	return nil
}

// reportFailures prints one warning per skipped record.
func reportFailures(result *pipeline.Result) {
	if result == nil || result.Batch == nil {
		return
	}
	for _, f := range result.Batch.Failures {
		printWarning("Skipped %s", f)
	}
	if result.Batch.Partial {
		printWarning("Batch is partial: not every record was processed")
	}
}

// writeArtifact writes data to path, "-" meaning stdout.
func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// openCache opens the artifact cache, degrading to no caching when the
// cache directory is unavailable.
func openCache(logger *log.Logger, disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debugf("cache unavailable: %v", err)
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debugf("cache unavailable: %v", err)
		return cache.NewNullCache()
	}
	return c
}
