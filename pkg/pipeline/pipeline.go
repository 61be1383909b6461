// Package pipeline ties the label stages together: read records, compose,
// render through a sink, cache the artifact.
//
// CLI and embedding callers share this package so behavior stays identical
// across entry points. The stages are:
//
//  1. Read: parse delimited input into an ordered record source
//  2. Render: drive every record through the batch renderer into a sink
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Format: pipeline.FormatSVG,
//	    Fields: []string{"name", "location"},
//	}
//	result, err := runner.Execute(ctx, input, opts)
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/printer"
	"github.com/labelforge/labelforge/pkg/sink"
	"github.com/labelforge/labelforge/pkg/symbol"
)

// Output formats. These mirror the sink package so callers only import one.
const (
	FormatSVG = sink.FormatSVG
	FormatPDF = sink.FormatPDF
	FormatZPL = sink.FormatZPL
)

// PDF page modes.
const (
	ModeSingle = sink.ModeSingle
	ModeGrid   = sink.ModeGrid
)

// Anchor style names.
const (
	AnchorTop    = "top"
	AnchorCenter = "center"
)

// Options configures one pipeline run.
type Options struct {
	// Fields is the ordered field selection. Empty means every field the
	// input header names.
	Fields []string `json:"fields,omitempty"`

	// Format selects the sink: svg, pdf, or zpl. Default svg.
	Format string `json:"format,omitempty"`

	// Mode selects the PDF page mode: single or grid. Default single.
	Mode string `json:"mode,omitempty"`

	// Anchor selects symbol placement: top or center. Empty picks the
	// sink's conventional style (center for single-label pages, top
	// otherwise).
	Anchor string `json:"anchor,omitempty"`

	// Recovery is the symbol error-correction level. Default low.
	Recovery string `json:"recovery,omitempty"`

	// Geometry is the label canvas. Zero value means the default canvas.
	Geometry label.Geometry `json:"geometry"`

	// Border draws cell borders in PDF grid output.
	Border bool `json:"border,omitempty"`

	// Grid page setup in millimeters. Zero values take the sink defaults.
	PageWidthMM  float64 `json:"page_width_mm,omitempty"`
	PageHeightMM float64 `json:"page_height_mm,omitempty"`
	MarginMM     float64 `json:"margin_mm,omitempty"`
	GapMM        float64 `json:"gap_mm,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Destination receives printer command blocks. Required for zpl.
	Destination printer.Destination `json:"-"`

	// Logger for stage progress. Nil disables logging.
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, pdf, zpl)", format)
	}
	return nil
}

// ValidateMode checks that a PDF page mode is valid.
func ValidateMode(mode string) error {
	if !sink.ValidModes[mode] {
		return fmt.Errorf("invalid mode: %q (must be 'single' or 'grid')", mode)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Mode == "" {
		o.Mode = ModeSingle
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}

	if o.Anchor == "" {
		o.Anchor = o.defaultAnchor()
	}
	if _, err := label.ParseAnchor(o.Anchor); err != nil {
		return err
	}

	if o.Recovery == "" {
		o.Recovery = symbol.RecoveryLow.String()
	}
	if _, err := symbol.ParseRecovery(o.Recovery); err != nil {
		return err
	}

	if o.Geometry == (label.Geometry{}) {
		o.Geometry = label.DefaultGeometry()
	}

	if o.Format == FormatZPL && o.Destination == nil {
		return fmt.Errorf("zpl output requires a printer destination")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// defaultAnchor is the sink's conventional symbol placement: single-label
// pages center the symbol against the canvas, everything else pins it to
// the top offset.
func (o *Options) defaultAnchor() string {
	if o.Format == FormatPDF && o.Mode == ModeSingle {
		return AnchorCenter
	}
	return AnchorTop
}

// Buffers reports whether the selected sink accumulates an artifact. Only
// buffering output is cacheable; the printer stream is a side effect.
func (o *Options) Buffers() bool {
	return o.Format != FormatZPL
}
