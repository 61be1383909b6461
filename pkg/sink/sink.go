// Package sink provides the output back ends that turn composed labels into
// final artifacts.
//
// # Overview
//
// A sink accepts positioned labels one at a time via Place and produces its
// artifact via Seal. This package provides three back ends:
//
//   - SVG: one sized vector group per label, concatenated into one document
//   - PDF: paged output, one label per page or greedy grid flow
//   - ZPL: printer command stream, transmitted immediately per label
//
// Buffering sinks (SVG, PDF) accumulate until Seal. The ZPL sink forwards
// each block to its destination as a side effect of Place; its Seal returns
// an empty artifact.
//
// Sinks are single-use: construct a fresh sink per batch.
package sink

import (
	"context"
	"errors"

	"github.com/labelforge/labelforge/pkg/label"
)

// ErrWrite indicates an I/O failure while building the artifact. Unlike
// per-record composition errors, a write failure aborts the whole batch.
var ErrWrite = errors.New("sink write failed")

// Sink accepts composed labels and produces the batch artifact.
type Sink interface {
	// Place adds one label to the artifact. For the printer sink this
	// transmits immediately; errors wrapping printer.ErrTransmit are fatal
	// for that label only, errors wrapping ErrWrite abort the batch.
	Place(ctx context.Context, l *label.Composed) error

	// Seal finalizes and returns the artifact. Immediate-mode sinks return
	// an empty artifact.
	Seal() ([]byte, error)
}

// Format names the available sink kinds.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatZPL = "zpl"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatZPL: true,
}
