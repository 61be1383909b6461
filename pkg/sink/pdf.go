package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/labelforge/labelforge/pkg/label"
)

// pxToMM converts composed-label pixel coordinates (96 DPI) to millimeters.
const pxToMM = 25.4 / 96.0

// pxToPt converts a pixel font size to points.
const pxToPt = 72.0 / 96.0

// PDF page modes.
const (
	// ModeSingle gives every label its own page, sized exactly to the
	// label geometry.
	ModeSingle = "single"

	// ModeGrid flows multiple labels onto fixed-size pages.
	ModeGrid = "grid"
)

// ValidModes is the set of supported PDF page modes.
var ValidModes = map[string]bool{ModeSingle: true, ModeGrid: true}

// Default grid-mode page setup (A4 portrait).
const (
	DefaultPageWidthMM  = 210.0
	DefaultPageHeightMM = 297.0
	DefaultMarginMM     = 10.0
	DefaultGapMM        = 2.0
)

// PDFOption configures a PDF sink.
type PDFOption func(*PDF)

// WithMode selects ModeSingle or ModeGrid. Default is ModeSingle.
func WithMode(mode string) PDFOption {
	return func(p *PDF) { p.mode = mode }
}

// WithBorder draws a rectangle around each label cell.
func WithBorder() PDFOption {
	return func(p *PDF) { p.border = true }
}

// WithPageSize sets the grid-mode page extent in millimeters.
func WithPageSize(w, h float64) PDFOption {
	return func(p *PDF) { p.pageW, p.pageH = w, h }
}

// WithMargin sets the grid-mode page margin in millimeters.
func WithMargin(mm float64) PDFOption {
	return func(p *PDF) { p.margin = mm }
}

// WithGap sets the grid-mode spacing between label cells in millimeters.
func WithGap(mm float64) PDFOption {
	return func(p *PDF) { p.gap = mm }
}

// PDF buffers labels into a paged document. In grid mode a page cursor flows
// labels top-to-bottom then left-to-right; page transitions happen between
// labels, never inside one, so a page break can never split a label.
type PDF struct {
	geom   label.Geometry
	mode   string
	border bool

	pageW, pageH float64
	margin, gap  float64

	doc    *fpdf.Fpdf
	cursor *pageCursor
	placed int
}

// NewPDF creates a PDF sink for the given canvas geometry.
func NewPDF(geom label.Geometry, opts ...PDFOption) *PDF {
	p := &PDF{
		geom:   geom,
		mode:   ModeSingle,
		pageW:  DefaultPageWidthMM,
		pageH:  DefaultPageHeightMM,
		margin: DefaultMarginMM,
		gap:    DefaultGapMM,
	}
	for _, opt := range opts {
		opt(p)
	}

	labelW := geom.WidthPx() * pxToMM
	labelH := geom.HeightPx() * pxToMM

	if p.mode == ModeGrid {
		p.doc = fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           fpdf.SizeType{Wd: p.pageW, Ht: p.pageH},
		})
		p.cursor = newPageCursor(p.pageW, p.pageH, p.margin, p.gap, labelW, labelH)
	} else {
		p.doc = fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           fpdf.SizeType{Wd: labelW, Ht: labelH},
		})
	}
	p.doc.SetMargins(0, 0, 0)
	p.doc.SetAutoPageBreak(false, 0)
	p.doc.SetFont("Helvetica", "", geom.FontSize*pxToPt)
	return p
}

// Place draws one label onto the document.
func (p *PDF) Place(ctx context.Context, l *label.Composed) error {
	var ox, oy float64
	if p.mode == ModeGrid {
		x, y, newPage := p.cursor.next()
		if p.placed == 0 || newPage {
			p.doc.AddPage()
		}
		ox, oy = x, y
	} else {
		p.doc.AddPage()
	}

	p.drawLabel(ox, oy, l)
	if p.doc.Err() {
		return fmt.Errorf("%w: %v", ErrWrite, p.doc.Error())
	}

	p.placed++
	return nil
}

// drawLabel renders the symbol, text lines, and optional border at the cell
// origin (ox, oy).
func (p *PDF) drawLabel(ox, oy float64, l *label.Composed) {
	// Register under a per-placement name so identical identifiers in one
	// batch stay independent.
	name := fmt.Sprintf("symbol-%d", p.placed)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(l.Symbol.PNG))
	p.doc.ImageOptions(name,
		ox+l.SymbolX*pxToMM, oy+l.SymbolY*pxToMM,
		l.SymbolSize*pxToMM, l.SymbolSize*pxToMM,
		false, opts, 0, "")

	for _, line := range l.Lines {
		p.doc.Text(ox+line.X*pxToMM, oy+line.Y*pxToMM, line.Text)
	}

	if p.border {
		p.doc.Rect(ox, oy, p.geom.WidthPx()*pxToMM, p.geom.HeightPx()*pxToMM, "D")
	}
}

// Seal finalizes the last page and returns the complete document.
func (p *PDF) Seal() ([]byte, error) {
	if p.doc.Err() {
		return nil, fmt.Errorf("%w: %v", ErrWrite, p.doc.Error())
	}

	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return buf.Bytes(), nil
}

// Placed returns the number of labels drawn so far.
func (p *PDF) Placed() int { return p.placed }

// Pages returns the number of pages in the document so far.
func (p *PDF) Pages() int { return p.doc.PageCount() }

var _ Sink = (*PDF)(nil)
