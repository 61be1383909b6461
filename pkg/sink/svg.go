package sink

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/labelforge/labelforge/pkg/label"
)

// SVG renders each label as an independently sized nested <svg> group,
// stacked vertically into one self-contained document. The symbol is
// embedded as an inline base64 PNG; text elements carry explicit pixel
// coordinates and font size.
type SVG struct {
	geom   label.Geometry
	body   bytes.Buffer
	placed int
	sealed bool
}

// NewSVG creates an SVG sink for the given canvas geometry.
func NewSVG(geom label.Geometry) *SVG {
	return &SVG{geom: geom}
}

// Place appends one label group to the document body.
func (s *SVG) Place(ctx context.Context, l *label.Composed) error {
	if s.sealed {
		return fmt.Errorf("%w: sink already sealed", ErrWrite)
	}

	w, h := s.geom.WidthPx(), s.geom.HeightPx()
	y := float64(s.placed) * h

	fmt.Fprintf(&s.body, `  <svg x="0" y="%.2f" width="%.2f" height="%.2f">`+"\n", y, w, h)
	fmt.Fprintf(&s.body, `    <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		l.Symbol.DataURI(), l.SymbolX, l.SymbolY, l.SymbolSize, l.SymbolSize)
	for _, line := range l.Lines {
		fmt.Fprintf(&s.body, `    <text x="%.2f" y="%.2f" font-size="%.0fpx" fill="black">%s</text>`+"\n",
			line.X, line.Y, s.geom.FontSize, html.EscapeString(line.Text))
	}
	s.body.WriteString("  </svg>\n")

	s.placed++
	return nil
}

// Seal wraps the accumulated groups in the document root and returns the
// complete SVG.
func (s *SVG) Seal() ([]byte, error) {
	s.sealed = true

	w := s.geom.WidthPx()
	totalH := float64(s.placed) * s.geom.HeightPx()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.2f" height="%.2f">`+"\n", w, totalH)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// Placed returns the number of labels in the document.
func (s *SVG) Placed() int { return s.placed }

var _ Sink = (*SVG)(nil)
