// Package label computes the positioned content of one label: where the
// symbol sits on the canvas and where each selected text line goes.
package label

// CMToPixels converts physical centimeters to device pixels at 96 DPI.
const CMToPixels = 37.795275590551

// Default canvas values, matching common 38×19 mm label stock.
const (
	DefaultWidthCM  = 3.8
	DefaultHeightCM = 1.9
	DefaultSymbolCM = 1.0

	DefaultPadding    = 5.0  // px from the canvas edge to the symbol
	DefaultTextOffset = 10.0 // px gap between symbol and text anchor
	DefaultFontSize   = 12.0 // px
)

// Geometry describes the label canvas. Physical extents are in centimeters;
// spacing and type metrics are in pixels.
type Geometry struct {
	WidthCM  float64
	HeightCM float64
	SymbolCM float64

	// Padding is the offset from the canvas top-left to the symbol.
	Padding float64

	// TextOffset separates the symbol's right edge from the text anchor,
	// and the symbol's top from the first baseline.
	TextOffset float64

	FontSize float64

	// LinePitch is the vertical distance between consecutive baselines.
	// Zero means FontSize + 2.
	LinePitch float64
}

// DefaultGeometry returns the standard 3.8×1.9 cm canvas with a 1 cm symbol.
func DefaultGeometry() Geometry {
	return Geometry{
		WidthCM:    DefaultWidthCM,
		HeightCM:   DefaultHeightCM,
		SymbolCM:   DefaultSymbolCM,
		Padding:    DefaultPadding,
		TextOffset: DefaultTextOffset,
		FontSize:   DefaultFontSize,
	}
}

// WidthPx returns the canvas width in pixels.
func (g Geometry) WidthPx() float64 { return g.WidthCM * CMToPixels }

// HeightPx returns the canvas height in pixels.
func (g Geometry) HeightPx() float64 { return g.HeightCM * CMToPixels }

// SymbolPx returns the symbol edge length in pixels.
func (g Geometry) SymbolPx() float64 { return g.SymbolCM * CMToPixels }

// Pitch returns the effective line pitch, applying the FontSize+2 default.
func (g Geometry) Pitch() float64 {
	if g.LinePitch > 0 {
		return g.LinePitch
	}
	return g.FontSize + 2
}
