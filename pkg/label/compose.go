package label

import (
	"errors"
	"fmt"

	"github.com/labelforge/labelforge/pkg/record"
	"github.com/labelforge/labelforge/pkg/symbol"
)

// MissingValue is rendered for a selected field the record does not carry.
const MissingValue = "N/A"

// ErrMissingID is returned when a record has no usable label identifier.
// The symbol encoder is never consulted for such records.
var ErrMissingID = errors.New("missing label identifier")

// Encoder generates the symbol asset for one payload.
// *symbol.Encoder satisfies this.
type Encoder interface {
	Encode(payload string) (*symbol.Asset, error)
}

// Anchor selects the vertical placement style of the symbol.
type Anchor int

const (
	// AnchorTop places the symbol at a fixed offset from the canvas top.
	// This is the canonical default for vector output.
	AnchorTop Anchor = iota

	// AnchorCenter centers the symbol against the canvas height, the style
	// used by single-label-per-page documents.
	AnchorCenter
)

// ParseAnchor converts an anchor name ("top", "center") into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "top":
		return AnchorTop, nil
	case "center":
		return AnchorCenter, nil
	default:
		return 0, fmt.Errorf("invalid anchor: %q (must be 'top' or 'center')", s)
	}
}

// TextLine is one positioned line of label text. Coordinates are pixels from
// the canvas top-left; Y is the text baseline.
type TextLine struct {
	Text string
	X, Y float64
}

// Composed is the full positioned content of one label. It is produced fresh
// per record and never mutated afterwards.
type Composed struct {
	ID     string
	Symbol *symbol.Asset

	SymbolX, SymbolY float64
	SymbolSize       float64

	Lines []TextLine
}

// Composer lays out labels. Construct with NewComposer; a Composer is
// stateless and safe for concurrent use.
type Composer struct {
	enc    Encoder
	geom   Geometry
	anchor Anchor
}

// NewComposer creates a composer using enc for symbol generation.
func NewComposer(enc Encoder, geom Geometry, anchor Anchor) *Composer {
	return &Composer{enc: enc, geom: geom, anchor: anchor}
}

// Geometry returns the canvas geometry the composer lays out against.
func (c *Composer) Geometry() Geometry { return c.geom }

// Compose lays out one record: the symbol at the configured anchor, then one
// text line per selected field, top-down at the line pitch. Fields absent
// from the record render as the literal "N/A".
//
// It returns ErrMissingID when the record lacks a non-empty identifier, and
// passes through encoder errors. In both cases no Composed is produced.
func (c *Composer) Compose(rec record.Record, fields []string) (*Composed, error) {
	id := rec.ID()
	if id == "" {
		return nil, ErrMissingID
	}

	asset, err := c.enc.Encode(id)
	if err != nil {
		return nil, err
	}

	size := c.geom.SymbolPx()
	symX := c.geom.Padding
	symY := c.geom.Padding
	if c.anchor == AnchorCenter {
		symY = (c.geom.HeightPx() - size) / 2
	}

	textX := symX + size + c.geom.TextOffset
	textY := symY + c.geom.TextOffset
	pitch := c.geom.Pitch()

	lines := make([]TextLine, 0, len(fields))
	for i, field := range fields {
		value, ok := rec.Get(field)
		if !ok {
			value = MissingValue
		}
		lines = append(lines, TextLine{
			Text: fmt.Sprintf("%s: %s", field, value),
			X:    textX,
			Y:    textY + float64(i)*pitch,
		})
	}

	return &Composed{
		ID:         id,
		Symbol:     asset,
		SymbolX:    symX,
		SymbolY:    symY,
		SymbolSize: size,
		Lines:      lines,
	}, nil
}
