package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/printer"
)

// pxToDots converts composed-label pixel coordinates (96 DPI) to printer
// dots at the common 203 DPI print head resolution.
const pxToDots = 203.0 / 96.0

// DefaultSeparator joins the selected fields into the single text line a
// printer command can carry.
const DefaultSeparator = " | "

// ZPLOption configures a ZPL sink.
type ZPLOption func(*ZPL)

// WithSeparator sets the field join separator.
func WithSeparator(sep string) ZPLOption {
	return func(z *ZPL) { z.separator = sep }
}

// WithMagnification sets the QR module magnification (1-10).
func WithMagnification(mag int) ZPLOption {
	return func(z *ZPL) { z.magnification = mag }
}

// ZPL serializes each label into one ^XA...^XZ command block and forwards it
// to the destination immediately. Nothing is buffered: a block that fails to
// transmit is lost for that label only, and Seal returns an empty artifact.
type ZPL struct {
	geom          label.Geometry
	dest          printer.Destination
	separator     string
	magnification int

	jobID  string
	placed int
}

// NewZPL creates a printer command sink delivering to dest. Each sink gets a
// fresh job ID that is stamped into every block for traceability.
func NewZPL(geom label.Geometry, dest printer.Destination, opts ...ZPLOption) *ZPL {
	z := &ZPL{
		geom:          geom,
		dest:          dest,
		separator:     DefaultSeparator,
		magnification: 4,
		jobID:         uuid.NewString(),
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

// JobID returns the print job identifier stamped into each block.
func (z *ZPL) JobID() string { return z.jobID }

// Place serializes l and transmits the block. Errors wrap
// printer.ErrTransmit; the block may have been partially written, so the
// caller must not retry it.
func (z *ZPL) Place(ctx context.Context, l *label.Composed) error {
	block := z.block(l)
	if err := z.dest.Transmit(ctx, block); err != nil {
		return fmt.Errorf("label %q: %w", l.ID, err)
	}
	z.placed++
	return nil
}

// block builds the command block: a QR draw command at the symbol origin and
// one text command with the fields joined by the separator.
func (z *ZPL) block(l *label.Composed) []byte {
	texts := make([]string, 0, len(l.Lines))
	for _, line := range l.Lines {
		texts = append(texts, line.Text)
	}

	fontH := int(z.geom.FontSize * pxToDots)
	var textX, textY int
	if len(l.Lines) > 0 {
		textX = int(l.Lines[0].X * pxToDots)
		textY = int(l.Lines[0].Y * pxToDots)
	} else {
		textX = int((l.SymbolX + l.SymbolSize) * pxToDots)
		textY = int(l.SymbolY * pxToDots)
	}

	var buf bytes.Buffer
	buf.WriteString("^XA\n")
	fmt.Fprintf(&buf, "^FX job %s label %d\n", z.jobID, z.placed)
	fmt.Fprintf(&buf, "^FO%d,%d^BQN,2,%d^FDQA,%s^FS\n",
		int(l.SymbolX*pxToDots), int(l.SymbolY*pxToDots), z.magnification, sanitize(l.ID))
	fmt.Fprintf(&buf, "^FO%d,%d^A0N,%d,%d^FD%s^FS\n",
		textX, textY, fontH, fontH, sanitize(strings.Join(texts, z.separator)))
	buf.WriteString("^XZ\n")
	return buf.Bytes()
}

// sanitize strips the ZPL control prefixes from field data.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "^", " ")
	return strings.ReplaceAll(s, "~", " ")
}

// Seal is a no-op: every block was already delivered via Place.
func (z *ZPL) Seal() ([]byte, error) {
	return nil, nil
}

// Placed returns the number of blocks delivered.
func (z *ZPL) Placed() int { return z.placed }

var _ Sink = (*ZPL)(nil)
