package sink

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/record"
)

func TestPDFSingleMode(t *testing.T) {
	p := NewPDF(label.DefaultGeometry())

	for i := 0; i < 3; i++ {
		composed := composeLabel(t, record.Record{"lid": fmt.Sprintf("A%d", i)}, nil)
		if err := p.Place(context.Background(), composed); err != nil {
			t.Fatalf("Place %d failed: %v", i, err)
		}
	}

	if p.Pages() != 3 {
		t.Errorf("Pages() = %d, want 3 (one per label)", p.Pages())
	}

	out, err := p.Seal()
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("artifact is not a PDF stream")
	}
}

// Ten labels on pages holding 4 per column and 2 columns flow onto exactly
// two pages, with the page break before the 9th label.
func TestPDFGridPagination(t *testing.T) {
	geom := label.DefaultGeometry()
	labelW := geom.WidthPx() * pxToMM
	labelH := geom.HeightPx() * pxToMM

	// Size the page for exactly 4 rows and 2 columns with no margin or gap.
	p := NewPDF(geom,
		WithMode(ModeGrid),
		WithPageSize(2*labelW, 4*labelH),
		WithMargin(0),
		WithGap(0),
	)

	pagesAt := make([]int, 0, 10)
	for i := 0; i < 10; i++ {
		composed := composeLabel(t, record.Record{"lid": fmt.Sprintf("A%d", i)}, nil)
		if err := p.Place(context.Background(), composed); err != nil {
			t.Fatalf("Place %d failed: %v", i, err)
		}
		pagesAt = append(pagesAt, p.Pages())
	}

	if p.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", p.Pages())
	}
	// Page break happens before label index 8 (the 9th label).
	if pagesAt[7] != 1 || pagesAt[8] != 2 {
		t.Errorf("page counts around break = %v, want break before index 8", pagesAt)
	}

	out, err := p.Seal()
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("artifact is not a PDF stream")
	}
}

func TestPDFGridBorder(t *testing.T) {
	p := NewPDF(label.DefaultGeometry(), WithMode(ModeGrid), WithBorder())

	composed := composeLabel(t, record.Record{"lid": "A1", "name": "Widget"}, []string{"name"})
	if err := p.Place(context.Background(), composed); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if _, err := p.Seal(); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
}

func TestPDFDuplicateIdentifiers(t *testing.T) {
	p := NewPDF(label.DefaultGeometry())

	// Two labels with the same lid must not collide on the embedded image.
	for i := 0; i < 2; i++ {
		composed := composeLabel(t, record.Record{"lid": "SAME"}, nil)
		if err := p.Place(context.Background(), composed); err != nil {
			t.Fatalf("Place %d failed: %v", i, err)
		}
	}
	if _, err := p.Seal(); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if p.Placed() != 2 {
		t.Errorf("Placed() = %d, want 2", p.Placed())
	}
}
