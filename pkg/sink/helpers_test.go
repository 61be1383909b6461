package sink

import (
	"testing"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/record"
	"github.com/labelforge/labelforge/pkg/symbol"
)

// composeLabel runs one record through the real composer and encoder.
func composeLabel(t *testing.T, rec record.Record, fields []string) *label.Composed {
	t.Helper()
	c := label.NewComposer(symbol.New(), label.DefaultGeometry(), label.AnchorTop)
	composed, err := c.Compose(rec, fields)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	return composed
}
