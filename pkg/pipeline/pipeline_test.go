package pipeline

import (
	"testing"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/printer"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"pdf", false},
		{"zpl", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"single", false},
		{"grid", false},
		{"multi", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	if opts.Format != FormatSVG {
		t.Errorf("Format = %q, want svg", opts.Format)
	}
	if opts.Mode != ModeSingle {
		t.Errorf("Mode = %q, want single", opts.Mode)
	}
	if opts.Anchor != AnchorTop {
		t.Errorf("Anchor = %q, want top for svg", opts.Anchor)
	}
	if opts.Geometry == (label.Geometry{}) {
		t.Error("Geometry default not applied")
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}
}

func TestOptionsDefaultAnchorPerSink(t *testing.T) {
	tests := []struct {
		format, mode string
		want         string
	}{
		{FormatSVG, "", AnchorTop},
		{FormatPDF, ModeSingle, AnchorCenter},
		{FormatPDF, ModeGrid, AnchorTop},
		{FormatZPL, "", AnchorTop},
	}

	for _, tt := range tests {
		opts := Options{Format: tt.format, Mode: tt.mode}
		if tt.format == FormatZPL {
			opts.Destination = printer.NewMemoryDestination("test")
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Errorf("%s/%s: %v", tt.format, tt.mode, err)
			continue
		}
		if opts.Anchor != tt.want {
			t.Errorf("%s/%s anchor = %q, want %q", tt.format, tt.mode, opts.Anchor, tt.want)
		}
	}
}

func TestOptionsExplicitAnchorKept(t *testing.T) {
	opts := Options{Format: FormatPDF, Anchor: AnchorTop}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults failed: %v", err)
	}
	if opts.Anchor != AnchorTop {
		t.Errorf("explicit anchor overridden to %q", opts.Anchor)
	}
}

func TestOptionsZPLRequiresDestination(t *testing.T) {
	opts := Options{Format: FormatZPL}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("zpl without destination should fail validation")
	}

	opts = Options{Format: FormatZPL, Destination: printer.NewMemoryDestination("test")}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("zpl with destination failed: %v", err)
	}
}

func TestOptionsInvalidRecovery(t *testing.T) {
	opts := Options{Recovery: "maximum"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid recovery level should fail validation")
	}
}

func TestOptionsBuffers(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{FormatSVG, true},
		{FormatPDF, true},
		{FormatZPL, false},
	}
	for _, tt := range tests {
		o := Options{Format: tt.format}
		if got := o.Buffers(); got != tt.want {
			t.Errorf("Buffers(%s) = %v, want %v", tt.format, got, tt.want)
		}
	}
}
