package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/labelforge/labelforge/pkg/label"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
[canvas]
width_cm = 5.0
height_cm = 2.5
font_size = 10.0

[page]
margin_mm = 12.0
border = true
`)

	p, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile failed: %v", err)
	}

	g := p.geometry()
	if g.WidthCM != 5.0 || g.HeightCM != 2.5 {
		t.Errorf("canvas = %gx%g, want 5x2.5", g.WidthCM, g.HeightCM)
	}
	if g.FontSize != 10.0 {
		t.Errorf("FontSize = %g, want 10", g.FontSize)
	}
	// Omitted keys keep the defaults.
	if g.SymbolCM != label.DefaultSymbolCM {
		t.Errorf("SymbolCM = %g, want default %g", g.SymbolCM, label.DefaultSymbolCM)
	}
	if p.Page.MarginMM != 12.0 || !p.Page.Border {
		t.Errorf("page = %+v, want margin 12 and border", p.Page)
	}
}

func TestLoadProfileEmpty(t *testing.T) {
	p, err := loadProfile(writeProfile(t, ""))
	if err != nil {
		t.Fatalf("loadProfile failed: %v", err)
	}
	if p.geometry() != label.DefaultGeometry() {
		t.Error("empty profile should yield the default geometry")
	}
}

func TestLoadProfileUnknownKey(t *testing.T) {
	path := writeProfile(t, "[canvas]\nwidht_cm = 5.0\n")
	if _, err := loadProfile(path); err == nil {
		t.Error("misspelled key should be rejected")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := loadProfile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing profile should fail")
	}
}
