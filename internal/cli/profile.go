package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/labelforge/labelforge/pkg/label"
)

// profile is a TOML label profile: the canvas geometry plus, for grid PDF
// output, the page setup. Every key is optional; omitted keys keep the
// built-in defaults.
//
//	[canvas]
//	width_cm = 3.8
//	height_cm = 1.9
//	symbol_cm = 1.0
//	padding = 5.0
//	text_offset = 10.0
//	font_size = 12.0
//	line_pitch = 14.0
//
//	[page]
//	width_mm = 210.0
//	height_mm = 297.0
//	margin_mm = 10.0
//	gap_mm = 2.0
//	border = true
type profile struct {
	Canvas canvasProfile `toml:"canvas"`
	Page   pageProfile   `toml:"page"`
}

type canvasProfile struct {
	WidthCM    float64 `toml:"width_cm"`
	HeightCM   float64 `toml:"height_cm"`
	SymbolCM   float64 `toml:"symbol_cm"`
	Padding    float64 `toml:"padding"`
	TextOffset float64 `toml:"text_offset"`
	FontSize   float64 `toml:"font_size"`
	LinePitch  float64 `toml:"line_pitch"`
}

type pageProfile struct {
	WidthMM  float64 `toml:"width_mm"`
	HeightMM float64 `toml:"height_mm"`
	MarginMM float64 `toml:"margin_mm"`
	GapMM    float64 `toml:"gap_mm"`
	Border   bool    `toml:"border"`
}

// loadProfile reads a TOML profile from path. Unknown keys are rejected so
// a typo never silently falls back to a default.
func loadProfile(path string) (*profile, error) {
	var p profile
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("profile %s: unknown key %q", path, undecoded[0].String())
	}
	return &p, nil
}

// geometry merges the profile over the default canvas.
func (p *profile) geometry() label.Geometry {
	g := label.DefaultGeometry()
	if p.Canvas.WidthCM > 0 {
		g.WidthCM = p.Canvas.WidthCM
	}
	if p.Canvas.HeightCM > 0 {
		g.HeightCM = p.Canvas.HeightCM
	}
	if p.Canvas.SymbolCM > 0 {
		g.SymbolCM = p.Canvas.SymbolCM
	}
	if p.Canvas.Padding > 0 {
		g.Padding = p.Canvas.Padding
	}
	if p.Canvas.TextOffset > 0 {
		g.TextOffset = p.Canvas.TextOffset
	}
	if p.Canvas.FontSize > 0 {
		g.FontSize = p.Canvas.FontSize
	}
	if p.Canvas.LinePitch > 0 {
		g.LinePitch = p.Canvas.LinePitch
	}
	return g
}
