package render

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"rgba(245,158,11,0.4)", RGBA{RGB{245, 158, 11}, 0.4}},
		{"rgba(255, 255, 255, 0.5)", RGBA{RGB{255, 255, 255}, 0.5}},
		{"rgb(1,2,3)", RGBA{RGB{1, 2, 3}, 1}},
		{"#f59e0b", RGBA{RGB{245, 158, 11}, 1}},
		{"#6366f1@0.3", RGBA{RGB{99, 102, 241}, 0.3}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Rejects(t *testing.T) {
	for _, in := range []string{"", "red", "rgba(1,2)", "rgba(300,0,0,1)", "#zzzzzz", "rgba(1,2,3,x)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{10, 20, 30}
	b := RGB{200, 100, 50}
	if Blend(a, b, 0) != a {
		t.Error("Blend alpha 0 should return destination")
	}
	if Blend(a, b, 1) != b {
		t.Error("Blend alpha 1 should return source")
	}
	mid := Blend(RGB{0, 0, 0}, RGB{200, 200, 200}, 0.5)
	if mid.R != 100 {
		t.Errorf("Blend midpoint = %d, want 100", mid.R)
	}
}

func TestAddClamps(t *testing.T) {
	got := Add(RGB{200, 10, 0}, RGB{100, 10, 0}, 1.0)
	if got != (RGB{255, 20, 0}) {
		t.Errorf("Add = %+v", got)
	}
}

func TestMixEndpoints(t *testing.T) {
	a := RGB{10, 12, 24}
	b := RGB{245, 158, 11}
	if Mix(a, b, 0) != a || Mix(a, b, 1) != b {
		t.Error("Mix endpoints should return inputs unchanged")
	}
	m := Mix(a, b, 0.5)
	if m.R <= a.R || m.R >= b.R {
		t.Errorf("Mix midpoint red %d not between %d and %d", m.R, a.R, b.R)
	}
}

func TestCanvas_SizeAndResize(t *testing.T) {
	c := NewCanvas(100, 37, DefaultCanvasConfig())
	w, h := c.Size()
	if w != 800 || h != 592 {
		t.Fatalf("Size = %vx%v, want 800x592", w, h)
	}

	c.Resize(400, 300)
	if c.Cols() != 50 || c.Rows() != 18 {
		t.Errorf("Resize(400,300) grid = %dx%d, want 50x18", c.Cols(), c.Rows())
	}
	if len(c.Cells()) != 50*18 {
		t.Errorf("Cells length %d", len(c.Cells()))
	}
}

func TestCanvas_FillCirclePlotsContainingCell(t *testing.T) {
	c := NewCanvas(10, 5, DefaultCanvasConfig())
	col := MustColor("rgba(255,255,255,1)")

	c.FillCircle(20, 40, 1, col, Stroke{Alpha: 1})
	if got := c.At(2, 2).Rune; got != '·' {
		t.Errorf("Small disc glyph = %q, want '·'", got)
	}

	c.FillCircle(60, 8, 3, col, Stroke{Alpha: 1})
	if got := c.At(7, 0).Rune; got != '●' {
		t.Errorf("Large disc glyph = %q, want '●'", got)
	}
}

func TestCanvas_ClipsOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4, DefaultCanvasConfig())
	col := MustColor("#ffffff")

	c.FillCircle(-30, -30, 2, col, Stroke{Alpha: 1, Glow: 15})
	c.FillCircle(1000, 1000, 2, col, Stroke{Alpha: 1})
	c.StrokeLine(-100, -100, -50, -50, 1, col, Stroke{Alpha: 1})

	for i, cell := range c.Cells() {
		if cell.Rune != ' ' {
			t.Fatalf("Cell %d modified by out-of-bounds draw: %q", i, cell.Rune)
		}
	}
}

func TestCanvas_ZeroAreaIsNoop(t *testing.T) {
	c := NewCanvas(0, 0, DefaultCanvasConfig())
	col := MustColor("#ffffff")
	c.Clear()
	c.FillCircle(0, 0, 3, col, Stroke{Alpha: 1, Glow: 15})
	c.StrokeLine(0, 0, 10, 10, 1, col, Stroke{Alpha: 1})
	c.DrawText(0, 0, "hello", RGB{R: 255, G: 255, B: 255})

	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Zero canvas size = %vx%v", w, h)
	}
}

func TestCanvas_StrokeLineVerticalStreak(t *testing.T) {
	c := NewCanvas(10, 10, DefaultCanvasConfig())
	col := MustColor("#6366f1")

	// Two rows tall, almost vertical
	c.StrokeLine(20, 10, 20.5, 40, 1, col, Stroke{Alpha: 1})
	for row := 0; row <= 2; row++ {
		if got := c.At(2, row).Rune; got != '│' {
			t.Errorf("Row %d glyph = %q, want '│'", row, got)
		}
	}
}

func TestCanvas_FaintLineDoesNotOverwriteParticle(t *testing.T) {
	c := NewCanvas(10, 10, DefaultCanvasConfig())
	white := MustColor("#ffffff")

	c.FillCircle(12, 8, 2, white, Stroke{Alpha: 0.8})
	c.StrokeLine(0, 8, 79, 8, 0.5, white, Stroke{Alpha: 0.1})

	if got := c.At(1, 0).Rune; got != '•' {
		t.Errorf("Particle glyph overwritten by faint line: %q", got)
	}
	if got := c.At(5, 0).Rune; got != '─' {
		t.Errorf("Line glyph = %q, want '─'", got)
	}
}

func TestCanvas_GlowBrightensBackground(t *testing.T) {
	cfg := DefaultCanvasConfig()
	c := NewCanvas(10, 10, cfg)

	c.FillCircle(40, 80, 2, MustColor("#f59e0b"), Stroke{Alpha: 1, Glow: 15})
	bg := c.At(5, 5).Bg
	if bg.R <= cfg.Background.R {
		t.Errorf("Expected glow to brighten background, got %+v", bg)
	}

	c.Clear()
	if c.At(5, 5).Bg != cfg.Background {
		t.Error("Clear should restore background")
	}
}

func TestCanvas_DrawTextWideRunes(t *testing.T) {
	c := NewCanvas(10, 2, DefaultCanvasConfig())
	end := c.DrawText(0, 1, "⛅ok", RGB{R: 255, G: 255, B: 255})

	if c.At(0, 1).Rune != '⛅' {
		t.Errorf("First cell = %q", c.At(0, 1).Rune)
	}
	if c.At(1, 1).Rune != 0 {
		t.Errorf("Continuation cell = %q, want 0", c.At(1, 1).Rune)
	}
	if c.At(2, 1).Rune != 'o' || end != 4 {
		t.Errorf("Text layout wrong, end=%d", end)
	}

	// Text wins over later particle glyphs
	c.FillCircle(20, 24, 1, MustColor("#ffffff"), Stroke{Alpha: 1})
	if c.At(2, 1).Rune != 'o' {
		t.Error("Particle overwrote HUD text")
	}
}
