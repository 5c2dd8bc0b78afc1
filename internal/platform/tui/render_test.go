package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/deathray/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(0, 1, "red", core.ColorRed)
	s.DrawTextColored(4, 1, "blue", core.ColorBrightBlue)

	out := RenderScreen(s)

	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("rendered %d line breaks, expected 2", lines)
	}
	for _, want := range []string{"plain", "red", "blue"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}

	// Unknown colors fall back to the default style
	if got := styleFor(core.Color(250)).Render("x"); !strings.Contains(got, "x") {
		t.Errorf("fallback style rendered %q", got)
	}
}
