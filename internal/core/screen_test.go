package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", c)
	}

	s.Set(5, 5, 'Y')
	if c := s.GetCell(5, 5); c.Rune != 'Y' || c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorGreen)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("After Clear, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawTextColored(2, 1, "Hi░x", ColorCyan)

	if got := s.Row(1); !strings.HasPrefix(got, "  Hi░x") {
		t.Errorf("Row(1) = %q, expected text at column 2", got)
	}
	if c := s.GetCell(4, 1); c.Rune != '░' || c.Color != ColorCyan {
		t.Errorf("GetCell(4, 1) = %+v, expected cyan '░' (runes are placed one per cell)", c)
	}

	// Clipping
	s.DrawText(18, 0, "ABCD")
	if s.Get(18, 0) != 'A' || s.Get(19, 0) != 'B' {
		t.Error("Text should be clipped at the right edge")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 3)

	s.DrawTextCentered(1, "abc", ColorYellow)

	if got := s.Row(1); got != "    abc    " {
		t.Errorf("Row(1) = %q, expected centered text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)

	s.DrawBox(NewRect(0, 0, 5, 4), ColorGray)

	want := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box should use the given color")
	}

	// Degenerate boxes draw nothing
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 4), ColorGray)
	if s.Get(0, 0) != ' ' {
		t.Error("1-wide box should not be drawn")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawText(0, 1, "abcdef")

	s.FillRect(NewRect(1, 1, 3, 2), '#', ColorBlue)

	if got := s.Row(1); got != "a###ef" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(2); got != " ###  " {
		t.Errorf("Row(2) = %q", got)
	}
	if s.GetCell(2, 2).Color != ColorBlue {
		t.Error("fill should use the given color")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawHLine(2, 1, 4, '=', ColorWhite)

	if got := s.Row(1); got != "  ====    " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(5, 5)

	s.DrawLine(0, 0, 4, 4, '*', ColorRed)

	for i := 0; i < 5; i++ {
		if s.Get(i, i) != '*' {
			t.Errorf("diagonal cell (%d, %d) not drawn", i, i)
		}
	}
	if s.Get(1, 0) != ' ' {
		t.Error("cell off the diagonal should be empty")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(0, 0, 'a', ColorRed)
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'X', ColorBlue)
	s.Set(4, 4, 'Y')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorBlue {
		t.Errorf("content should be preserved, got %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("content cropped away should not come back")
	}
	if s.Get(1, 1) != 'X' {
		t.Error("content should survive growing")
	}

	s.Resize(-1, 2)
	if s.Width() != 0 {
		t.Errorf("Width() = %d, expected negative size clamped to 0", s.Width())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")

	if got := s.Row(0); got != "abcd" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}
