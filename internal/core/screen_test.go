package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Expected 6x3, got %dx%d", s.Width(), s.Height())
	}
	want := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 2}} {
		s.SetColored(p[0], p[1], 'x', ColorRed)
		if got := s.GetCell(p[0], p[1]); got != blankCell {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], got)
		}
	}
	if strings.ContainsRune(s.String(), 'x') {
		t.Error("Out-of-bounds writes leaked into the buffer")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '*', ColorRed)
	if cell := s.GetCell(1, 1); cell.Rune != '*' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red '*'", cell)
	}

	s.Set(1, 1, '+')
	if c := s.GetCell(1, 1); c.Color != ColorDefault || s.Get(1, 1) != '+' {
		t.Errorf("Set() should write an uncolored rune, got %+v", c)
	}

	s.SetColored(0, 0, 'x', ColorCyan)
	s.Clear()
	if c := s.GetCell(0, 0); c != blankCell {
		t.Errorf("Clear() should blank cells, got %+v", c)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawTextColored(0, 0, "AAAAA", ColorDefault)
	s.DrawTextColored(0, 2, "CCCCC", ColorYellow)

	s.Resize(3, 4)
	want := "AAA\n   \nCCC\n   "
	if got := s.String(); got != want {
		t.Errorf("After shrink width: %q, expected %q", got, want)
	}
	if s.GetCell(2, 2).Color != ColorYellow {
		t.Error("Resize dropped cell colors")
	}

	s.Resize(6, 1)
	if got := s.String(); got != "AAA   " {
		t.Errorf("After grow width: %q", got)
	}

	s.Resize(-2, 5)
	if s.Width() != 0 || s.String() != "\n\n\n\n" {
		t.Errorf("Negative width should clamp to 0, got %dx%d %q", s.Width(), s.Height(), s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"fits", 1, "ab", " ab   "},
		{"clipped right", 4, "hello", "    he"},
		{"clipped left", -2, "hello", "llo   "},
		{"multibyte", 0, "▲▼ok", "▲▼ok  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(6, 1)
			s.DrawTextColored(tc.x, 0, tc.text, ColorBrightGreen)
			if got := s.String(); got != tc.want {
				t.Errorf("String() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCenteredColored(0, "★★", ColorWhite)
	if s.Get(4, 0) != '★' || s.Get(5, 0) != '★' {
		t.Errorf("Centered multibyte text misplaced: %q", s.String())
	}
	if s.GetCell(4, 0).Color != ColorWhite {
		t.Error("Expected colored text")
	}
}

func TestScreenDrawBoxColored(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(0, 0, 6, 4), '.')
	s.DrawBoxColored(NewRect(1, 0, 4, 3), ColorOrange)

	want := ".┌──┐.\n" +
		".│..│.\n" +
		".└──┘.\n" +
		"......"
	if got := s.String(); got != want {
		t.Errorf("Box:\n%s\nexpected:\n%s", got, want)
	}
	if s.GetCell(1, 1).Color != ColorOrange || s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Only the outline should be colored")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawHLine(2, 1, 10, '-', ColorGray)
	if got := s.String(); got != "        \n  ------" {
		t.Errorf("DrawHLine: %q", got)
	}
	if s.GetCell(7, 1).Color != ColorGray {
		t.Error("Expected gray line")
	}
}
