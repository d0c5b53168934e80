package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightGreen, "10"},
		{ColorOrange, "208"},
		{ColorGray, "245"},
		{colorCount, ""},
		{Color(200), ""},
	}
	for _, tc := range tests {
		if got := tc.c.ANSI(); got != tc.want {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tc.c, got, tc.want)
		}
	}
}

func TestColorFade(t *testing.T) {
	tests := []struct {
		alpha float64
		want  Color
	}{
		{0, ColorGray},
		{0.2, ColorGray},
		{0.5, ColorWhite},
		{0.7, ColorBrightYellow},
		{1, ColorBrightYellow},
	}
	for _, tc := range tests {
		if got := ColorBrightYellow.Fade(tc.alpha); got != tc.want {
			t.Errorf("Fade(%v) = %v, expected %v", tc.alpha, got, tc.want)
		}
	}
}
