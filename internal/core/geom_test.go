package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 || r.Bottom() != 7 {
		t.Errorf("Expected right 12 and bottom 7, got %d and %d", r.Right(), r.Bottom())
	}
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		w, h, areaW, areaH int
		want               Rect
	}{
		{10, 4, 80, 24, Rect{X: 35, Y: 10, W: 10, H: 4}},
		{11, 5, 80, 24, Rect{X: 34, Y: 9, W: 11, H: 5}},
		{100, 4, 80, 24, Rect{X: -10, Y: 10, W: 100, H: 4}},
	}
	for _, tc := range tests {
		if got := CenteredRect(tc.w, tc.h, tc.areaW, tc.areaH); got != tc.want {
			t.Errorf("CenteredRect(%d, %d, %d, %d) = %+v, expected %+v", tc.w, tc.h, tc.areaW, tc.areaH, got, tc.want)
		}
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-90, 270},
		{-720, 0},
	}
	for _, tc := range tests {
		if got := NormalizeDeg(tc.in); got != tc.want {
			t.Errorf("NormalizeDeg(%f) = %f, expected %f", tc.in, got, tc.want)
		}
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 350, 20},
		{350, 10, 20},
		{90, 270, 180},
		{45, 45, 0},
		{-10, 10, 20},
	}
	for _, tc := range tests {
		if got := AngleDiff(tc.a, tc.b); got != tc.want {
			t.Errorf("AngleDiff(%f, %f) = %f, expected %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPolar(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		deg    float64
		wx, wy float64
	}{
		{0, 20, 10},
		{90, 10, 15},
		{180, 0, 10},
		{270, 10, 5},
	}
	for _, tc := range tests {
		x, y := Polar(10, 10, 5, tc.deg, 2)
		if math.Abs(x-tc.wx) > eps || math.Abs(y-tc.wy) > eps {
			t.Errorf("Polar(%vdeg) = (%f, %f), expected (%v, %v)", tc.deg, x, y, tc.wx, tc.wy)
		}
	}
}
