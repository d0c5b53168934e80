// Package core provides fundamental types and utilities shared by the game
// and the terminal platform. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned area of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect returns a w x h rectangle centered in an area of areaW x areaH.
func CenteredRect(w, h, areaW, areaH int) Rect {
	return NewRect((areaW-w)/2, (areaH-h)/2, w, h)
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// NormalizeDeg maps an angle in degrees to [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDiff returns the smallest absolute difference between two angles in
// degrees, in [0, 180].
func AngleDiff(a, b float64) float64 {
	d := NormalizeDeg(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Polar returns the point at distance r from (cx, cy) in direction deg.
// Angles grow clockwise on screen: 0 points right, 90 points down.
// Terminal cells are about twice as tall as wide, so aspect scales x.
func Polar(cx, cy, r, deg, aspect float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return cx + math.Cos(rad)*r*aspect, cy + math.Sin(rad)*r
}
