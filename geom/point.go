// Package geom provides the integer grid geometry shared by the board,
// the piece catalog and the physics resolver.
package geom

import (
	"fmt"
	"math"
)

// Point is a cell coordinate on the board. X grows to the right and Y grows
// upward, so row 0 is the floor row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// UnitX returns a horizontal offset of x cells.
func UnitX(x int) Point {
	return Point{X: x}
}

// UnitY returns a vertical offset of y cells.
func UnitY(y int) Point {
	return Point{Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul multiplies component-wise.
func (p Point) Mul(q Point) Point {
	return Point{X: p.X * q.X, Y: p.Y * q.Y}
}

// Div divides component-wise, truncating toward zero.
func (p Point) Div(q Point) Point {
	return Point{X: p.X / q.X, Y: p.Y / q.Y}
}

// Less orders points by row, then by column.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Translate returns a copy of points shifted by offset.
func Translate(points []Point, offset Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(offset)
	}
	return out
}

// PartialPoint is a point with fractional coordinates. Piece shapes are
// described relative to their rotation pivot with these, which lets the
// four orientations be derived by exact quarter turns.
type PartialPoint struct {
	X, Y float64
}

// RotateClockwise turns the point a quarter turn clockwise about the origin.
func (p PartialPoint) RotateClockwise() PartialPoint {
	return PartialPoint{X: p.Y, Y: -p.X}
}

// Floor snaps the point down and to the left onto the cell that contains it.
func (p PartialPoint) Floor() Point {
	return Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}
