// Package piece defines the immutable piece catalog and the active piece
// instance that the game core moves around the board.
package piece

import "github.com/plus3/blockfall/geom"

// KickTable lists the wall-kick offsets to try, in order, for every
// (orientation, direction) pair.
type KickTable [geom.OrientationCount][geom.DirectionCount][]geom.Point

// Type is the immutable description of one kind of piece. Types are built
// once at startup and shared read-only between any number of games.
type Type struct {
	name        string
	shapes      [geom.OrientationCount][]geom.Point
	kicks       KickTable
	boundingBox geom.Point
	dimensions  geom.Point
}

// NewType builds a piece type from its cells at the origin orientation,
// given relative to the rotation pivot. The other three orientations are
// derived by rotating every cell a quarter turn clockwise.
func NewType(name string, shape []geom.PartialPoint, kicks KickTable, boundingBox geom.Point) *Type {
	t := &Type{
		name:        name,
		kicks:       kicks,
		boundingBox: boundingBox,
	}

	current := append([]geom.PartialPoint(nil), shape...)
	for o := range geom.OrientationCount {
		cells := make([]geom.Point, len(current))
		for i, p := range current {
			cells[i] = p.Floor()
		}
		t.shapes[o] = cells

		for i := range current {
			current[i] = current[i].RotateClockwise()
		}
	}

	var left, right, down, up int
	for _, p := range t.shapes[geom.Origin] {
		left = min(left, p.X)
		right = max(right, p.X)
		down = min(down, p.Y)
		up = max(up, p.Y)
	}
	t.dimensions = geom.Pt(right-left+1, up-down+1)

	return t
}

// Name returns the short name of the type, such as "T".
func (t *Type) Name() string {
	return t.name
}

// Shape returns the cell offsets for orientation o. The slice must not be modified.
func (t *Type) Shape(o geom.Orientation) []geom.Point {
	return t.shapes[o]
}

// CellCount is the number of cells every orientation of the type occupies.
func (t *Type) CellCount() int {
	return len(t.shapes[geom.Origin])
}

// WallKicks returns the ordered offsets to try when rotating from o in direction d.
func (t *Type) WallKicks(o geom.Orientation, d geom.Direction) []geom.Point {
	return t.kicks[o][d]
}

// BoundingBox returns the top left corner of the type's bounding box relative
// to its pivot. Spawn placement subtracts it from the spawn point.
func (t *Type) BoundingBox() geom.Point {
	return t.boundingBox
}

// Dimensions returns the width and height of the origin orientation in cells.
func (t *Type) Dimensions() geom.Point {
	return t.dimensions
}

// Preview returns the origin orientation shifted so that the bounding box
// corner sits at the origin, for drawing the hold slot and queue.
func (t *Type) Preview() []geom.Point {
	return geom.Translate(t.shapes[geom.Origin], geom.Point{}.Sub(t.boundingBox))
}
