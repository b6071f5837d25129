package piece

import "github.com/plus3/blockfall/geom"

// Active is a piece placed on the board at a position and orientation.
// It is a value: moving it produces a new Active rather than mutating one
// that might be shared.
type Active struct {
	Piece       Piece
	Position    geom.Point
	Orientation geom.Orientation
}

// Spawn places p at position in the origin orientation.
func Spawn(p Piece, position geom.Point) Active {
	return Active{Piece: p, Position: position, Orientation: geom.Origin}
}

// Points returns the board cells the piece covers.
func (a Active) Points() []geom.Point {
	return a.PointsAt(a.Position, a.Orientation)
}

// PointsAt returns the cells the piece would cover at position and orientation.
func (a Active) PointsAt(position geom.Point, o geom.Orientation) []geom.Point {
	t := a.Piece.Type
	return geom.Translate(t.Shape(o), position.Sub(t.BoundingBox()))
}

// Translated returns the piece moved by offset.
func (a Active) Translated(offset geom.Point) Active {
	a.Position = a.Position.Add(offset)
	return a
}

// Rotated returns the piece turned once in direction d about its pivot.
func (a Active) Rotated(d geom.Direction) Active {
	a.Orientation = a.Orientation.Rotated(d)
	return a
}

// Values returns the per-cell values, aligned with Points.
func (a Active) Values() []uint32 {
	return a.Piece.Values
}
