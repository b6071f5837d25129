// Package transition describes pending board changes. A Transition is a
// change set that the driver applies to the board in one finishing step;
// rule variants answer with further transitions until nothing is left.
package transition

import (
	"cmp"
	"slices"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geom"
)

// Transition holds four independent collections of board changes. The
// zero value is an inert transition ready to use.
type Transition struct {
	pointsDeleted []geom.Point
	rowsDeleted   []int
	pointsFalling []board.Fall
	pointsAdded   []geom.Point
}

// RowsDeleted returns a transition deleting rows.
func RowsDeleted(rows ...int) Transition {
	var t Transition
	t.AddRowsDeleted(rows...)
	return t
}

// PointsDeleted returns a transition deleting points.
func PointsDeleted(points ...geom.Point) Transition {
	var t Transition
	t.AddPointsDeleted(points...)
	return t
}

// PointsFalling returns a transition moving cells down.
func PointsFalling(falls ...board.Fall) Transition {
	var t Transition
	t.AddPointsFalling(falls...)
	return t
}

// AddPointsDeleted appends points to delete.
func (t *Transition) AddPointsDeleted(points ...geom.Point) {
	t.pointsDeleted = append(t.pointsDeleted, points...)
}

// AddRowsDeleted appends rows to delete.
func (t *Transition) AddRowsDeleted(rows ...int) {
	t.rowsDeleted = append(t.rowsDeleted, rows...)
}

// AddPointsFalling appends falling cells.
func (t *Transition) AddPointsFalling(falls ...board.Fall) {
	t.pointsFalling = append(t.pointsFalling, falls...)
}

// AddPointsAdded appends points that were newly written. They only inform
// renderers and are never applied.
func (t *Transition) AddPointsAdded(points ...geom.Point) {
	t.pointsAdded = append(t.pointsAdded, points...)
}

// Merge appends every collection of other onto t.
func (t *Transition) Merge(other Transition) {
	t.AddPointsDeleted(other.pointsDeleted...)
	t.AddRowsDeleted(other.rowsDeleted...)
	t.AddPointsFalling(other.pointsFalling...)
	t.AddPointsAdded(other.pointsAdded...)
}

// Compress sorts every collection and drops duplicate entries.
func (t *Transition) Compress() {
	slices.SortFunc(t.pointsDeleted, comparePoints)
	t.pointsDeleted = slices.Compact(t.pointsDeleted)

	slices.Sort(t.rowsDeleted)
	t.rowsDeleted = slices.Compact(t.rowsDeleted)

	slices.SortFunc(t.pointsFalling, func(a, b board.Fall) int {
		return cmp.Or(
			cmp.Compare(a.Point.Y, b.Point.Y),
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(a.Point.X, b.Point.X),
		)
	})
	t.pointsFalling = slices.Compact(t.pointsFalling)

	slices.SortFunc(t.pointsAdded, comparePoints)
	t.pointsAdded = slices.Compact(t.pointsAdded)
}

func comparePoints(a, b geom.Point) int {
	return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
}

// Inert reports whether the transition carries no change at all.
func (t *Transition) Inert() bool {
	return len(t.pointsDeleted) == 0 &&
		len(t.rowsDeleted) == 0 &&
		len(t.pointsFalling) == 0 &&
		len(t.pointsAdded) == 0
}

func (t *Transition) PointsDeleted() []geom.Point { return t.pointsDeleted }
func (t *Transition) RowsDeleted() []int         { return t.rowsDeleted }
func (t *Transition) PointsFalling() []board.Fall { return t.pointsFalling }
func (t *Transition) PointsAdded() []geom.Point   { return t.pointsAdded }

// TakePointsDeleted removes and returns the points to delete.
func (t *Transition) TakePointsDeleted() []geom.Point {
	out := t.pointsDeleted
	t.pointsDeleted = nil
	return out
}

// TakeRowsDeleted removes and returns the rows to delete.
func (t *Transition) TakeRowsDeleted() []int {
	out := t.rowsDeleted
	t.rowsDeleted = nil
	return out
}

// TakePointsFalling removes and returns the falling cells.
func (t *Transition) TakePointsFalling() []board.Fall {
	out := t.pointsFalling
	t.pointsFalling = nil
	return out
}

// TakePointsAdded removes and returns the added points.
func (t *Transition) TakePointsAdded() []geom.Point {
	out := t.pointsAdded
	t.pointsAdded = nil
	return out
}

// Clone returns a copy that shares no storage with t.
func (t *Transition) Clone() Transition {
	return Transition{
		pointsDeleted: slices.Clone(t.pointsDeleted),
		rowsDeleted:   slices.Clone(t.rowsDeleted),
		pointsFalling: slices.Clone(t.pointsFalling),
		pointsAdded:   slices.Clone(t.pointsAdded),
	}
}
