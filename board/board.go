// Package board implements the sparse playfield grid. Rows are stored from
// the floor up and only as high as the tallest filled cell, each with a
// running count of filled cells so that fullness checks are constant time.
package board

import (
	"slices"

	"github.com/plus3/blockfall/geom"
)

// Cell is one board cell. Value is meaningful only when Filled is set.
type Cell struct {
	Value  uint32
	Filled bool
}

type row struct {
	cells []Cell
	count int
}

// Fall moves the cell at Point down by Distance rows.
type Fall struct {
	Point    geom.Point
	Distance int
}

// Board is a width by height grid. The zero value is not usable; call New.
type Board struct {
	rows   []row
	width  int
	height int
}

// New returns an empty board.
func New(width, height int) *Board {
	return &Board{width: width, height: height}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the configured maximum number of rows.
func (b *Board) Height() int { return b.height }

// NumRows returns the number of stored rows, which is one more than the
// highest row holding a filled cell.
func (b *Board) NumRows() int { return len(b.rows) }

// SpawnPoint is where new pieces enter the board.
func (b *Board) SpawnPoint() geom.Point {
	return geom.Pt(b.width/2, b.height-1)
}

// OnBoard reports whether p lies inside the configured grid.
func (b *Board) OnBoard(p geom.Point) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// Cell returns the cell at p. Points outside the stored rows are empty.
func (b *Board) Cell(p geom.Point) Cell {
	if p.X < 0 || p.X >= b.width || p.Y < 0 || p.Y >= len(b.rows) {
		return Cell{}
	}
	return b.rows[p.Y].cells[p.X]
}

// RowCount returns the number of filled cells in row y.
func (b *Board) RowCount(y int) int {
	if y < 0 || y >= len(b.rows) {
		return 0
	}
	return b.rows[y].count
}

// RowFull reports whether every cell of row y is filled.
func (b *Board) RowFull(y int) bool {
	return b.RowCount(y) == b.width
}

// IsFilled reports whether p blocks movement. The walls and the space below
// the floor count as filled; anything above the stored rows is empty.
func (b *Board) IsFilled(p geom.Point) bool {
	if p.X < 0 || p.X >= b.width || p.Y < 0 {
		return true
	}
	if p.Y >= len(b.rows) {
		return false
	}
	return b.rows[p.Y].cells[p.X].Filled
}

// Fits reports whether none of points is filled.
func (b *Board) Fits(points []geom.Point) bool {
	for _, p := range points {
		if b.IsFilled(p) {
			return false
		}
	}
	return true
}

// Fill sets p to value, growing row storage as needed. It returns false
// when p is off the board; filling an already filled cell leaves it as is.
func (b *Board) Fill(p geom.Point, value uint32) bool {
	_, ok := b.fill(p, value)
	return ok
}

// fill reports whether the cell went from empty to filled as well as
// whether p was usable at all.
func (b *Board) fill(p geom.Point, value uint32) (changed, ok bool) {
	if !b.OnBoard(p) {
		return false, false
	}
	for p.Y >= len(b.rows) {
		b.rows = append(b.rows, row{cells: make([]Cell, b.width)})
	}

	r := &b.rows[p.Y]
	if r.cells[p.X].Filled {
		return false, true
	}
	r.cells[p.X] = Cell{Value: value, Filled: true}
	r.count++
	return true, true
}

// Unfill empties p. When that leaves the topmost row empty, it and every
// empty row directly beneath it are trimmed.
func (b *Board) Unfill(p geom.Point) {
	if p.X < 0 || p.X >= b.width || p.Y < 0 || p.Y >= len(b.rows) {
		return
	}
	r := &b.rows[p.Y]
	if !r.cells[p.X].Filled {
		return
	}
	r.cells[p.X] = Cell{}
	r.count--

	if r.count == 0 && p.Y == len(b.rows)-1 {
		b.trim()
	}
}

func (b *Board) trim() {
	n := len(b.rows)
	for n > 0 && b.rows[n-1].count == 0 {
		n--
	}
	b.rows = b.rows[:n]
}

// AddPiece fills cells with the matching values. It returns the rows that
// became full, in the order they filled, or false when a cell could not be
// placed because the stack overflowed the board.
func (b *Board) AddPiece(cells []geom.Point, values []uint32) ([]int, bool) {
	var full []int
	for i, p := range cells {
		changed, ok := b.fill(p, values[i])
		if !ok {
			return nil, false
		}
		if changed && b.RowFull(p.Y) {
			full = append(full, p.Y)
		}
	}
	return full, true
}

// ClearRows removes every listed row that is full at call time. Rows are
// processed bottom up and each index is shifted down by the number of rows
// already removed beneath it. The returned slice holds those shifted
// indices for the rows actually removed.
func (b *Board) ClearRows(rows []int) []int {
	sorted := slices.Clone(rows)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var cleared []int
	for _, r := range sorted {
		y := r - len(cleared)
		if y < 0 || y >= len(b.rows) || b.rows[y].count != b.width {
			continue
		}
		b.rows = slices.Delete(b.rows, y, y+1)
		cleared = append(cleared, y)
	}
	b.trim()
	return cleared
}

// ClearPoints empties every point.
func (b *Board) ClearPoints(points []geom.Point) {
	for _, p := range points {
		b.Unfill(p)
	}
}

// TranslateFalling moves each falling cell down by its distance. Every
// source is lifted before any destination is written, so a cell may land
// where another one started. It returns the destination rows that are now
// full, ascending.
func (b *Board) TranslateFalling(falls []Fall) []int {
	type lifted struct {
		to    geom.Point
		value uint32
	}
	moving := make([]lifted, 0, len(falls))
	for _, f := range falls {
		c := b.Cell(f.Point)
		if !c.Filled {
			continue
		}
		moving = append(moving, lifted{to: f.Point.Sub(geom.UnitY(f.Distance)), value: c.Value})
		b.Unfill(f.Point)
	}

	var full []int
	for _, m := range moving {
		b.fill(m.to, m.value)
		if b.RowFull(m.to.Y) {
			full = append(full, m.to.Y)
		}
	}
	slices.Sort(full)
	return slices.Compact(full)
}

// Drop returns how many rows the cell at p can fall before landing on a
// filled cell or the floor. p itself is not checked.
func (b *Board) Drop(p geom.Point) int {
	if p.X < 0 || p.X >= b.width || p.Y <= 0 {
		return 0
	}
	// Everything above the stored rows is empty, so start at the first
	// stored row under p.
	y := min(p.Y-1, len(b.rows)-1)
	for ; y >= 0; y-- {
		if b.rows[y].cells[p.X].Filled {
			break
		}
	}
	return p.Y - y - 1
}

// FirstCollision returns the largest downward offset points can be moved
// by without any of them overlapping a filled cell or leaving the floor.
func (b *Board) FirstCollision(points []geom.Point) geom.Point {
	if len(points) == 0 {
		return geom.Point{}
	}
	distance := b.Drop(points[0])
	for _, p := range points[1:] {
		distance = min(distance, b.Drop(p))
	}
	return geom.UnitY(-distance)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{width: b.width, height: b.height, rows: make([]row, len(b.rows))}
	for i, r := range b.rows {
		c.rows[i] = row{cells: slices.Clone(r.cells), count: r.count}
	}
	return c
}

// Each calls fn for every filled cell, bottom row first.
func (b *Board) Each(fn func(p geom.Point, value uint32)) {
	for y, r := range b.rows {
		for x, c := range r.cells {
			if c.Filled {
				fn(geom.Pt(x, y), c.Value)
			}
		}
	}
}

// ShiftDown maps a point recorded before rows were cleared onto the board
// after the clear. cleared holds the indices ClearRows returned. The second
// result is false when the point was on one of the removed rows.
func ShiftDown(p geom.Point, cleared []int) (geom.Point, bool) {
	below := 0
	for i, y := range cleared {
		original := y + i
		switch {
		case original == p.Y:
			return p, false
		case original < p.Y:
			below++
		}
	}
	return p.Sub(geom.UnitY(below)), true
}
