package variant

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/physics"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
)

// Sticky deals pieces that may be two-coloured. Each colour group falls on
// its own, both when a piece locks and after rows clear.
type Sticky struct {
	Scorer
}

func NewSticky() *Sticky { return &Sticky{} }

func (*Sticky) Name() string { return "sticky" }

func (*Sticky) Generator(c *piece.Chooser) piece.Generator {
	return NewStickyGenerator(c)
}

// PieceLocked lets the halves of a split piece settle. The falls are found
// on the board as it is before any completed rows clear; half of a piece
// below a cleared row still drops, and the rest shifts past the removed rows.
func (*Sticky) PieceLocked(d *driver.Driver, lock game.Lock, t transition.Transition) transition.Transition {
	t.AddPointsFalling(physics.FromPoints(d.Board(), lock.Footprint)...)
	return t
}

func (s *Sticky) RowsCleared(d *driver.Driver, rows []int) transition.Transition {
	s.Award(d, len(rows))
	return transition.PointsFalling(physics.FromRows(d.Board(), rows)...)
}

func (*Sticky) PointsCleared(d *driver.Driver, points []geom.Point) transition.Transition {
	return driver.DefaultPointsCleared(d, points)
}

func (*Sticky) PointsFell(d *driver.Driver, falls []board.Fall, full []int) transition.Transition {
	return driver.DefaultPointsFell(d, falls, full)
}
