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

// Cascade drops every piece left hanging after a clear as a rigid body,
// which can complete further rows.
type Cascade struct {
	Scorer
}

func NewCascade() *Cascade { return &Cascade{} }

func (*Cascade) Name() string { return "cascade" }

func (*Cascade) Generator(c *piece.Chooser) piece.Generator {
	return NewCascadeGenerator(c)
}

func (*Cascade) PieceLocked(d *driver.Driver, lock game.Lock, t transition.Transition) transition.Transition {
	return driver.DefaultPieceLocked(d, lock, t)
}

func (c *Cascade) RowsCleared(d *driver.Driver, rows []int) transition.Transition {
	c.Award(d, len(rows))
	return transition.PointsFalling(physics.FromRows(d.Board(), rows)...)
}

func (*Cascade) PointsCleared(d *driver.Driver, points []geom.Point) transition.Transition {
	return driver.DefaultPointsCleared(d, points)
}

func (*Cascade) PointsFell(d *driver.Driver, falls []board.Fall, full []int) transition.Transition {
	return driver.DefaultPointsFell(d, falls, full)
}
