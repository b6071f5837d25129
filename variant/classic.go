package variant

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/transition"
)

// Classic plays without physics: cleared rows score and nothing else moves.
type Classic struct {
	Scorer
}

func NewClassic() *Classic { return &Classic{} }

func (*Classic) Name() string { return "classic" }

func (*Classic) PieceLocked(d *driver.Driver, lock game.Lock, t transition.Transition) transition.Transition {
	return driver.DefaultPieceLocked(d, lock, t)
}

func (c *Classic) RowsCleared(d *driver.Driver, rows []int) transition.Transition {
	c.Award(d, len(rows))
	return driver.DefaultRowsCleared(d, rows)
}

func (*Classic) PointsCleared(d *driver.Driver, points []geom.Point) transition.Transition {
	return driver.DefaultPointsCleared(d, points)
}

func (*Classic) PointsFell(d *driver.Driver, falls []board.Fall, full []int) transition.Transition {
	return driver.DefaultPointsFell(d, falls, full)
}
