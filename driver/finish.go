package driver

import (
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/transition"
)

// FinishTransition applies t to the board and returns the transition that
// follows from it, which is inert once the chain has run out.
//
// Rows are cleared first. Deleted and falling points were recorded before
// that clear, so they are shifted down past the removed rows, and any that
// sat on a removed row are dropped. Falls are applied next and the rows
// they complete are offered to the variant, then the cleared rows and
// points are.
func (d *Driver) FinishTransition(t transition.Transition) transition.Transition {
	if d.gameOver {
		return transition.Transition{}
	}
	b := d.core.Board()
	t.Compress()
	t.TakePointsAdded()

	var cleared []int
	if rows := t.TakeRowsDeleted(); len(rows) > 0 {
		cleared = b.ClearRows(rows)
		d.stats.Lines += len(cleared)
	}

	points := shiftPoints(t.TakePointsDeleted(), cleared)
	b.ClearPoints(points)

	var next transition.Transition
	if falls := shiftFalls(t.TakePointsFalling(), cleared); len(falls) > 0 {
		full := b.TranslateFalling(falls)
		next.Merge(d.variant.PointsFell(d, falls, full))
	}
	if len(cleared) > 0 {
		next.Merge(d.variant.RowsCleared(d, cleared))
	}
	if len(points) > 0 {
		next.Merge(d.variant.PointsCleared(d, points))
	}
	next.Compress()

	d.stats.ChainSteps++
	d.log.WithFields(logrus.Fields{
		"rows":    cleared,
		"points":  len(points),
		"pending": !next.Inert(),
	}).Debug("transition finished")

	d.core.Refresh()
	d.pending = next
	if next.Inert() {
		d.checkSpawn()
	}
	return next
}

// Settle finishes t and every transition that follows from it. It returns
// the number of steps taken.
func (d *Driver) Settle(t transition.Transition) int {
	steps := 0
	for !t.Inert() {
		t = d.FinishTransition(t)
		steps++
	}
	if steps > 0 {
		d.stats.LongestChain = max(d.stats.LongestChain, steps)
	}
	return steps
}

func shiftPoints(points []geom.Point, cleared []int) []geom.Point {
	if len(cleared) == 0 {
		return points
	}
	out := points[:0]
	for _, p := range points {
		if shifted, ok := board.ShiftDown(p, cleared); ok {
			out = append(out, shifted)
		}
	}
	return out
}

func shiftFalls(falls []board.Fall, cleared []int) []board.Fall {
	if len(cleared) == 0 {
		return falls
	}
	out := falls[:0]
	for _, f := range falls {
		if shifted, ok := board.ShiftDown(f.Point, cleared); ok {
			f.Point = shifted
			out = append(out, f)
		}
	}
	return out
}
