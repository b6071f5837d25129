package driver

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
)

// Variant is a rule set. The driver hands it board-level facts after each
// step and merges whatever transitions it answers with into the chain.
type Variant interface {
	Name() string

	// PieceLocked sees the transition a lock produced before it is
	// returned to the caller and may replace or extend it.
	PieceLocked(d *Driver, lock game.Lock, t transition.Transition) transition.Transition
	// RowsCleared receives the shifted indices of the rows just removed.
	RowsCleared(d *Driver, rows []int) transition.Transition
	// PointsCleared receives the points just emptied, in post-clear coordinates.
	PointsCleared(d *Driver, points []geom.Point) transition.Transition
	// PointsFell receives the falls just applied and the rows they filled.
	PointsFell(d *Driver, falls []board.Fall, fullRows []int) transition.Transition
}

// GeneratorProvider is implemented by variants that deal pieces their own
// way. The chooser is already seeded from Config.Seed.
type GeneratorProvider interface {
	Generator(c *piece.Chooser) piece.Generator
}

// CatalogProvider is implemented by variants that play with other piece types.
type CatalogProvider interface {
	Catalog() *piece.Catalog
}

// DefaultPieceLocked passes the lock transition through unchanged.
func DefaultPieceLocked(_ *Driver, _ game.Lock, t transition.Transition) transition.Transition {
	return t
}

// DefaultRowsCleared has no follow-up.
func DefaultRowsCleared(*Driver, []int) transition.Transition {
	return transition.Transition{}
}

// DefaultPointsCleared has no follow-up.
func DefaultPointsCleared(*Driver, []geom.Point) transition.Transition {
	return transition.Transition{}
}

// DefaultPointsFell deletes the rows the falls completed.
func DefaultPointsFell(_ *Driver, _ []board.Fall, fullRows []int) transition.Transition {
	return transition.RowsDeleted(fullRows...)
}
