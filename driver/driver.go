// Package driver runs a game: it owns the frame clock with gravity and
// lock delay, gates hold to once per drop, and finishes board transitions
// by applying them and asking the active Variant what follows.
//
// A Driver is not safe for concurrent use. Everything happens inside the
// call that triggers it; hosts advance the game by calling NextFrame once
// per frame and settling whatever transition comes back.
package driver

import (
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
)

// Driver couples a game core with a rule variant and the frame clock.
type Driver struct {
	cfg     Config
	variant Variant
	catalog *piece.Catalog
	chooser *piece.Chooser
	core    *game.Core
	log     logrus.FieldLogger

	framesSinceDrop float64
	lockFrames      int
	lockArmed       bool
	holdUsed        bool

	score    int
	level    int
	gameOver bool

	// pending is the transition handed out last and not yet finished.
	pending transition.Transition

	stats Stats
}

// New starts a game of variant v.
func New(cfg Config, v Variant) *Driver {
	cfg = cfg.withDefaults()

	catalog := cfg.Catalog
	if cp, ok := v.(CatalogProvider); ok {
		catalog = cp.Catalog()
	}

	chooser := piece.NewChooser(catalog)
	chooser.Seed(cfg.Seed)

	var gen piece.Generator = &piece.BagGenerator{Chooser: chooser}
	if gp, ok := v.(GeneratorProvider); ok {
		gen = gp.Generator(chooser)
	}

	d := &Driver{
		cfg:     cfg,
		variant: v,
		catalog: catalog,
		chooser: chooser,
		log:     cfg.Logger.WithField("variant", v.Name()),
	}
	d.core = game.New(board.New(cfg.Width, cfg.Height), cfg.QueueLength, gen)
	d.log.WithFields(logrus.Fields{
		"width":  cfg.Width,
		"height": cfg.Height,
		"queue":  cfg.QueueLength,
	}).Debug("game started")
	return d
}

// Config returns the configuration the driver was built with.
func (d *Driver) Config() Config { return d.cfg }

// Variant returns the active rule variant.
func (d *Driver) Variant() Variant { return d.variant }

// Catalog returns the catalog pieces are dealt from.
func (d *Driver) Catalog() *piece.Catalog { return d.catalog }

// Chooser returns the seeded chooser behind the generator.
func (d *Driver) Chooser() *piece.Chooser { return d.chooser }

// Core returns the game core. Mutating it directly bypasses the driver's rules.
func (d *Driver) Core() *game.Core { return d.core }

// Board is shorthand for Core().Board().
func (d *Driver) Board() *board.Board { return d.core.Board() }

func (d *Driver) Score() int     { return d.score }
func (d *Driver) Level() int     { return d.level }
func (d *Driver) GameOver() bool { return d.gameOver }

// Pending returns the transition awaiting FinishTransition, for renderers.
func (d *Driver) Pending() transition.Transition { return d.pending.Clone() }

// Busy reports whether a transition is still waiting to be finished.
// Movement and frames are ignored until it is.
func (d *Driver) Busy() bool { return !d.pending.Inert() }

// AddScore increases the score.
func (d *Driver) AddScore(n int) {
	d.score += n
}

// RaiseLevel moves the level up to level, capped at MaxLevel. It never lowers it.
func (d *Driver) RaiseLevel(level int) {
	level = min(level, MaxLevel)
	if level > d.level {
		d.log.WithField("level", level).Debug("level up")
		d.level = level
	}
}

func (d *Driver) playable() bool {
	return !d.gameOver && d.pending.Inert()
}

func (d *Driver) TranslateLeft() bool  { return d.translate(geom.UnitX(-1)) }
func (d *Driver) TranslateRight() bool { return d.translate(geom.UnitX(1)) }

func (d *Driver) translate(offset geom.Point) bool {
	if !d.playable() {
		return false
	}
	return d.core.Translate(offset)
}

func (d *Driver) RotateClockwise() bool        { return d.rotate(geom.Clockwise) }
func (d *Driver) RotateCounterClockwise() bool { return d.rotate(geom.CounterClockwise) }

func (d *Driver) rotate(dir geom.Direction) bool {
	if !d.playable() {
		return false
	}
	return d.core.Rotate(dir)
}

// Hold swaps the active piece with the hold slot, at most once between locks.
func (d *Driver) Hold() bool {
	if !d.playable() || d.holdUsed {
		return false
	}
	d.core.Hold()
	d.holdUsed = true
	d.resetClock()
	d.stats.Holds++
	d.checkSpawn()
	return true
}

// Fall moves the active piece down a row, locking it at once if it cannot move.
func (d *Driver) Fall() (bool, transition.Transition) {
	if !d.playable() {
		return false, transition.Transition{}
	}
	lock, locked := d.core.Fall()
	if !locked {
		return false, transition.Transition{}
	}
	return true, d.locked(lock)
}

// FastFall drops the active piece to the ghost position and locks it. It
// returns the number of rows dropped.
func (d *Driver) FastFall() (int, transition.Transition) {
	if !d.playable() {
		return 0, transition.Transition{}
	}
	distance, lock := d.core.FastFall()
	return distance, d.locked(lock)
}

func (d *Driver) locked(lock game.Lock) transition.Transition {
	d.resetClock()
	d.holdUsed = false
	d.stats.Pieces++

	if lock.Overflow {
		d.end("stack overflow")
		return transition.Transition{}
	}

	t := transition.RowsDeleted(lock.Rows...)
	t.AddPointsAdded(lock.Footprint...)
	t = d.variant.PieceLocked(d, lock, t)
	t.Compress()

	d.log.WithFields(logrus.Fields{
		"piece": d.core.Board().Cell(lock.Footprint[0]).Value,
		"rows":  lock.Rows,
	}).Debug("piece locked")

	d.pending = t
	if d.pendingIsCosmetic() {
		d.pending = transition.Transition{}
		d.checkSpawn()
	}
	return t
}

// pendingIsCosmetic reports whether the pending transition only announces
// added points, so there is nothing for the board to apply.
func (d *Driver) pendingIsCosmetic() bool {
	return len(d.pending.PointsDeleted()) == 0 &&
		len(d.pending.RowsDeleted()) == 0 &&
		len(d.pending.PointsFalling()) == 0
}

func (d *Driver) resetClock() {
	d.framesSinceDrop = 0
	d.lockFrames = 0
	d.lockArmed = false
}

func (d *Driver) checkSpawn() {
	if !d.gameOver && !d.core.SpawnFits() {
		d.end("block out")
	}
}

func (d *Driver) end(reason string) {
	d.gameOver = true
	d.pending = transition.Transition{}
	d.log.WithFields(logrus.Fields{
		"reason": reason,
		"score":  d.score,
		"level":  d.level,
		"lines":  d.stats.Lines,
	}).Info("game over")
}

// NextFrame advances the clock by one frame, applying gravity and the
// lock delay. A lock under gravity returns its transition.
func (d *Driver) NextFrame() transition.Transition {
	if !d.playable() {
		return transition.Transition{}
	}
	d.stats.Frames++

	if d.lockArmed {
		if d.core.CanFall() {
			d.lockArmed = false
			d.lockFrames = 0
		} else {
			d.lockFrames++
			if d.lockFrames >= d.cfg.LockDelay {
				_, t := d.Fall()
				return t
			}
			return transition.Transition{}
		}
	}

	perRow := d.cfg.Gravity(d.level)
	if perRow <= 0 {
		perRow = 1
	}
	d.framesSinceDrop++
	for d.framesSinceDrop >= perRow {
		d.framesSinceDrop -= perRow
		if !d.core.CanFall() {
			if d.cfg.LockDelay == 0 {
				_, t := d.Fall()
				return t
			}
			d.lockArmed = true
			d.framesSinceDrop = 0
			break
		}
		d.core.Translate(geom.UnitY(-1))
	}
	return transition.Transition{}
}
