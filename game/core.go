// Package game holds the single-player game core: the board, the active
// piece with its ghost projection, the hold slot and the lookahead queue.
//
// Core performs movement and locking only. Timing, the once-per-drop hold
// rule and what a cleared row means are left to the driver on top of it.
package game

import (
	"slices"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
)

// Lock describes a piece being committed to the board.
type Lock struct {
	// Footprint holds the cells the piece was written to.
	Footprint []geom.Point
	// Rows are the rows the piece completed.
	Rows []int
	// Overflow is set when the piece could not be placed because the
	// stack reached the top of the board.
	Overflow bool
}

// Core is the piece and board state machine.
type Core struct {
	board     *board.Board
	generator piece.Generator

	active piece.Active
	ghost  []geom.Point

	held    piece.Piece
	hasHeld bool

	queue []piece.Piece
	next  int
}

// New spawns the first piece at the board's spawn point and fills a
// lookahead queue of queueLength pieces from g.
func New(b *board.Board, queueLength int, g piece.Generator) *Core {
	c := &Core{
		board:     b,
		generator: g,
	}
	first := g.Next()
	c.queue = make([]piece.Piece, queueLength)
	for i := range c.queue {
		c.queue[i] = g.Next()
	}
	c.setActive(piece.Spawn(first, b.SpawnPoint()))
	return c
}

// Board returns the board. Callers outside the driver should treat it as read only.
func (c *Core) Board() *board.Board { return c.board }

// Active returns the piece under player control.
func (c *Core) Active() piece.Active { return c.active }

// Ghost returns the cells the active piece would occupy after a fast fall.
func (c *Core) Ghost() []geom.Point { return c.ghost }

// Held returns the held piece, if any.
func (c *Core) Held() (piece.Piece, bool) { return c.held, c.hasHeld }

// QueueLength returns the number of lookahead pieces.
func (c *Core) QueueLength() int { return len(c.queue) }

// Next returns the i-th upcoming piece, 0 being the one that spawns next.
func (c *Core) Next(i int) piece.Piece {
	return c.queue[(c.next+i)%len(c.queue)]
}

// Queue returns the upcoming pieces in spawn order.
func (c *Core) Queue() []piece.Piece {
	out := make([]piece.Piece, len(c.queue))
	for i := range out {
		out[i] = c.Next(i)
	}
	return out
}

// SpawnFits reports whether the active piece overlaps nothing, which is
// false only when a freshly spawned piece landed inside the stack.
func (c *Core) SpawnFits() bool {
	return c.board.Fits(c.active.Points())
}

func (c *Core) setActive(a piece.Active) piece.Active {
	old := c.active
	c.active = a
	c.updateGhost()
	return old
}

func (c *Core) updateGhost() {
	points := c.active.Points()
	c.ghost = geom.Translate(points, c.board.FirstCollision(points))
}

// advance spawns the next queued piece and refills the queue from the generator.
func (c *Core) advance() piece.Active {
	fresh := c.generator.Next()
	if len(c.queue) == 0 {
		return c.setActive(piece.Spawn(fresh, c.board.SpawnPoint()))
	}

	upcoming := c.queue[c.next]
	c.queue[c.next] = fresh
	c.next = (c.next + 1) % len(c.queue)
	return c.setActive(piece.Spawn(upcoming, c.board.SpawnPoint()))
}

// Translate moves the active piece by offset if it fits there.
func (c *Core) Translate(offset geom.Point) bool {
	moved := c.active.Translated(offset)
	if !c.board.Fits(moved.Points()) {
		return false
	}
	c.setActive(moved)
	return true
}

// Rotate turns the active piece in direction d. When the turned piece does
// not fit in place, the type's wall kicks for the current orientation and
// direction are tried in table order and the first that fits is kept.
func (c *Core) Rotate(d geom.Direction) bool {
	turned := c.active.Rotated(d)
	if c.board.Fits(turned.Points()) {
		c.setActive(turned)
		return true
	}

	for _, kick := range c.active.Piece.Type.WallKicks(c.active.Orientation, d) {
		kicked := turned.Translated(kick)
		if c.board.Fits(kicked.Points()) {
			c.setActive(kicked)
			return true
		}
	}
	return false
}

// CanFall reports whether the active piece has room to move down a row.
func (c *Core) CanFall() bool {
	return c.board.Fits(c.active.Translated(geom.UnitY(-1)).Points())
}

// Fall moves the active piece down one row. When it cannot move, the piece
// is locked into the board and the next one spawns; the returned flag
// reports whether that happened.
func (c *Core) Fall() (Lock, bool) {
	if c.Translate(geom.UnitY(-1)) {
		return Lock{}, false
	}
	return c.lock(), true
}

// FastFall drops the active piece as far as it goes and locks it. It
// returns the number of rows fallen.
func (c *Core) FastFall() (int, Lock) {
	offset := c.board.FirstCollision(c.active.Points())
	c.active = c.active.Translated(offset)
	return -offset.Y, c.lock()
}

func (c *Core) lock() Lock {
	footprint := c.active.Points()
	rows, ok := c.board.AddPiece(footprint, c.active.Values())
	c.advance()
	return Lock{Footprint: footprint, Rows: slices.Clip(rows), Overflow: !ok}
}

// Hold stores the active piece. With an empty hold slot the next queued
// piece spawns; otherwise the held piece swaps in at the spawn point.
// Hold is not rate limited here.
func (c *Core) Hold() {
	if !c.hasHeld {
		c.held, c.hasHeld = c.advance().Piece, true
		return
	}
	swapped := c.held
	c.held = c.setActive(piece.Spawn(swapped, c.board.SpawnPoint())).Piece
}

// Refresh recomputes the ghost after the board changed underneath the
// active piece, for example when rows were cleared.
func (c *Core) Refresh() {
	c.updateGhost()
}
