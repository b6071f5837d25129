package sim

import (
	"math"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/replay"
)

// Weights scores a board after a placement. Higher is better.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

// DefaultWeights favours flat, hole free stacks.
var DefaultWeights = Weights{Height: -0.51, Lines: 0.76, Holes: -0.36, Bumpiness: -0.18}

// Placement is a target for the active piece.
type Placement struct {
	Rotations int // clockwise quarter turns, 3 meaning one counter-clockwise turn
	Shift     int // columns, negative for left
	Score     float64
}

// Actions returns the inputs that steer a freshly spawned piece to p.
func (p Placement) Actions() []replay.Action {
	var out []replay.Action
	switch p.Rotations {
	case 1:
		out = append(out, replay.RotateClockwise)
	case 2:
		out = append(out, replay.RotateClockwise, replay.RotateClockwise)
	case 3:
		out = append(out, replay.RotateCounterClockwise)
	}
	step := replay.TranslateRight
	if p.Shift < 0 {
		step = replay.TranslateLeft
	}
	for range abs(p.Shift) {
		out = append(out, step)
	}
	return append(out, replay.FastFall)
}

// Bot picks the best placement for each new piece and then issues one
// input per call until the piece is dropped.
type Bot struct {
	Weights Weights

	plan []replay.Action
	turn int
}

func NewBot() *Bot {
	return &Bot{Weights: DefaultWeights, turn: -1}
}

// Next returns the bot's next input for d, or false when there is nothing to do.
func (b *Bot) Next(d *driver.Driver) (replay.Action, bool) {
	if d.GameOver() || d.Busy() {
		return 0, false
	}
	if turn := d.Stats().Pieces + d.Stats().Holds; turn != b.turn {
		b.turn = turn
		best := Best(d.Board(), d.Core().Active(), b.Weights)
		b.plan = best.Actions()
	}
	if len(b.plan) == 0 {
		return replay.FastFall, true
	}
	a := b.plan[0]
	b.plan = b.plan[1:]
	return a, true
}

// Best evaluates every rotation and reachable column for a on a copy of bd.
// Moves are checked as plain translations; wall kicks are not searched.
func Best(bd *board.Board, a piece.Active, w Weights) Placement {
	best := Placement{Score: math.Inf(-1)}
	turned := a
	for r := range geom.OrientationCount {
		if r > 0 {
			turned = turned.Rotated(geom.Clockwise)
		}
		if !bd.Fits(turned.Points()) {
			continue
		}
		consider := func(shift int) bool {
			moved := turned.Translated(geom.UnitX(shift))
			points := moved.Points()
			if !bd.Fits(points) {
				return false
			}
			if score := evaluate(bd, points, moved.Values(), w); score > best.Score {
				best = Placement{Rotations: r, Shift: shift, Score: score}
			}
			return true
		}
		consider(0)
		for shift := -1; consider(shift); shift-- {
		}
		for shift := 1; consider(shift); shift++ {
		}
	}
	if math.IsInf(best.Score, -1) {
		best.Score = 0
	}
	return best
}

// overflowScore ranks a placement that tops out below every other.
const overflowScore = -1e9

func evaluate(bd *board.Board, points []geom.Point, values []uint32, w Weights) float64 {
	c := bd.Clone()
	landed := geom.Translate(points, c.FirstCollision(points))
	rows, ok := c.AddPiece(landed, values)
	if !ok {
		return overflowScore
	}
	lines := len(c.ClearRows(rows))

	heights := make([]int, c.Width())
	holes := 0
	for x := range c.Width() {
		for y := c.NumRows() - 1; y >= 0; y-- {
			if c.Cell(geom.Pt(x, y)).Filled {
				if heights[x] == 0 {
					heights[x] = y + 1
				}
			} else if heights[x] > 0 {
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bumpiness += abs(h - heights[x-1])
		}
	}

	return w.Height*float64(aggregate) +
		w.Lines*float64(lines) +
		w.Holes*float64(holes) +
		w.Bumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
