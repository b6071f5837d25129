package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
)

// scripted deals a fixed piece sequence and records every callback.
type scripted struct {
	indices       []int
	rowsCleared   [][]int
	pointsCleared [][]geom.Point
	fell          int
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Generator(c *piece.Chooser) piece.Generator {
	return piece.NewSequenceGenerator(c.Catalog(), s.indices...)
}

func (s *scripted) PieceLocked(d *driver.Driver, lock game.Lock, t transition.Transition) transition.Transition {
	return driver.DefaultPieceLocked(d, lock, t)
}

func (s *scripted) RowsCleared(d *driver.Driver, rows []int) transition.Transition {
	s.rowsCleared = append(s.rowsCleared, rows)
	return driver.DefaultRowsCleared(d, rows)
}

func (s *scripted) PointsCleared(d *driver.Driver, points []geom.Point) transition.Transition {
	s.pointsCleared = append(s.pointsCleared, points)
	return driver.DefaultPointsCleared(d, points)
}

func (s *scripted) PointsFell(d *driver.Driver, falls []board.Fall, full []int) transition.Transition {
	s.fell++
	return driver.DefaultPointsFell(d, falls, full)
}

func newDriver(cfg driver.Config, indices ...int) (*driver.Driver, *scripted) {
	v := &scripted{indices: indices}
	return driver.New(cfg, v), v
}

func constantGravity(frames float64) driver.GravityFunc {
	return func(int) float64 { return frames }
}

func TestHoldGate(t *testing.T) {
	d, _ := newDriver(driver.DefaultConfig(), 0, 1, 2, 3)

	require.True(t, d.Hold())
	assert.False(t, d.Hold(), "second hold in the same drop is rejected")
	held, _ := d.Core().Held()
	assert.Equal(t, piece.I, held.Type)
	assert.Equal(t, piece.T, d.Core().Active().Piece.Type)

	_, tr := d.FastFall()
	d.Settle(tr)
	assert.True(t, d.Hold(), "a lock re-opens the gate")
	assert.Equal(t, 2, d.Stats().Holds)
}

func TestGravityAndLockDelay(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.Gravity = constantGravity(2)
	cfg.LockDelay = 3
	d, _ := newDriver(cfg, 2)

	d.NextFrame()
	assert.Equal(t, 19, d.Core().Active().Position.Y)
	d.NextFrame()
	assert.Equal(t, 18, d.Core().Active().Position.Y)

	for range 38 {
		d.Settle(d.NextFrame())
	}
	assert.Equal(t, 0, d.Stats().Pieces, "still inside the lock delay")
	assert.Equal(t, 1, d.Core().Active().Position.Y)

	d.Settle(d.NextFrame())
	assert.Equal(t, 1, d.Stats().Pieces)
	assert.Equal(t, 2, d.Board().NumRows())
}

func TestLockDelayDisarms(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.Gravity = constantGravity(1)
	cfg.LockDelay = 5
	d, _ := newDriver(cfg, 2)
	d.Board().Fill(geom.Pt(6, 5), 9)
	d.Board().Fill(geom.Pt(7, 5), 9)
	d.Core().Refresh()

	for range 12 {
		d.NextFrame()
	}
	require.Equal(t, 7, d.Core().Active().Position.Y, "resting on the ledge")

	d.NextFrame()
	require.True(t, d.TranslateLeft())
	require.True(t, d.TranslateLeft())
	d.NextFrame()
	d.NextFrame()
	assert.Less(t, d.Core().Active().Position.Y, 7, "off the ledge it falls again")
	assert.Equal(t, 0, d.Stats().Pieces)
}

func TestZeroLockDelay(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.Gravity = constantGravity(1)
	cfg.LockDelay = 0
	d, _ := newDriver(cfg, 2)

	for range 18 {
		d.NextFrame()
	}
	assert.Equal(t, 0, d.Stats().Pieces)
	d.Settle(d.NextFrame())
	assert.Equal(t, 1, d.Stats().Pieces)
}

func TestFinishShiftsPointsPastClearedRows(t *testing.T) {
	d, v := newDriver(driver.DefaultConfig(), 2)
	b := d.Board()
	for x := range 10 {
		b.Fill(geom.Pt(x, 0), 9)
	}
	b.Fill(geom.Pt(3, 1), 4)
	b.Fill(geom.Pt(3, 2), 5)

	tr := transition.RowsDeleted(0)
	tr.AddPointsDeleted(geom.Pt(3, 2), geom.Pt(5, 0))

	next := d.FinishTransition(tr)
	assert.True(t, next.Inert())
	assert.Equal(t, [][]int{{0}}, v.rowsCleared)
	assert.Equal(t, [][]geom.Point{{{3, 1}}}, v.pointsCleared, "the point on the removed row is dropped")
	assert.Equal(t, uint32(4), b.Cell(geom.Pt(3, 0)).Value)
	assert.Equal(t, 1, b.NumRows())
	assert.Equal(t, 1, d.Lines())
}

func TestFallsChainIntoRowClear(t *testing.T) {
	d, v := newDriver(driver.DefaultConfig(), 2)
	b := d.Board()
	for x := range 9 {
		b.Fill(geom.Pt(x, 0), 9)
	}
	b.Fill(geom.Pt(9, 3), 1)

	steps := d.Settle(transition.PointsFalling(board.Fall{Point: geom.Pt(9, 3), Distance: 3}))
	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, v.fell)
	assert.Equal(t, [][]int{{0}}, v.rowsCleared)
	assert.Equal(t, 0, b.NumRows())
	assert.Equal(t, 2, d.Stats().LongestChain)
}

func TestBusyBlocksInput(t *testing.T) {
	d, _ := newDriver(driver.DefaultConfig(), 0)
	for x := range 6 {
		d.Board().Fill(geom.Pt(x, 0), 9)
	}
	require.True(t, d.TranslateRight())

	_, tr := d.FastFall()
	require.Equal(t, []int{0}, tr.RowsDeleted())
	assert.True(t, d.Busy())
	assert.False(t, d.TranslateLeft())
	next := d.NextFrame()
	assert.True(t, next.Inert())
	assert.Equal(t, []int{0}, d.Snapshot().Pending.RowsDeleted)

	d.Settle(tr)
	assert.False(t, d.Busy())
	assert.True(t, d.TranslateLeft())
}

func TestGameOver(t *testing.T) {
	d, _ := newDriver(driver.DefaultConfig(), 2)

	for range 20 {
		if d.GameOver() {
			break
		}
		_, tr := d.FastFall()
		d.Settle(tr)
	}
	require.True(t, d.GameOver())
	assert.Equal(t, 10, d.Stats().Pieces)

	assert.False(t, d.TranslateLeft())
	assert.False(t, d.Hold())
	next := d.NextFrame()
	assert.True(t, next.Inert())
	locked, tr := d.Fall()
	assert.False(t, locked)
	assert.True(t, tr.Inert())
}

func TestRaiseLevel(t *testing.T) {
	d, _ := newDriver(driver.DefaultConfig(), 2)
	d.RaiseLevel(3)
	d.RaiseLevel(1)
	assert.Equal(t, 3, d.Level())
	d.RaiseLevel(40)
	assert.Equal(t, driver.MaxLevel, d.Level())
}

func TestSeededDriversAgree(t *testing.T) {
	cfg := driver.DefaultConfig()
	cfg.Seed = []byte("same seed")
	a := driver.New(cfg, plain{})
	b := driver.New(cfg, plain{})

	for range 20 {
		assert.Equal(t, a.Core().Active().Piece.Index, b.Core().Active().Piece.Index)
		_, ta := a.FastFall()
		_, tb := b.FastFall()
		a.Settle(ta)
		b.Settle(tb)
		if a.GameOver() {
			break
		}
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

type plain struct{}

func (plain) Name() string { return "plain" }
func (plain) PieceLocked(d *driver.Driver, l game.Lock, t transition.Transition) transition.Transition {
	return driver.DefaultPieceLocked(d, l, t)
}
func (plain) RowsCleared(d *driver.Driver, r []int) transition.Transition {
	return driver.DefaultRowsCleared(d, r)
}
func (plain) PointsCleared(d *driver.Driver, p []geom.Point) transition.Transition {
	return driver.DefaultPointsCleared(d, p)
}
func (plain) PointsFell(d *driver.Driver, f []board.Fall, r []int) transition.Transition {
	return driver.DefaultPointsFell(d, f, r)
}

func TestSnapshot(t *testing.T) {
	d, _ := newDriver(driver.DefaultConfig(), 1, 2, 0)
	d.Board().Fill(geom.Pt(0, 0), 7)

	s := d.Snapshot()
	assert.Equal(t, "scripted", s.Variant)
	assert.Equal(t, "T", s.Piece)
	assert.Equal(t, []string{"O", "I", "T"}, s.Queue)
	assert.Equal(t, []driver.Cell{{Point: geom.Pt(0, 0), Value: 7}}, s.Cells)
	assert.Len(t, s.Active, 4)
	assert.Len(t, s.Ghost, 4)
	assert.Empty(t, s.Held)
}
