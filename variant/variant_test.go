package variant_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
	"github.com/plus3/blockfall/variant"
)

// onlyO plays Classic rules with nothing but O pieces.
type onlyO struct {
	*variant.Classic
}

func (onlyO) Generator(c *piece.Chooser) piece.Generator {
	return piece.NewSequenceGenerator(c.Catalog(), c.Catalog().Index(piece.O))
}

func TestScorer(t *testing.T) {
	d := driver.New(driver.DefaultConfig(), variant.NewClassic())
	var s variant.Scorer

	assert.Equal(t, 0, s.Points(0))
	assert.Equal(t, 1, s.Points(1))
	assert.Equal(t, 3, s.Points(2))
	assert.Equal(t, 5, s.Points(3))
	assert.Equal(t, 8, s.Points(4))

	s.Award(d, 4)
	assert.Equal(t, 8, d.Score())
	s.Award(d, 4)
	assert.Equal(t, 20, d.Score(), "back to back four-row clears score 12")
	s.Award(d, 1)
	s.Award(d, 4)
	assert.Equal(t, 29, d.Score(), "a single breaks the streak")
	assert.Equal(t, 5, d.Level())

	s.Award(d, 0)
	assert.Equal(t, 29, d.Score())
}

func TestClassicSingleLineClear(t *testing.T) {
	d := driver.New(driver.DefaultConfig(), onlyO{variant.NewClassic()})
	b := d.Board()
	b.Fill(geom.Pt(8, 0), 9)
	b.Fill(geom.Pt(9, 0), 9)

	var last transition.Transition
	for _, shift := range []int{6, 4, 2, 0} {
		require.Equal(t, piece.O, d.Core().Active().Piece.Type)
		for range shift {
			require.True(t, d.TranslateLeft())
		}
		_, last = d.FastFall()
		if len(last.RowsDeleted()) == 0 {
			d.Settle(last)
		}
	}

	require.Equal(t, []int{0}, last.RowsDeleted())
	heightBefore := b.NumRows()
	levelBefore := d.Level()
	scoreBefore := d.Score()

	next := d.FinishTransition(last)
	assert.True(t, next.Inert())
	assert.Equal(t, heightBefore-1, b.NumRows())
	assert.Equal(t, scoreBefore+1, d.Score())
	assert.Equal(t, levelBefore, d.Level())
	assert.Equal(t, 1, d.Lines())
}

func TestCascadeGenerator(t *testing.T) {
	c := piece.NewChooser(piece.Standard)
	g := variant.NewCascadeGenerator(c)

	seen := map[uint32]bool{}
	for n := range 21 {
		p := g.Next()
		value := p.Values[0]
		assert.Equal(t, uint32(p.Index+n*piece.Standard.Len()), value)
		for _, v := range p.Values {
			assert.Equal(t, value, v)
		}
		assert.False(t, seen[value], "value %d reused", value)
		seen[value] = true
	}
}

func TestStickyGenerator(t *testing.T) {
	deal := func() [][]uint32 {
		c := piece.NewChooser(piece.Standard)
		c.Seed([]byte("sticky"))
		g := variant.NewStickyGenerator(c)
		var out [][]uint32
		for range 40 {
			p := g.Next()
			for _, v := range p.Values {
				require.Contains(t, []uint32{uint32(p.Index), uint32((p.Index + 1) % 7)}, v)
			}
			out = append(out, p.Values)
		}
		return out
	}

	first := deal()
	assert.Equal(t, first, deal(), "the seed fixes the recolouring too")

	split := 0
	for _, values := range first {
		for _, v := range values[1:] {
			if v != values[0] {
				split++
				break
			}
		}
	}
	assert.Positive(t, split)
}

func TestCascadeDropsHangingCells(t *testing.T) {
	d := driver.New(driver.DefaultConfig(), variant.NewCascade())
	b := d.Board()
	b.Fill(geom.Pt(0, 0), 60)
	for x := range 10 {
		b.Fill(geom.Pt(x, 1), 50)
	}
	b.Fill(geom.Pt(5, 2), 70)

	steps := d.Settle(transition.RowsDeleted(1))
	assert.Equal(t, 2, steps)
	assert.Equal(t, uint32(70), b.Cell(geom.Pt(5, 0)).Value)
	assert.Equal(t, 1, b.NumRows())
	assert.Equal(t, 1, d.Score())
}

func TestStickySplitsOnLock(t *testing.T) {
	v := variant.NewSticky()
	d := driver.New(driver.DefaultConfig(), v)
	b := d.Board()
	b.Fill(geom.Pt(3, 0), 1)
	b.Fill(geom.Pt(3, 1), 2)
	b.Fill(geom.Pt(4, 1), 4)

	lock := game.Lock{Footprint: []geom.Point{{3, 1}, {4, 1}}}
	tr := v.PieceLocked(d, lock, transition.Transition{})
	assert.Equal(t, []board.Fall{{Point: geom.Pt(4, 1), Distance: 1}}, tr.PointsFalling())
}

func TestStickySplitsWhenLockClearsRow(t *testing.T) {
	v := variant.NewSticky()
	d := driver.New(driver.DefaultConfig(), v)
	require.False(t, d.GameOver())
	b := d.Board()

	// The piece's lower half hangs over an empty floor; its upper half
	// completes row 2.
	b.Fill(geom.Pt(0, 2), 5)
	for x := 3; x < 10; x++ {
		b.Fill(geom.Pt(x, 2), 5)
	}
	footprint := []geom.Point{{0, 1}, {1, 1}, {1, 2}, {2, 2}}
	for _, p := range footprint[:2] {
		b.Fill(p, 2)
	}
	for _, p := range footprint[2:] {
		b.Fill(p, 1)
	}

	lock := game.Lock{Footprint: footprint, Rows: []int{2}}
	tr := v.PieceLocked(d, lock, transition.RowsDeleted(2))
	assert.Equal(t, []int{2}, tr.RowsDeleted())
	assert.NotEmpty(t, tr.PointsFalling())

	d.Settle(tr)
	assert.Equal(t, uint32(2), b.Cell(geom.Pt(0, 0)).Value)
	assert.Equal(t, uint32(2), b.Cell(geom.Pt(1, 0)).Value)
	assert.False(t, b.IsFilled(geom.Pt(0, 1)))
	assert.False(t, b.IsFilled(geom.Pt(1, 1)))
	assert.Equal(t, 1, b.NumRows())
	assert.Equal(t, 2, b.RowCount(0))
	assert.Equal(t, 1, d.Score())
	assert.False(t, d.Busy())
}

func TestStickySettlesAfterClear(t *testing.T) {
	d := driver.New(driver.DefaultConfig(), variant.NewSticky())
	b := d.Board()
	for x := range 10 {
		b.Fill(geom.Pt(x, 0), 3)
	}
	b.Fill(geom.Pt(2, 1), 1)
	b.Fill(geom.Pt(2, 2), 1)
	b.Fill(geom.Pt(3, 2), 5)

	d.Settle(transition.RowsDeleted(0))
	assert.Equal(t, uint32(1), b.Cell(geom.Pt(2, 0)).Value)
	assert.Equal(t, uint32(1), b.Cell(geom.Pt(2, 1)).Value)
	assert.Equal(t, uint32(5), b.Cell(geom.Pt(3, 0)).Value, "the lone cell drops past its neighbour")
}

func TestFusionCatalog(t *testing.T) {
	v := variant.NewFusion()
	assert.Equal(t, 8, v.Catalog().Len())
	assert.Equal(t, 7, v.Catalog().Index(variant.Wildcard))
	assert.Equal(t, 1, variant.Wildcard.CellCount())
}

func TestFusionWildcardRow(t *testing.T) {
	v := variant.NewFusion()
	d := driver.New(driver.DefaultConfig(), v)
	b := d.Board()
	for x := range 10 {
		value := uint32(1)
		if x == 4 {
			value = 7
		}
		b.Fill(geom.Pt(x, 0), value)
	}
	b.Fill(geom.Pt(2, 1), 3)

	tr := v.PieceLocked(d, game.Lock{}, transition.RowsDeleted(0))
	assert.Empty(t, tr.RowsDeleted())
	assert.Len(t, tr.PointsDeleted(), 9)
	assert.NotContains(t, tr.PointsDeleted(), geom.Pt(4, 0))
	assert.Equal(t, 1, d.Score())

	d.Settle(tr)
	assert.Equal(t, uint32(7), b.Cell(geom.Pt(4, 0)).Value, "the wildcard stays")
	assert.Equal(t, uint32(3), b.Cell(geom.Pt(2, 0)).Value, "the cell above settles")
	assert.Equal(t, 2, b.RowCount(0))
	assert.Equal(t, 1, b.NumRows())
}

func TestFusionPlainRowClears(t *testing.T) {
	v := variant.NewFusion()
	d := driver.New(driver.DefaultConfig(), v)
	for x := range 10 {
		d.Board().Fill(geom.Pt(x, 0), 2)
	}

	tr := v.PieceLocked(d, game.Lock{}, transition.RowsDeleted(0))
	assert.Equal(t, []int{0}, tr.RowsDeleted())
	assert.Empty(t, tr.PointsDeleted())
}

func TestFusionScoresMixedClearOnce(t *testing.T) {
	v := variant.NewFusion()
	d := driver.New(driver.DefaultConfig(), v)
	b := d.Board()
	for x := range 10 {
		b.Fill(geom.Pt(x, 0), 2)
		value := uint32(3)
		if x == 4 {
			value = 7
		}
		b.Fill(geom.Pt(x, 1), value)
	}

	tr := v.PieceLocked(d, game.Lock{Rows: []int{0, 1}}, transition.RowsDeleted(0, 1))
	assert.Equal(t, []int{0}, tr.RowsDeleted())
	assert.Len(t, tr.PointsDeleted(), 9)
	assert.Equal(t, 3, d.Score(), "two rows from one lock score as a double")

	d.Settle(tr)
	assert.Equal(t, 3, d.Score())
	assert.Equal(t, uint32(7), b.Cell(geom.Pt(4, 0)).Value)
	assert.Equal(t, 1, b.NumRows())
	assert.Equal(t, 1, b.RowCount(0))
}

func TestFusionWildcardOnlyRow(t *testing.T) {
	v := variant.NewFusion()
	d := driver.New(driver.DefaultConfig(), v)
	b := d.Board()
	for x := range 10 {
		b.Fill(geom.Pt(x, 0), 7)
	}

	for range 3 {
		tr := v.PieceLocked(d, game.Lock{Rows: []int{0}}, transition.RowsDeleted(0))
		assert.True(t, tr.Inert())
		assert.Zero(t, d.Settle(tr))
	}
	assert.Zero(t, d.Score())
	assert.True(t, b.RowFull(0))
}

func TestByName(t *testing.T) {
	for _, name := range variant.Names() {
		v, err := variant.ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, v.Name())
	}

	v, err := variant.ByName("Classic")
	require.NoError(t, err)
	assert.Equal(t, "classic", v.Name())

	_, err = variant.ByName("tetris99")
	assert.True(t, errors.Is(err, variant.ErrUnknown))

	assert.Equal(t, []string{"cascade", "classic", "fusion", "sticky"}, variant.Names())
}

func TestVariantsPlayToTheEnd(t *testing.T) {
	for _, name := range variant.Names() {
		t.Run(name, func(t *testing.T) {
			v, err := variant.ByName(name)
			require.NoError(t, err)
			cfg := driver.DefaultConfig()
			cfg.Seed = []byte(name)
			d := driver.New(cfg, v)

			for i := 0; i < 500 && !d.GameOver(); i++ {
				if i%3 == 0 {
					d.TranslateLeft()
				}
				if i%5 == 0 {
					d.RotateClockwise()
				}
				_, tr := d.FastFall()
				d.Settle(tr)
				require.False(t, d.Busy())

				b := d.Board()
				require.LessOrEqual(t, b.NumRows(), b.Height())
				b.Each(func(p geom.Point, _ uint32) {
					require.True(t, b.OnBoard(p))
				})
				for y := range b.NumRows() {
					require.Less(t, b.RowCount(y), b.Width()+1)
				}
			}
			assert.Positive(t, d.Stats().Pieces)
		})
	}
}
