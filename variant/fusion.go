package variant

import (
	"slices"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/geom"
	"github.com/plus3/blockfall/physics"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/transition"
)

// Wildcard is the single-cell fusion piece.
var Wildcard = piece.NewType("W", []geom.PartialPoint{{0, 0}}, piece.CommonKicks, geom.Pt(0, 0))

// FusionCatalog is the standard catalog with Wildcard appended.
var FusionCatalog = piece.Standard.With(Wildcard)

// Fusion adds wildcard cells. A full row holding a wildcard does not clear
// as a row: its other cells are deleted and the wildcards stay behind,
// after which everything above settles and may complete more rows.
type Fusion struct {
	Scorer
	wildcard uint32
}

func NewFusion() *Fusion {
	return &Fusion{wildcard: uint32(FusionCatalog.Index(Wildcard))}
}

func (*Fusion) Name() string { return "fusion" }

func (*Fusion) Catalog() *piece.Catalog { return FusionCatalog }

func (f *Fusion) PieceLocked(d *driver.Driver, _ game.Lock, t transition.Transition) transition.Transition {
	return f.extract(d, t)
}

// RowsCleared leaves scoring to extract, which saw these rows first.
func (*Fusion) RowsCleared(d *driver.Driver, rows []int) transition.Transition {
	return driver.DefaultRowsCleared(d, rows)
}

// PointsCleared settles the stack above rows that lost their non-wildcard cells.
func (*Fusion) PointsCleared(d *driver.Driver, points []geom.Point) transition.Transition {
	rows := make([]int, 0, len(points))
	for _, p := range points {
		rows = append(rows, p.Y)
	}
	slices.Sort(rows)
	rows = slices.Compact(rows)
	return transition.PointsFalling(physics.FromRows(d.Board(), rows)...)
}

func (f *Fusion) PointsFell(d *driver.Driver, _ []board.Fall, full []int) transition.Transition {
	return f.extract(d, transition.RowsDeleted(full...))
}

// extract reclassifies the rows t deletes. Rows with no wildcard stay row
// deletions; rows with one become deletions of their other cells. A row of
// nothing but wildcards has nothing to delete and is left alone. Both kinds
// are scored together as one clear.
func (f *Fusion) extract(d *driver.Driver, t transition.Transition) transition.Transition {
	rows := t.TakeRowsDeleted()
	if len(rows) == 0 {
		return t
	}
	b := d.Board()
	scored := 0
	for _, y := range rows {
		var others []geom.Point
		for x := range b.Width() {
			p := geom.Pt(x, y)
			if b.Cell(p).Value != f.wildcard {
				others = append(others, p)
			}
		}
		switch len(others) {
		case 0:
			continue
		case b.Width():
			t.AddRowsDeleted(y)
		default:
			t.AddPointsDeleted(others...)
		}
		scored++
	}
	f.Award(d, scored)
	return t
}
