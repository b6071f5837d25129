package physics

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/geom"
)

// tracker maps board cells to the shape that owns them.
type tracker struct {
	width  int
	owners *intmap.Map[int, int]
}

func newTracker(width, capacity int) *tracker {
	return &tracker{
		width:  width,
		owners: intmap.New[int, int](capacity),
	}
}

func (t *tracker) key(p geom.Point) int {
	return p.Y*t.width + p.X
}

func (t *tracker) owner(p geom.Point) (int, bool) {
	return t.owners.Get(t.key(p))
}

func (t *tracker) assign(p geom.Point, shape int) {
	t.owners.Put(t.key(p), shape)
}

func (t *tracker) len() int {
	return t.owners.Len()
}
