package piece

import "github.com/plus3/blockfall/geom"

// Super Rotation System kick tables, indexed [orientation][direction].
var (
	IKicks = KickTable{
		geom.Origin: {
			geom.Clockwise:        {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
			geom.CounterClockwise: {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
		},
		geom.Right: {
			geom.Clockwise:        {{-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
			geom.CounterClockwise: {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		},
		geom.Around: {
			geom.Clockwise:        {{2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
			geom.CounterClockwise: {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
		},
		geom.Left: {
			geom.Clockwise:        {{1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
			geom.CounterClockwise: {{-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		},
	}

	// CommonKicks is shared by J, L, S, T, Z and O.
	CommonKicks = KickTable{
		geom.Origin: {
			geom.Clockwise:        {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
			geom.CounterClockwise: {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
		},
		geom.Right: {
			geom.Clockwise:        {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
			geom.CounterClockwise: {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		},
		geom.Around: {
			geom.Clockwise:        {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
			geom.CounterClockwise: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		},
		geom.Left: {
			geom.Clockwise:        {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
			geom.CounterClockwise: {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		},
	}
)

// The seven standard pieces.
var (
	I = NewType("I", []geom.PartialPoint{{-1.5, 0.5}, {-0.5, 0.5}, {0.5, 0.5}, {1.5, 0.5}}, IKicks, geom.Pt(-2, 1))
	T = NewType("T", []geom.PartialPoint{{-1, 0}, {0, 0}, {1, 0}, {0, 1}}, CommonKicks, geom.Pt(-1, 1))
	O = NewType("O", []geom.PartialPoint{{-0.5, 0.5}, {0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5}}, CommonKicks, geom.Pt(-2, 0))
	S = NewType("S", []geom.PartialPoint{{1, 1}, {0, 1}, {0, 0}, {-1, 0}}, CommonKicks, geom.Pt(-1, 1))
	Z = NewType("Z", []geom.PartialPoint{{-1, 1}, {0, 1}, {0, 0}, {1, 0}}, CommonKicks, geom.Pt(-1, 1))
	J = NewType("J", []geom.PartialPoint{{-1, 1}, {1, 0}, {0, 0}, {-1, 0}}, CommonKicks, geom.Pt(-1, 1))
	L = NewType("L", []geom.PartialPoint{{1, 1}, {1, 0}, {0, 0}, {-1, 0}}, CommonKicks, geom.Pt(-1, 1))
)

// Standard is the catalog of the seven standard pieces in index order
// I, T, O, S, Z, J, L. Cell values and colours follow this order.
var Standard = NewCatalog(I, T, O, S, Z, J, L)
