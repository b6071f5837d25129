package geom

// Orientation is one of the four quarter turns a piece can be in.
type Orientation uint8

const (
	// Origin is the spawn orientation.
	Origin Orientation = iota
	// Right is a quarter turn clockwise from Origin.
	Right
	// Around is a half turn.
	Around
	// Left is a quarter turn counter clockwise from Origin.
	Left
)

// OrientationCount is the number of distinct orientations.
const OrientationCount = 4

// Direction is a rotation sense.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// DirectionCount is the number of rotation directions.
const DirectionCount = 2

// Rotated returns the orientation reached by turning once in direction d.
func (o Orientation) Rotated(d Direction) Orientation {
	switch d {
	case Clockwise:
		return (o + 1) % OrientationCount
	default:
		return (o + OrientationCount - 1) % OrientationCount
	}
}

func (o Orientation) String() string {
	switch o {
	case Origin:
		return "origin"
	case Right:
		return "right"
	case Around:
		return "around"
	case Left:
		return "left"
	}
	return "invalid"
}

func (d Direction) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counterclockwise"
}
