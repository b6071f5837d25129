// Package replay records the player input of a game and plays it back
// against a fresh driver built from the same seed and configuration.
package replay

import (
	"fmt"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/transition"
)

// Action is one player input.
type Action uint8

const (
	TranslateLeft Action = iota
	TranslateRight
	RotateClockwise
	RotateCounterClockwise
	Hold
	FastFall
	Fall
	actionCount
)

var actionNames = [actionCount]string{
	TranslateLeft:          "left",
	TranslateRight:         "right",
	RotateClockwise:        "cw",
	RotateCounterClockwise: "ccw",
	Hold:                   "hold",
	FastFall:               "drop",
	Fall:                   "fall",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Valid reports whether a names a known action.
func (a Action) Valid() bool { return a < actionCount }

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown action %d", uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Apply issues a on d. It reports whether the action took effect and
// returns the transition a lock produced, if any.
func Apply(d *driver.Driver, a Action) (bool, transition.Transition) {
	switch a {
	case TranslateLeft:
		return d.TranslateLeft(), transition.Transition{}
	case TranslateRight:
		return d.TranslateRight(), transition.Transition{}
	case RotateClockwise:
		return d.RotateClockwise(), transition.Transition{}
	case RotateCounterClockwise:
		return d.RotateCounterClockwise(), transition.Transition{}
	case Hold:
		return d.Hold(), transition.Transition{}
	case FastFall:
		if d.GameOver() || d.Busy() {
			return false, transition.Transition{}
		}
		_, t := d.FastFall()
		return true, t
	case Fall:
		if d.GameOver() || d.Busy() {
			return false, transition.Transition{}
		}
		_, t := d.Fall()
		return true, t
	default:
		return false, transition.Transition{}
	}
}
