package replay

import (
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/variant"
)

// Entry is an action issued during a frame, before that frame's tick.
type Entry struct {
	Frame  int    `json:"frame"`
	Action Action `json:"action"`
}

// Session is everything needed to reproduce a game.
type Session struct {
	// ID names the session in a Store. It is not part of the encoding.
	ID          string               `json:"-"`
	Variant     string               `json:"variant"`
	Seed        [piece.SeedSize]byte `json:"-"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	QueueLength int                  `json:"queueLength"`
	LockDelay   int                  `json:"lockDelay"`
	// Frames is the number of ticks recorded.
	Frames  int     `json:"frames"`
	Actions []Entry `json:"actions"`
}

// Config returns base with the session's board and timing settings.
func (s *Session) Config(base driver.Config) driver.Config {
	base.Width = s.Width
	base.Height = s.Height
	base.QueueLength = s.QueueLength
	base.LockDelay = s.LockDelay
	base.Seed = s.Seed[:]
	return base
}

// NewDriver builds a fresh driver for the session.
func (s *Session) NewDriver(base driver.Config) (*driver.Driver, error) {
	v, err := variant.ByName(s.Variant)
	if err != nil {
		return nil, err
	}
	return driver.New(s.Config(base), v), nil
}

// NewID returns a store id for a session of variant starting now.
func NewID(variantName string, now time.Time) string {
	return variantName + "-" + now.UTC().Format("20060102T150405.000000000")
}
