package driver

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/piece"
)

// GravityFunc returns how many frames the active piece takes to fall one
// row at level. Values below one move several rows per frame.
type GravityFunc func(level int) float64

// MaxLevel is the highest level a game can reach.
const MaxLevel = 14

var gravityTable = [MaxLevel + 1]float64{48, 43, 38, 33, 28, 23, 18, 13, 8, 6, 5, 5, 5, 4, 4}

// DefaultGravity is the classic frames-per-row curve, flat beyond the table.
func DefaultGravity(level int) float64 {
	return gravityTable[max(0, min(level, MaxLevel))]
}

// Config is supplied at construction and never changes during a game.
type Config struct {
	Width       int
	Height      int
	QueueLength int
	// LockDelay is the number of frames a grounded piece may still be
	// moved before it locks under gravity.
	LockDelay int
	Gravity   GravityFunc
	// Seed feeds the piece chooser. Shorter seeds are zero padded and
	// longer ones truncated to piece.SeedSize bytes.
	Seed []byte
	// Catalog defaults to piece.Standard unless the variant brings its own.
	Catalog *piece.Catalog
	Logger  logrus.FieldLogger
}

// DefaultConfig returns a 10x20 board with three lookahead pieces and half
// a second of lock delay at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		Width:       10,
		Height:      20,
		QueueLength: 3,
		LockDelay:   30,
		Gravity:     DefaultGravity,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.QueueLength < 0 {
		c.QueueLength = 0
	}
	if c.LockDelay < 0 {
		c.LockDelay = 0
	}
	if c.Gravity == nil {
		c.Gravity = d.Gravity
	}
	if c.Catalog == nil {
		c.Catalog = piece.Standard
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}
