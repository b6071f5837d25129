package replay

import (
	"slices"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/variant"
)

// Recorder wraps a driver and keeps every action issued through it.
// Transition chains are settled as soon as they appear, which keeps the
// recording independent of how a renderer paces them.
type Recorder struct {
	d       *driver.Driver
	session Session
}

// NewRecorder starts a recorded game of the named variant.
func NewRecorder(variantName string, cfg driver.Config) (*Recorder, error) {
	v, err := variant.ByName(variantName)
	if err != nil {
		return nil, err
	}
	d := driver.New(cfg, v)
	applied := d.Config()

	return &Recorder{
		d: d,
		session: Session{
			Variant:     v.Name(),
			Seed:        piece.Seed(applied.Seed),
			Width:       applied.Width,
			Height:      applied.Height,
			QueueLength: applied.QueueLength,
			LockDelay:   applied.LockDelay,
		},
	}, nil
}

// Driver returns the recorded driver. Input sent to it directly is not recorded.
func (r *Recorder) Driver() *driver.Driver { return r.d }

// Frame returns the index of the frame being recorded.
func (r *Recorder) Frame() int { return r.session.Frames }

// Do records a and applies it.
func (r *Recorder) Do(a Action) bool {
	r.session.Actions = append(r.session.Actions, Entry{Frame: r.session.Frames, Action: a})
	ok, t := Apply(r.d, a)
	r.d.Settle(t)
	return ok
}

// NextFrame ticks the driver and moves on to the next frame.
func (r *Recorder) NextFrame() {
	r.d.Settle(r.d.NextFrame())
	r.session.Frames++
}

// Session returns a copy of the recording so far.
func (r *Recorder) Session() *Session {
	s := r.session
	s.Actions = slices.Clone(r.session.Actions)
	return &s
}
