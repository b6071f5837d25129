package replay

import (
	"github.com/plus3/blockfall/driver"
)

// Player feeds a recorded session into a fresh driver, one frame per Step.
type Player struct {
	d       *driver.Driver
	session *Session
	frame   int
	next    int
}

// NewPlayer builds the driver for s. base supplies everything the session
// does not record, such as the logger and gravity curve.
func NewPlayer(s *Session, base driver.Config) (*Player, error) {
	d, err := s.NewDriver(base)
	if err != nil {
		return nil, err
	}
	return &Player{d: d, session: s}, nil
}

// Driver returns the driver being replayed into.
func (p *Player) Driver() *driver.Driver { return p.d }

// Frame returns the index of the next frame to play.
func (p *Player) Frame() int { return p.frame }

// Done reports whether the whole session has been played.
func (p *Player) Done() bool {
	if p.frame > p.session.Frames {
		return true
	}
	return p.frame == p.session.Frames && p.next >= len(p.session.Actions)
}

// Step applies the actions recorded for the current frame and then ticks,
// except after the last recorded tick, where only trailing actions remain.
func (p *Player) Step() bool {
	if p.Done() {
		return false
	}

	actions := p.session.Actions
	for p.next < len(actions) && actions[p.next].Frame <= p.frame {
		_, t := Apply(p.d, actions[p.next].Action)
		p.d.Settle(t)
		p.next++
	}
	if p.frame < p.session.Frames {
		p.d.Settle(p.d.NextFrame())
	}
	p.frame++
	return true
}

// Input applies a live action once the recording is exhausted and rejects
// it before then.
func (p *Player) Input(a Action) bool {
	if !p.Done() {
		return false
	}
	ok, t := Apply(p.d, a)
	p.d.Settle(t)
	return ok
}

// Run plays the session to the end and returns the number of steps taken.
func (p *Player) Run() int {
	steps := 0
	for p.Step() {
		steps++
	}
	return steps
}
