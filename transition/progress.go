package transition

// Kind names one of the four collections of a Transition.
type Kind int

const (
	KindPointsDeleted Kind = iota
	KindRowsDeleted
	KindPointsFalling
	KindPointsAdded
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPointsDeleted:
		return "points-deleted"
	case KindRowsDeleted:
		return "rows-deleted"
	case KindPointsFalling:
		return "points-falling"
	case KindPointsAdded:
		return "points-added"
	default:
		return "unknown"
	}
}

// DefaultDurations are the animation lengths in frames used by NewProgress.
var DefaultDurations = [kindCount]int{
	KindPointsDeleted: 10,
	KindRowsDeleted:   10,
	KindPointsFalling: 10,
	KindPointsAdded:   0,
}

// Progress tracks how far a renderer has animated a transition. Kinds the
// transition does not carry get a zero duration.
type Progress struct {
	totals  [kindCount]int
	longest int
	elapsed int
}

// NewProgress starts tracking t with DefaultDurations.
func NewProgress(t *Transition) Progress {
	return NewProgressWith(t, DefaultDurations)
}

// NewProgressWith starts tracking t with custom per-kind durations.
func NewProgressWith(t *Transition, durations [kindCount]int) Progress {
	p := Progress{totals: durations}
	present := [kindCount]bool{
		KindPointsDeleted: len(t.pointsDeleted) > 0,
		KindRowsDeleted:   len(t.rowsDeleted) > 0,
		KindPointsFalling: len(t.pointsFalling) > 0,
		KindPointsAdded:   len(t.pointsAdded) > 0,
	}
	for k, ok := range present {
		if !ok {
			p.totals[k] = 0
		}
		p.longest = max(p.longest, p.totals[k])
	}
	return p
}

// Of returns the animation fraction for kind k, from 0 to 1.
func (p *Progress) Of(k Kind) float64 {
	total := p.totals[k]
	if total == 0 || p.elapsed >= total {
		return 1
	}
	return float64(p.elapsed) / float64(total)
}

// NextFrame advances the animation by a frame.
func (p *Progress) NextFrame() {
	p.elapsed++
}

// Complete reports whether every kind has finished animating.
func (p *Progress) Complete() bool {
	return p.elapsed > p.longest
}
