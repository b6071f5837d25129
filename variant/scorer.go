// Package variant holds the rule sets a driver can play: Classic, Cascade,
// Sticky and Fusion. They share one scoring scheme and differ in how pieces
// are dealt and what happens to the stack once rows or points clear.
package variant

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/blockfall/driver"
)

// ErrUnknown is returned by ByName for names with no variant.
var ErrUnknown = errors.New("unknown variant")

// Scorer awards points for cleared rows: 1, 3, 5 and 8 for one to four
// rows, and 12 for four or more rows right after another such clear. The
// level follows the score at one level per five points.
type Scorer struct {
	lastTetris bool
}

// Points returns what clearing rows rows scores, without recording it.
func (s *Scorer) Points(rows int) int {
	switch {
	case rows <= 0:
		return 0
	case rows == 1:
		return 1
	case rows == 2:
		return 3
	case rows == 3:
		return 5
	case s.lastTetris:
		return 12
	default:
		return 8
	}
}

// Award scores a clear of rows rows on d and updates the level.
func (s *Scorer) Award(d *driver.Driver, rows int) {
	if rows <= 0 {
		return
	}
	d.AddScore(s.Points(rows))
	s.lastTetris = rows >= 4
	d.RaiseLevel(d.Score() / 5)
}

var constructors = map[string]func() driver.Variant{
	"classic": func() driver.Variant { return NewClassic() },
	"cascade": func() driver.Variant { return NewCascade() },
	"sticky":  func() driver.Variant { return NewSticky() },
	"fusion":  func() driver.Variant { return NewFusion() },
}

// ByName returns a fresh variant for name, ignoring case.
func ByName(name string) (driver.Variant, error) {
	build, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return build(), nil
}

// Names lists the registered variant names in order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
