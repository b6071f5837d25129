// Package physics computes sticky falls: after material is removed from the
// board, every connected group of same-valued cells drops as a unit until
// it rests on the floor or on another group.
//
// Groups are discovered by flood fill from a set of seed points. Each group
// gets an independent bound (how far it could fall with only the floor and
// the unreached board below it) and a list of dependencies on the groups
// directly under it. Bounds are then settled through the dependency graph,
// which may contain cycles when groups interlock.
package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geom"
)

// Unbounded marks a shape whose fall is not limited by anything found.
const Unbounded = math.MaxInt

type depKind uint8

const (
	// adjacent: the shape rests directly on the target.
	adjacent depKind = iota
	// fall: the shape lands on the target after dropping offset rows.
	fall
)

type dep struct {
	kind   depKind
	target int
	offset int
}

type shape struct {
	points []geom.Point
	bound  int
	deps   []dep
}

type color uint8

const (
	white color = iota
	gray
	black
)

// graph is the arena of discovered shapes. Dependencies refer to shapes
// by their index in shapes.
type graph struct {
	shapes []shape

	colors []color
	final  []bool
}

type pendingDep struct {
	from   int
	kind   depKind
	target geom.Point
	offset int
}

// Resolve returns the falls for every shape reachable from seeds. Cells at
// or below floor never move and support whatever rests on them; pass -1 to
// let everything move. Shapes that do not move are omitted.
func Resolve(b *board.Board, seeds []geom.Point, floor int) []board.Fall {
	g := discover(b, seeds, floor)
	g.resolve()
	return g.falls()
}

// FromRows resolves every filled cell on or above the lowest of rows,
// which are the shifted indices of rows that were just cleared.
func FromRows(b *board.Board, rows []int) []board.Fall {
	if len(rows) == 0 {
		return nil
	}
	lowest := slices.Min(rows)

	var seeds []geom.Point
	b.Each(func(p geom.Point, _ uint32) {
		if p.Y >= lowest {
			seeds = append(seeds, p)
		}
	})
	return Resolve(b, seeds, -1)
}

// FromPoints resolves the shapes touching points. Points may be filled, as
// with a freshly locked piece, or empty, as with deleted cells.
func FromPoints(b *board.Board, points []geom.Point) []board.Fall {
	seeds := make([]geom.Point, 0, len(points)*5)
	for _, p := range points {
		seeds = append(seeds, p)
		for _, n := range neighbours(p) {
			seeds = append(seeds, n)
		}
	}
	return Resolve(b, seeds, -1)
}

func neighbours(p geom.Point) [4]geom.Point {
	return [4]geom.Point{
		p.Sub(geom.UnitY(1)),
		p.Add(geom.UnitY(1)),
		p.Sub(geom.UnitX(1)),
		p.Add(geom.UnitX(1)),
	}
}

func discover(b *board.Board, seeds []geom.Point, floor int) *graph {
	movable := func(p geom.Point) bool {
		return p.Y > floor && b.OnBoard(p) && b.Cell(p).Filled
	}

	owners := newTracker(b.Width(), max(len(seeds), 16))
	g := &graph{}
	var pending []pendingDep

	frontier := slices.Clone(seeds)
	for len(frontier) > 0 {
		start := frontier[0]
		frontier = frontier[1:]
		if !movable(start) {
			continue
		}
		if _, seen := owners.owner(start); seen {
			continue
		}

		index := len(g.shapes)
		value := b.Cell(start).Value
		s := shape{bound: Unbounded}

		owners.assign(start, index)
		stack := []geom.Point{start}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			s.points = append(s.points, p)

			// Only the cell underneath decides support.
			down := p.Sub(geom.UnitY(1))
			switch {
			case down.Y < 0 || down.Y <= floor && b.IsFilled(down):
				s.bound = 0
			case b.IsFilled(down):
				if b.Cell(down).Value != value {
					pending = append(pending, pendingDep{from: index, kind: adjacent, target: down})
					frontier = append(frontier, down)
				}
			default:
				distance := b.Drop(p)
				hit := p.Sub(geom.UnitY(distance + 1))
				if hit.Y <= floor {
					s.bound = min(s.bound, distance)
				} else {
					pending = append(pending, pendingDep{from: index, kind: fall, target: hit, offset: distance})
					frontier = append(frontier, hit)
				}
			}

			for _, n := range neighbours(p) {
				if !movable(n) {
					continue
				}
				if b.Cell(n).Value != value {
					if n != down {
						frontier = append(frontier, n)
					}
					continue
				}
				if _, seen := owners.owner(n); !seen {
					owners.assign(n, index)
					stack = append(stack, n)
				}
			}
		}
		g.shapes = append(g.shapes, s)
	}

	for _, pd := range pending {
		target, ok := owners.owner(pd.target)
		if !ok || target == pd.from {
			continue
		}
		s := &g.shapes[pd.from]
		s.deps = append(s.deps, dep{kind: pd.kind, target: target, offset: pd.offset})
	}
	return g
}

func add(bound, offset int) int {
	if bound == Unbounded {
		return Unbounded
	}
	return bound + offset
}

// resolve settles every shape's bound. A depth first pass finalizes the
// shapes that do not take part in or rest on a cycle. The rest are settled
// by repeatedly finalizing the unresolved shape with the smallest bound,
// since it lands first, and lowering the bounds of the shapes resting on it.
func (g *graph) resolve() {
	g.colors = make([]color, len(g.shapes))
	g.final = make([]bool, len(g.shapes))
	for i := range g.shapes {
		if g.colors[i] == white {
			g.visit(i)
		}
	}

	dependents := make([][]int, len(g.shapes))
	for i, s := range g.shapes {
		for _, d := range s.deps {
			dependents[d.target] = append(dependents[d.target], i)
		}
	}

	for {
		next := -1
		for i := range g.shapes {
			if g.final[i] {
				continue
			}
			if next < 0 || g.shapes[i].bound < g.shapes[next].bound {
				next = i
			}
		}
		if next < 0 {
			return
		}

		g.final[next] = true
		g.shapes[next].deps = nil
		for _, i := range dependents[next] {
			if g.final[i] {
				continue
			}
			s := &g.shapes[i]
			for _, d := range s.deps {
				if d.target == next {
					s.bound = min(s.bound, add(g.shapes[next].bound, d.offset))
				}
			}
		}
	}
}

func (g *graph) visit(i int) {
	g.colors[i] = gray
	resolved := true
	s := &g.shapes[i]
	for _, d := range s.deps {
		if g.colors[d.target] == white {
			g.visit(d.target)
		}
		if !g.final[d.target] {
			resolved = false
			continue
		}
		s.bound = min(s.bound, add(g.shapes[d.target].bound, d.offset))
	}
	g.colors[i] = black
	g.final[i] = resolved
}

func (g *graph) falls() []board.Fall {
	var out []board.Fall
	for _, s := range g.shapes {
		if s.bound <= 0 || s.bound == Unbounded {
			continue
		}
		for _, p := range s.points {
			out = append(out, board.Fall{Point: p, Distance: s.bound})
		}
	}
	slices.SortFunc(out, func(a, b board.Fall) int {
		return cmp.Or(cmp.Compare(a.Point.Y, b.Point.Y), cmp.Compare(a.Point.X, b.Point.X))
	})
	return out
}
