package driver

import (
	"github.com/plus3/blockfall/geom"
)

// Stats are running counters for one game.
type Stats struct {
	Frames       int `json:"frames"`
	Pieces       int `json:"pieces"`
	Lines        int `json:"lines"`
	Holds        int `json:"holds"`
	ChainSteps   int `json:"chainSteps"`
	LongestChain int `json:"longestChain"`
}

// Stats returns the counters so far.
func (d *Driver) Stats() Stats { return d.stats }

// Lines returns the number of rows cleared so far.
func (d *Driver) Lines() int { return d.stats.Lines }

// Cell is a filled board cell in a Snapshot.
type Cell struct {
	geom.Point
	Value uint32 `json:"value"`
}

// Pending lists the contents of an unfinished transition.
type Pending struct {
	PointsDeleted []geom.Point `json:"pointsDeleted,omitempty"`
	RowsDeleted   []int        `json:"rowsDeleted,omitempty"`
	PointsFalling []Fall       `json:"pointsFalling,omitempty"`
	PointsAdded   []geom.Point `json:"pointsAdded,omitempty"`
}

// Fall is a falling cell in a Snapshot.
type Fall struct {
	geom.Point
	Distance int `json:"distance"`
}

// Snapshot is a read-only copy of everything a renderer draws.
type Snapshot struct {
	Variant  string       `json:"variant"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Cells    []Cell       `json:"cells"`
	Active   []Cell       `json:"active"`
	Piece    string       `json:"piece"`
	Ghost    []geom.Point `json:"ghost"`
	Held     string       `json:"held,omitempty"`
	Queue    []string     `json:"queue"`
	Score    int          `json:"score"`
	Level    int          `json:"level"`
	GameOver bool         `json:"gameOver"`
	Pending  Pending      `json:"pending"`
	Stats    Stats        `json:"stats"`
}

// Snapshot copies the current game state.
func (d *Driver) Snapshot() Snapshot {
	b := d.core.Board()
	s := Snapshot{
		Variant:  d.variant.Name(),
		Width:    b.Width(),
		Height:   b.Height(),
		Ghost:    append([]geom.Point(nil), d.core.Ghost()...),
		Score:    d.score,
		Level:    d.level,
		GameOver: d.gameOver,
		Stats:    d.stats,
	}

	b.Each(func(p geom.Point, v uint32) {
		s.Cells = append(s.Cells, Cell{Point: p, Value: v})
	})

	active := d.core.Active()
	values := active.Values()
	for i, p := range active.Points() {
		s.Active = append(s.Active, Cell{Point: p, Value: values[i]})
	}
	s.Piece = active.Piece.Type.Name()

	if held, ok := d.core.Held(); ok {
		s.Held = held.Type.Name()
	}
	for _, p := range d.core.Queue() {
		s.Queue = append(s.Queue, p.Type.Name())
	}

	s.Pending = Pending{
		PointsDeleted: append([]geom.Point(nil), d.pending.PointsDeleted()...),
		RowsDeleted:   append([]int(nil), d.pending.RowsDeleted()...),
		PointsAdded:   append([]geom.Point(nil), d.pending.PointsAdded()...),
	}
	for _, f := range d.pending.PointsFalling() {
		s.Pending.PointsFalling = append(s.Pending.PointsFalling, Fall{Point: f.Point, Distance: f.Distance})
	}
	return s
}
