package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/sim"
)

type Report struct {
	// Configuration
	Variant  string
	Seed     string
	Interval time.Duration
	ReplayID string

	// Results
	Frames        int64
	TotalTime     time.Duration
	Results       []sim.Result
	Scheduler     *sim.SchedulerStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Totals aggregates the finished games.
type Totals struct {
	Games     int
	BestScore int
	AvgScore  float64
	Lines     int
	Pieces    int
}

func (r *Report) Totals() Totals {
	var t Totals
	for _, res := range r.Results {
		t.Games++
		t.BestScore = max(t.BestScore, res.Score)
		t.AvgScore += float64(res.Score)
		t.Lines += res.Lines
		t.Pieces += res.Pieces
	}
	if t.Games > 0 {
		t.AvgScore /= float64(t.Games)
	}
	return t
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Variant:** {{.Variant}}
- **Seed:** {{if .Seed}}{{.Seed}}{{else}}(zero){{end}}
- **Frame Interval:** {{if .Interval}}{{.Interval}}{{else}}unthrottled{{end}}
{{- if .ReplayID}}
- **Replay:** {{.ReplayID}}
{{- end}}

## Games
| Game | Score | Level | Lines | Pieces | Frames | Replay |
|---|---|---|---|---|---|---|
{{- range .Results}}
| {{.Game}} | {{.Score}} | {{.Level}} | {{.Lines}} | {{.Pieces}} | {{.Frames}} | {{.ReplayID}} |
{{- end}}
{{with .Totals}}
- **Games Played:** {{.Games}}
- **Best Score:** {{.BestScore}}
- **Average Score:** {{printf "%.2f" .AvgScore}}
- **Lines:** {{.Lines}}
- **Pieces:** {{.Pieces}}
{{end}}
## Performance
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}
{{- range .Scheduler.Steppers}}
- **{{.Name}}:** avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}, last {{.LastDuration}} over {{.ExecutionCount}} steps
{{- end}}

## Memory Usage
- Heap Alloc:  {{mb .MemStatsEnd.HeapAlloc}} MB (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes)
- Total Alloc: {{mb .MemStatsEnd.TotalAlloc}} MB (delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns (bsubu .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"bsubu": func(a, b uint64) uint64 {
			return a - b
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
