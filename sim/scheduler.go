// Package sim runs games headless: a scheduler that steps registered
// simulations at a fixed interval, a game loop that restarts and records,
// and a greedy bot to play it.
package sim

import (
	"context"
	"reflect"
	"time"
)

// Stepper advances a simulation by one tick. dt is the time in seconds
// since the previous tick.
type Stepper interface {
	Step(dt float64)
}

// StepFunc adapts a function to Stepper.
type StepFunc func(dt float64)

func (f StepFunc) Step(dt float64) { f(dt) }

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	StepperCount    int
	TotalExecutions int64
	Steppers        []StepperStats
}

// StepperStats provides execution statistics for a single stepper.
type StepperStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stepperStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler steps its registered steppers in registration order.
type Scheduler struct {
	steppers []Stepper
	stats    []*stepperStats
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register adds st under the name of its type.
func (s *Scheduler) Register(st Stepper) {
	t := reflect.TypeOf(st)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.RegisterNamed(t.Name(), st)
}

// RegisterNamed adds st under name.
func (s *Scheduler) RegisterNamed(name string, st Stepper) {
	s.steppers = append(s.steppers, st)
	s.stats = append(s.stats, &stepperStats{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once steps every registered stepper once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	for i, st := range s.steppers {
		start := time.Now()
		st.Step(dt)
		duration := time.Since(start)

		stats := s.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}
}

// Run steps repeatedly at the given interval until ctx is done. A
// non-positive interval steps as fast as possible.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	lastTime := time.Now()

	if interval <= 0 {
		for ctx.Err() == nil {
			now := time.Now()
			s.Once(now.Sub(lastTime).Seconds())
			lastTime = now
		}
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about stepper execution.
func (s *Scheduler) Stats() *SchedulerStats {
	out := &SchedulerStats{
		StepperCount: len(s.steppers),
		Steppers:     make([]StepperStats, len(s.stats)),
	}

	for i, internal := range s.stats {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		out.Steppers[i] = StepperStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		out.TotalExecutions += internal.executionCount
	}
	return out
}
