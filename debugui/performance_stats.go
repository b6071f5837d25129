package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/sim"
)

// PerformanceStats plots frame times and, when given a scheduler, the
// timings of each registered stepper.
type PerformanceStats struct {
	Scheduler *sim.Scheduler

	timer        *FrameTimer
	frameHistory []float32
	frameIndex   int
}

func NewPerformanceStats(historyFrames int, scheduler *sim.Scheduler) *PerformanceStats {
	return &PerformanceStats{
		Scheduler:    scheduler,
		timer:        NewFrameTimer(),
		frameHistory: make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render() {
	ps.frameHistory[ps.frameIndex] = ps.timer.GetDeltaTime() * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(len(ps.frameHistory))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if ps.Scheduler != nil && imgui.TreeNodeStr("Steppers") {
		stats := ps.Scheduler.Stats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StepperTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Stepper")
			imgui.TableSetupColumn("Steps")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, st := range stats.Steppers {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(st.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", st.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(st.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(st.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(st.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
