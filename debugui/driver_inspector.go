package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/driver"
)

// DriverInspector shows the state of whichever driver Driver returns.
type DriverInspector struct {
	Driver func() *driver.Driver
}

func NewDriverInspector(d func() *driver.Driver) *DriverInspector {
	return &DriverInspector{Driver: d}
}

func (di *DriverInspector) Render() {
	if !imgui.BeginV("Driver Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	d := di.Driver()
	if d == nil {
		imgui.Text("No game running")
		imgui.End()
		return
	}
	s := d.Snapshot()

	imgui.Text(fmt.Sprintf("Variant: %s", s.Variant))
	imgui.Text(fmt.Sprintf("Score: %d  Level: %d", s.Score, s.Level))
	imgui.Text(fmt.Sprintf("Active: %s  Held: %s", s.Piece, orNone(s.Held)))
	imgui.Text(fmt.Sprintf("Queue: %s", strings.Join(s.Queue, " ")))
	if s.GameOver {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), "GAME OVER")
	}
	imgui.Separator()

	if imgui.TreeNodeStr("Stats") {
		imgui.Text(fmt.Sprintf("Frames: %d", s.Stats.Frames))
		imgui.Text(fmt.Sprintf("Pieces: %d", s.Stats.Pieces))
		imgui.Text(fmt.Sprintf("Lines: %d", s.Stats.Lines))
		imgui.Text(fmt.Sprintf("Holds: %d", s.Stats.Holds))
		imgui.Text(fmt.Sprintf("Chain steps: %d", s.Stats.ChainSteps))
		imgui.Text(fmt.Sprintf("Longest chain: %d", s.Stats.LongestChain))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Pending Transition") {
		p := s.Pending
		if len(p.RowsDeleted)+len(p.PointsDeleted)+len(p.PointsFalling) == 0 {
			imgui.Text("Inert")
		}
		if len(p.RowsDeleted) > 0 {
			imgui.BulletText(fmt.Sprintf("Rows deleted: %v", p.RowsDeleted))
		}
		if len(p.PointsDeleted) > 0 {
			imgui.BulletText(fmt.Sprintf("Points deleted: %d", len(p.PointsDeleted)))
		}
		if len(p.PointsFalling) > 0 {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("FallTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Point")
				imgui.TableSetupColumn("Distance")
				imgui.TableHeadersRow()
				for _, f := range p.PointsFalling {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(f.Point.String())
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", f.Distance))
				}
				imgui.EndTable()
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Rows") {
		b := d.Board()
		maxCount := 0
		for y := range b.NumRows() {
			maxCount = max(maxCount, b.RowCount(y))
		}
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RowTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Row")
			imgui.TableSetupColumn("Filled")
			imgui.TableHeadersRow()
			for y := b.NumRows() - 1; y >= 0; y-- {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", y))
				imgui.TableNextColumn()
				fraction := float32(b.RowCount(y)) / float32(b.Width())
				imgui.ProgressBarV(fraction, imgui.NewVec2(-1, 0), fmt.Sprintf("%d / %d", b.RowCount(y), b.Width()))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
