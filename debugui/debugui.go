// Package debugui provides Dear ImGui windows for inspecting a running game:
// driver state, pending transitions, scheduler timings and stored replays.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Window is anything that draws itself with ImGui calls.
type Window interface {
	Render()
}

// WindowFunc adapts a function to Window.
type WindowFunc func()

func (f WindowFunc) Render() { f() }

// InputState reports whether ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI renders its windows in the order they were added.
type UI struct {
	windows []Window
	input   InputState
}

func (u *UI) Add(w ...Window) {
	u.windows = append(u.windows, w...)
}

// Render refreshes the input state and draws every window. Call it between
// the backend's BeginFrame and EndFrame.
func (u *UI) Render() {
	io := imgui.CurrentIO()
	u.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
	for _, w := range u.windows {
		w.Render()
	}
}

// Input returns the capture state from the last Render.
func (u *UI) Input() InputState {
	return u.input
}
