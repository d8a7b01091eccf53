// Package debugui draws Dear ImGui panels from ECS entities. Each panel is
// an ImguiItem whose render function runs when the scheduler flushes its
// commands, so panels always see the state left by the systems of the tick.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrispi/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Frontends check it before reading the keyboard themselves.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[ImguiItem]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
