package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxSpeed is the upper bound of the speed slider in ticks per frame.
const maxSpeed = 200

// ControlsState is the state edited by the controls panel.
type ControlsState struct {
	Visualize bool
	Paused    bool
	Speed     int // ticks per update
}

// ControlsPanel renders raygui controls for the run.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the updated state and the panel bottom.
func (c *ControlsPanel) Draw(state ControlsState) (ControlsState, int32) {
	r := c.renderer
	padding := r.Theme.Padding
	inner := float32(c.width - padding*2)
	panelHeight := int32(150)

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	state.Visualize = gui.Toggle(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 24},
		toggleText(state.Visualize, "Visualize: ON", "Visualize: OFF"),
		state.Visualize,
	)
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		state.Paused = !state.Paused
	}
	y += 32

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	speed := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 16},
		"", "",
		float32(state.Speed), 1, maxSpeed,
	)
	state.Speed = int(speed)
	if state.Speed < 1 {
		state.Speed = 1
	}

	return state, c.y + panelHeight
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}
