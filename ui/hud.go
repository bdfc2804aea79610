package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/game"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	Alive      int
	Size       int
	Tick       int
	Speed      int
	FPS        int32
	Paused     bool
	Manual     bool
	Score      int // manual mode only
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top of the side panel.
func (h *HUD) Draw(x, y int32, data HUDData) int32 {
	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	if data.Manual {
		rl.DrawText(fmt.Sprintf("Score: %d | Tick: %d", data.Score, data.Tick), x, y, 16, rl.LightGray)
		y += 20
		if data.Alive == 0 {
			rl.DrawText("GAME OVER - press R", x, y, 16, rl.Red)
			y += 20
		}
		return y
	}

	rl.DrawText(fmt.Sprintf("Generation: %d", data.Generation), x, y, 16, rl.LightGray)
	y += 20
	rl.DrawText(fmt.Sprintf("Alive: %d / %d", data.Alive, data.Size), x, y, 16, rl.LightGray)
	y += 20
	rl.DrawText(fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS), x, y, 14, rl.LightGray)
	y += 18

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, x, y, 16, rl.Yellow)
	return y + 22
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawSlot renders details of one slot and returns the new Y position.
func (h *HUD) DrawSlot(x, y int32, slot int, v game.View) int32 {
	r := h.renderer
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Slot %d", slot))
	status := "alive"
	if v.Done {
		status = "terminal"
	}
	y = r.DrawLabelValue(x, y, "Status", status)
	y = r.DrawLabelValue(x, y, "Heading", v.Heading.String())
	y = r.DrawLabelValue(x, y, "Time alive", fmt.Sprintf("%d", v.TimeAlive))
	y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", v.Score))
	y = r.DrawLabelValue(x, y, "Length", fmt.Sprintf("%d", len(v.Body)))
	return y + 4
}
