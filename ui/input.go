package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/systems"
)

// directionKeys maps arrow and WASD keys to headings.
var directionKeys = []struct {
	key int32
	dir systems.Direction
}{
	{rl.KeyUp, systems.North},
	{rl.KeyW, systems.North},
	{rl.KeyDown, systems.South},
	{rl.KeyS, systems.South},
	{rl.KeyLeft, systems.West},
	{rl.KeyA, systems.West},
	{rl.KeyRight, systems.East},
	{rl.KeyD, systems.East},
}

// PressedDirection returns the heading for a key pressed this frame, or
// Undecided when none was.
func PressedDirection() systems.Direction {
	for _, k := range directionKeys {
		if rl.IsKeyPressed(k.key) {
			return k.dir
		}
	}
	return systems.Undecided
}
