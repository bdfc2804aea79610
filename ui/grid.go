package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/camera"
	"github.com/pthm-cable/snakevo/game"
)

// tileGap is the spacing in pixels between tiled grids.
const tileGap = 4

// GridRenderer draws slot views as tiled grids.
type GridRenderer struct {
	renderer *Renderer
}

// NewGridRenderer creates a new grid renderer.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{renderer: NewRenderer()}
}

// TileLayout returns the column count, row count and tile side length in
// pixels for n square tiles packed into a w x h area.
func TileLayout(n int, w, h int32) (cols, rows int, tile int32) {
	if n < 1 {
		return 0, 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n) * float64(w) / float64(h))))
	if cols < 1 {
		cols = 1
	}
	if cols > n {
		cols = n
	}
	rows = (n + cols - 1) / cols

	tile = w / int32(cols)
	if th := h / int32(rows); th < tile {
		tile = th
	}
	return cols, rows, tile
}

// TileAt returns the index of the tile containing the point (px, py) of a
// w x h area holding n tiles, or -1 if none does.
func TileAt(n int, w, h int32, px, py float32) int {
	cols, _, tile := TileLayout(n, w, h)
	if tile <= 0 || px < 0 || py < 0 {
		return -1
	}
	col := int(px) / int(tile)
	row := int(py) / int(tile)
	if col >= cols {
		return -1
	}
	i := row*cols + col
	if i >= n {
		return -1
	}
	return i
}

// Draw renders every view tiled over the camera's world, offset on screen by
// (x, y). The slot at highlight gets an outline; pass -1 for none.
func (gr *GridRenderer) Draw(views []game.View, highlight int, x, y int32, cam *camera.Camera) {
	cols, _, tile := TileLayout(len(views), int32(cam.WorldW), int32(cam.WorldH))
	if tile <= tileGap {
		return
	}
	side := float32(tile - tileGap)

	for i := range views {
		wx := float32(int32(i%cols) * tile)
		wy := float32(int32(i/cols) * tile)
		if !cam.IsRectVisible(wx, wy, side, side) {
			continue
		}

		sx, sy := cam.WorldToScreen(wx, wy)
		tx := x + int32(sx)
		ty := y + int32(sy)
		size := int32(side * cam.Zoom)
		gr.DrawView(&views[i], tx, ty, size)

		if i == highlight {
			rl.DrawRectangleLines(tx-1, ty-1, size+2, size+2, gr.renderer.Theme.Highlight)
		}
	}
}

// DrawView renders one grid inside a size x size square.
func (gr *GridRenderer) DrawView(v *game.View, x, y, size int32) {
	theme := gr.renderer.Theme
	if v.GridSize < 1 {
		return
	}
	cell := size / int32(v.GridSize)
	if cell < 1 {
		cell = 1
	}
	side := cell * int32(v.GridSize)

	rl.DrawRectangle(x, y, side, side, theme.GridBg)
	rl.DrawRectangleLines(x-1, y-1, side+2, side+2, theme.GridBorder)

	rl.DrawRectangle(x+int32(v.Food.X)*cell, y+int32(v.Food.Y)*cell, cell, cell, theme.Food)

	// Tail first so the head is drawn on top of a duplicate segment.
	for i := len(v.Body) - 1; i >= 0; i-- {
		p := v.Body[i]
		color := theme.SnakeBody
		if i == 0 {
			color = theme.SnakeHead
		}
		rl.DrawRectangle(x+int32(p.X)*cell, y+int32(p.Y)*cell, cell, cell, color)
	}

	if v.Done {
		rl.DrawRectangle(x, y, side, side, theme.DeadTint)
	}
}
