// Package camera provides a 2D camera for zooming into the grid view.
package camera

// Camera controls the viewport into the tiled grid area.
// The world is bounded: the view is kept inside it at every zoom level.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = whole world fits the viewport)
	Zoom float32

	// Viewport dimensions (screen size of the grid area)
	ViewportW, ViewportH float32

	// World dimensions
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.Reset()
	return c
}

// WorldToScreen converts world coordinates to viewport coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts viewport coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsRectVisible reports whether any part of the world rectangle is on screen.
func (c *Camera) IsRectVisible(wx, wy, w, h float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+w >= minX && wx <= maxX && wy+h >= minY && wy <= maxY
}

// Resize updates viewport and world dimensions, keeping the relative view.
func (c *Camera) Resize(viewportW, viewportH, worldW, worldH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH && worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	if c.WorldW > 0 && c.WorldH > 0 {
		c.X *= worldW / c.WorldW
		c.Y *= worldH / c.WorldH
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.WorldW = worldW
	c.WorldH = worldH
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomAt multiplies the zoom by factor, keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampPosition()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampPosition keeps the view inside the world. When the view is larger
// than the world along an axis the camera centers on it.
func (c *Camera) clampPosition() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
}

func clampAxis(pos, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(pos, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
