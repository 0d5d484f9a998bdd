// internal/paint/canvas.go
package paint

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/layout"
)

// Canvas is a dense pixel buffer in row-major order. Pixels start out
// opaque white.
type Canvas struct {
	Width  int
	Height int
	Pixels []css.Color
}

// NewCanvas allocates a white canvas. Non-positive dimensions yield an
// empty canvas rather than a panic.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	pixels := make([]css.Color, width*height)
	for i := range pixels {
		pixels[i] = white
	}
	return &Canvas{Width: width, Height: height, Pixels: pixels}
}

// At returns the pixel at (x, y). Out-of-bounds reads return the zero
// color.
func (c *Canvas) At(x, y int) css.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return css.Color{}
	}
	return c.Pixels[y*c.Width+x]
}

// PaintCommand fills the command's rectangle with its color, overwriting
// whatever is underneath. The rectangle is clipped to the canvas bounds;
// alpha is not blended.
func (c *Canvas) PaintCommand(cmd DisplayCommand) {
	x0 := clampToPixel(cmd.Rect.X, c.Width)
	y0 := clampToPixel(cmd.Rect.Y, c.Height)
	x1 := clampToPixel(cmd.Rect.X+cmd.Rect.Width, c.Width)
	y1 := clampToPixel(cmd.Rect.Y+cmd.Rect.Height, c.Height)

	for y := y0; y < y1; y++ {
		row := y * c.Width
		for x := x0; x < x1; x++ {
			c.Pixels[row+x] = cmd.Color
		}
	}
}

// clampToPixel clips a coordinate to [0, limit] and truncates to an
// integer pixel index.
func clampToPixel(v float64, limit int) int {
	if v < 0 {
		return 0
	}
	if v > float64(limit) {
		return limit
	}
	return int(v)
}

// Image copies the canvas into an image.RGBA suitable for encoding.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.Pixels[y*c.Width+x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return img
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// Bounds returns the canvas extent as a layout rectangle.
func (c *Canvas) Bounds() layout.Rect {
	return layout.Rect{Width: float64(c.Width), Height: float64(c.Height)}
}
