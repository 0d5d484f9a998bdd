// internal/paint/paint_test.go
package paint_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/dom"
	"github.com/xkilldash9x/fresco/internal/layout"
	"github.com/xkilldash9x/fresco/internal/paint"
	"github.com/xkilldash9x/fresco/internal/style"
)

var (
	red   = css.Color{R: 255, G: 0, B: 0, A: 255}
	blue  = css.Color{R: 0, G: 0, B: 255, A: 255}
	white = css.Color{R: 255, G: 255, B: 255, A: 255}
)

// layoutFragment parses, styles, and lays out markup in the viewport.
func layoutFragment(t *testing.T, markup, stylesheet string, width, height float64) *layout.LayoutBox {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	sheet := css.NewParser(stylesheet).Parse()
	box, err := layout.BuildTree(style.Resolve(root, &sheet))
	require.NoError(t, err)
	viewport := layout.Dimensions{Content: layout.Rect{Width: width, Height: height}}
	require.NoError(t, layout.Layout(box, viewport))
	return box
}

const baseCSS = `html, body, div { display: block; } head { display: none; } `

func TestDisplayListBackground(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><div></div></body></html>`,
		baseCSS+`div { height: 50px; width: 100px; background: red; }`,
		800, 600)

	list := paint.BuildDisplayList(root)
	require.Len(t, list, 1, "only the div has a background")
	assert.Equal(t, red, list[0].Color)
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 100, Height: 50}, list[0].Rect)
}

func TestDisplayListParentPaintsFirst(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><div></div></body></html>`,
		baseCSS+`body { background: blue; } div { height: 10px; background: red; }`,
		100, 100)

	list := paint.BuildDisplayList(root)
	require.Len(t, list, 2)
	assert.Equal(t, blue, list[0].Color, "parent background comes before the child's")
	assert.Equal(t, red, list[1].Color)
}

func TestDisplayListBorders(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><div></div></body></html>`,
		baseCSS+`div { height: 20px; width: 40px; border-width: 2px; border-color: blue; }`,
		800, 600)

	list := paint.BuildDisplayList(root)
	require.Len(t, list, 4)

	// Border box is 44x24 at the origin. Left, right, top, bottom.
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 2, Height: 24}, list[0].Rect)
	assert.Equal(t, layout.Rect{X: 42, Y: 0, Width: 2, Height: 24}, list[1].Rect)
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 44, Height: 2}, list[2].Rect)
	assert.Equal(t, layout.Rect{X: 0, Y: 22, Width: 44, Height: 2}, list[3].Rect)
	for _, cmd := range list {
		assert.Equal(t, blue, cmd.Color)
	}
}

func TestDisplayListSkipsBordersWithoutColor(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><div></div></body></html>`,
		baseCSS+`div { height: 20px; border-width: 5px; }`,
		800, 600)

	assert.Empty(t, paint.BuildDisplayList(root), "border widths without border-color paint nothing")
}

func TestDisplayListAnonymousBoxesEmitNothing(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><span>a</span><span>b</span></body></html>`,
		baseCSS+`body { background: red; border-color: blue; border-width: 1px; }`,
		800, 600)

	// The spans live in an anonymous container, which has no style and
	// must contribute no commands: one background plus four border edges
	// from the body, nothing else.
	list := paint.BuildDisplayList(root)
	assert.Len(t, list, 5)
}

func TestCanvasStartsWhite(t *testing.T) {
	canvas := paint.NewCanvas(3, 2)
	require.Len(t, canvas.Pixels, 6)
	for _, p := range canvas.Pixels {
		assert.Equal(t, white, p)
	}
}

func TestCanvasPaintOverwrites(t *testing.T) {
	canvas := paint.NewCanvas(4, 4)
	canvas.PaintCommand(paint.DisplayCommand{Color: blue, Rect: layout.Rect{X: 0, Y: 0, Width: 4, Height: 4}})
	// Semi-transparent red still overwrites; there is no blending.
	semi := css.Color{R: 255, A: 128}
	canvas.PaintCommand(paint.DisplayCommand{Color: semi, Rect: layout.Rect{X: 1, Y: 1, Width: 2, Height: 2}})

	assert.Equal(t, blue, canvas.At(0, 0))
	assert.Equal(t, semi, canvas.At(1, 1))
	assert.Equal(t, semi, canvas.At(2, 2))
	assert.Equal(t, blue, canvas.At(3, 3))
}

func TestCanvasClipsOutOfBoundsRects(t *testing.T) {
	canvas := paint.NewCanvas(20, 4)
	canvas.PaintCommand(paint.DisplayCommand{
		Color: red,
		Rect:  layout.Rect{X: -10, Y: 1, Width: 30, Height: 1},
	})

	// Columns 0..19 of row 1 are painted; the overhang on both sides is
	// dropped.
	for x := 0; x < 20; x++ {
		assert.Equal(t, red, canvas.At(x, 1), "column %d", x)
		assert.Equal(t, white, canvas.At(x, 0))
		assert.Equal(t, white, canvas.At(x, 2))
	}
}

func TestCanvasFullyOffscreenRectIsNoop(t *testing.T) {
	canvas := paint.NewCanvas(5, 5)
	canvas.PaintCommand(paint.DisplayCommand{Color: red, Rect: layout.Rect{X: 100, Y: 100, Width: 10, Height: 10}})
	canvas.PaintCommand(paint.DisplayCommand{Color: red, Rect: layout.Rect{X: -50, Y: -50, Width: 10, Height: 10}})
	for _, p := range canvas.Pixels {
		assert.Equal(t, white, p)
	}
}

func TestPaintEndToEnd(t *testing.T) {
	root := layoutFragment(t,
		`<html><body><div></div></body></html>`,
		baseCSS+`div { width: 100px; height: 50px; background: red; }`,
		800, 600)

	canvas := paint.Paint(root, layout.Rect{Width: 800, Height: 600})
	assert.Equal(t, 800, canvas.Width)
	assert.Equal(t, 600, canvas.Height)

	assert.Equal(t, red, canvas.At(0, 0))
	assert.Equal(t, red, canvas.At(99, 49))
	assert.Equal(t, white, canvas.At(100, 0))
	assert.Equal(t, white, canvas.At(0, 50))
	assert.Equal(t, white, canvas.At(799, 599))
}

func TestEncodePNGRoundTrip(t *testing.T) {
	canvas := paint.NewCanvas(8, 4)
	canvas.PaintCommand(paint.DisplayCommand{Color: red, Rect: layout.Rect{X: 0, Y: 0, Width: 2, Height: 2}})

	var buf bytes.Buffer
	require.NoError(t, canvas.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestDisplayListJSON(t *testing.T) {
	list := paint.DisplayList{
		{Color: red, Rect: layout.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
	}
	var buf bytes.Buffer
	require.NoError(t, list.EncodeJSON(&buf))
	assert.Contains(t, buf.String(), `"x": 1`)
	assert.Contains(t, buf.String(), `"width": 3`)
}
