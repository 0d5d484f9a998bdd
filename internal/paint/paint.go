// internal/paint/paint.go
package paint

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/layout"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DisplayCommand is a single paint instruction: fill Rect with Color.
// Solid rectangles are the only command the rasterizer understands.
type DisplayCommand struct {
	Color css.Color   `json:"color"`
	Rect  layout.Rect `json:"rect"`
}

// DisplayList is an ordered list of paint commands. Order is z-order:
// later commands paint over earlier ones.
type DisplayList []DisplayCommand

// EncodeJSON writes the display list as a JSON array, for inspection and
// golden-file tests.
func (dl DisplayList) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dl)
}

// BuildDisplayList walks the box tree in pre-order and emits each box's
// background fill followed by its four border edges. Parents therefore
// paint before (under) their children.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	var list DisplayList
	renderLayoutBox(&list, root)
	return list
}

func renderLayoutBox(list *DisplayList, box *layout.LayoutBox) {
	renderBackground(list, box)
	renderBorders(list, box)
	for _, child := range box.Children {
		renderLayoutBox(list, child)
	}
}

// renderBackground fills the border box when the background property
// resolved to a color. Keywords and lengths paint nothing.
func renderBackground(list *DisplayList, box *layout.LayoutBox) {
	color, ok := boxColor(box, "background")
	if !ok {
		return
	}
	*list = append(*list, DisplayCommand{
		Color: color,
		Rect:  box.Dimensions.BorderBox(),
	})
}

// renderBorders emits one rectangle per edge, each spanning the full
// border-box side with the edge's own thickness. A box without a
// border-color paints no borders regardless of border widths.
func renderBorders(list *DisplayList, box *layout.LayoutBox) {
	color, ok := boxColor(box, "border-color")
	if !ok {
		return
	}

	d := box.Dimensions
	bb := d.BorderBox()

	// Left
	*list = append(*list, DisplayCommand{Color: color, Rect: layout.Rect{
		X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height,
	}})
	// Right
	*list = append(*list, DisplayCommand{Color: color, Rect: layout.Rect{
		X: bb.X + bb.Width - d.Border.Right, Y: bb.Y,
		Width: d.Border.Right, Height: bb.Height,
	}})
	// Top
	*list = append(*list, DisplayCommand{Color: color, Rect: layout.Rect{
		X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top,
	}})
	// Bottom
	*list = append(*list, DisplayCommand{Color: color, Rect: layout.Rect{
		X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom,
		Width: bb.Width, Height: d.Border.Bottom,
	}})
}

// boxColor reads a color property off the box's styled node. Anonymous
// boxes carry no style and contribute no paint.
func boxColor(box *layout.LayoutBox, name string) (css.Color, bool) {
	sn, err := box.StyleNode()
	if err != nil {
		return css.Color{}, false
	}
	return sn.Color(name)
}

// Paint rasterizes a laid-out box tree onto a fresh canvas of the given
// bounds. Boxes partially or fully outside the bounds are clipped.
func Paint(root *layout.LayoutBox, bounds layout.Rect) *Canvas {
	canvas := NewCanvas(int(bounds.Width), int(bounds.Height))
	for _, cmd := range BuildDisplayList(root) {
		canvas.PaintCommand(cmd)
	}
	return canvas
}
