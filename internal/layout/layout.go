// internal/layout/layout.go
package layout

import (
	"errors"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/style"
)

var (
	// ErrRootDisplayNone is returned when the root element resolves to
	// display:none, leaving nothing to lay out.
	ErrRootDisplayNone = errors.New("layout: root element has display: none")

	// ErrAnonymousBox is returned when a style accessor is used on an
	// anonymous box, which has no backing styled node.
	ErrAnonymousBox = errors.New("layout: anonymous box has no styled node")
)

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExpandedBy grows the rectangle outward by the given edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds per-edge thicknesses for padding, borders, or margins.
type EdgeSizes struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Dimensions is the full box geometry: the content rectangle plus the
// surrounding padding, border, and margin edges.
type Dimensions struct {
	Content Rect      `json:"content"`
	Padding EdgeSizes `json:"padding"`
	Border  EdgeSizes `json:"border"`
	Margin  EdgeSizes `json:"margin"`
}

// PaddingBox is the content area expanded by the padding edges.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox is the padding box expanded by the border edges.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox is the border box expanded by the margin edges.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxKind discriminates the box tree node types.
type BoxKind int

const (
	BlockBox BoxKind = iota
	InlineBox
	AnonymousBox
)

func (k BoxKind) String() string {
	switch k {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	}
	return "unknown"
}

// LayoutBox is a node of the box tree. Anonymous boxes have a nil styled
// node; use StyleNode to access it safely.
type LayoutBox struct {
	Kind       BoxKind
	Dimensions Dimensions
	Children   []*LayoutBox

	styled *style.StyledNode
}

// NewLayoutBox builds an empty box of the given kind over a styled node.
// The styled node must be nil exactly when kind is AnonymousBox.
func NewLayoutBox(kind BoxKind, sn *style.StyledNode) *LayoutBox {
	return &LayoutBox{Kind: kind, styled: sn}
}

// StyleNode returns the styled node backing this box. Anonymous boxes are
// synthesized during tree construction and have none.
func (b *LayoutBox) StyleNode() (*style.StyledNode, error) {
	if b.Kind == AnonymousBox || b.styled == nil {
		return nil, ErrAnonymousBox
	}
	return b.styled, nil
}

// BuildTree converts a styled tree into a box tree. Children that resolve
// to display:none are omitted entirely; consecutive inline children of a
// block box are wrapped in a shared anonymous block container.
func BuildTree(sn *style.StyledNode) (*LayoutBox, error) {
	var kind BoxKind
	switch sn.Display() {
	case style.DisplayBlock:
		kind = BlockBox
	case style.DisplayInline:
		kind = InlineBox
	case style.DisplayNone:
		return nil, ErrRootDisplayNone
	}

	root := NewLayoutBox(kind, sn)
	for _, child := range sn.Children {
		switch child.Display() {
		case style.DisplayBlock:
			childBox, err := BuildTree(child)
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, childBox)
		case style.DisplayInline:
			childBox, err := BuildTree(child)
			if err != nil {
				return nil, err
			}
			container := root.getInlineContainer()
			container.Children = append(container.Children, childBox)
		case style.DisplayNone:
			// Dropped: no box is generated for the subtree.
		}
	}
	return root, nil
}

// getInlineContainer returns the box that should receive an inline child.
// Inline and anonymous boxes accept inline children directly; a block box
// routes them into its trailing anonymous child, creating one if the last
// child is not already anonymous. Consecutive inline siblings therefore
// share a single container.
func (b *LayoutBox) getInlineContainer() *LayoutBox {
	switch b.Kind {
	case InlineBox, AnonymousBox:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].Kind == AnonymousBox {
			return b.Children[n-1]
		}
		anon := NewLayoutBox(AnonymousBox, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}

// Layout performs block layout of the whole tree within a viewport. Per
// the containing-block rules, the viewport's content height is forced to
// zero before the root is laid out; heights accumulate bottom-up.
func Layout(root *LayoutBox, viewport Dimensions) error {
	containing := viewport
	containing.Content.Height = 0
	return root.layout(containing)
}

// layout dispatches on box kind. Inline and anonymous boxes keep zeroed
// dimensions; only block boxes participate in the flow.
func (b *LayoutBox) layout(containing Dimensions) error {
	if b.Kind != BlockBox {
		return nil
	}
	return b.layoutBlock(containing)
}

// layoutBlock runs the four block-layout steps in dependency order: width
// depends on the parent, position on the parent plus own edges, height on
// the laid-out children.
func (b *LayoutBox) layoutBlock(containing Dimensions) error {
	sn, err := b.StyleNode()
	if err != nil {
		return err
	}
	b.calculateBlockWidth(sn, containing)
	b.calculateBlockPosition(sn, containing)
	if err := b.layoutBlockChildren(); err != nil {
		return err
	}
	b.calculateBlockHeight(sn)
	return nil
}

// calculateBlockWidth solves the horizontal constraint equation
//
//	margin + border + padding + width = containing width
//
// distributing any slack (or deficit) over the auto components. Auto is
// carried as NaN so the arithmetic and the keyword checks stay separate.
func (b *LayoutBox) calculateBlockWidth(sn *style.StyledNode, containing Dimensions) {
	auto := css.Keyword("auto")
	zero := css.Length(0)

	width := auto
	if v, ok := sn.Value("width"); ok {
		width = v
	}

	marginLeft := sn.Lookup("margin-left", "margin", zero)
	marginRight := sn.Lookup("margin-right", "margin", zero)
	borderLeft := sn.Lookup("border-left-width", "border-width", zero)
	borderRight := sn.Lookup("border-right-width", "border-width", zero)
	paddingLeft := sn.Lookup("padding-left", "padding", zero)
	paddingRight := sn.Lookup("padding-right", "padding", zero)

	total := marginLeft.ToPx() + marginRight.ToPx() +
		borderLeft.ToPx() + borderRight.ToPx() +
		paddingLeft.ToPx() + paddingRight.ToPx() +
		width.ToPx()

	// Over-constrained: auto margins collapse to zero before the slack
	// is resolved below.
	if !width.IsAuto() && total > containing.Content.Width {
		if marginLeft.IsAuto() {
			marginLeft = zero
		}
		if marginRight.IsAuto() {
			marginRight = zero
		}
	}

	underflow := containing.Content.Width - total

	widthPx := width.ToPx()
	marginLeftPx := marginLeft.ToPx()
	marginRightPx := marginRight.ToPx()

	switch {
	case !width.IsAuto() && !marginLeft.IsAuto() && !marginRight.IsAuto():
		// Fully constrained: the right margin absorbs the slack, which
		// may leave it negative.
		marginRightPx += underflow
	case !width.IsAuto() && !marginLeft.IsAuto() && marginRight.IsAuto():
		marginRightPx = underflow
	case !width.IsAuto() && marginLeft.IsAuto() && !marginRight.IsAuto():
		marginLeftPx = underflow
	case width.IsAuto():
		if marginLeft.IsAuto() {
			marginLeftPx = 0
		}
		if marginRight.IsAuto() {
			marginRightPx = 0
		}
		if underflow >= 0 {
			widthPx = underflow
		} else {
			// Width cannot go negative; the right margin takes the
			// deficit instead.
			widthPx = 0
			marginRightPx += underflow
		}
	default: // width fixed, both margins auto
		marginLeftPx = underflow / 2
		marginRightPx = underflow / 2
	}

	d := &b.Dimensions
	d.Content.Width = widthPx
	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()
	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()
	d.Margin.Left = marginLeftPx
	d.Margin.Right = marginRightPx
}

// calculateBlockPosition resolves the vertical edges and places the
// content origin just below the siblings already stacked in the
// containing block (containing.Content.Height is the running sum).
func (b *LayoutBox) calculateBlockPosition(sn *style.StyledNode, containing Dimensions) {
	zero := css.Length(0)
	d := &b.Dimensions

	d.Margin.Top = sn.Lookup("margin-top", "margin", zero).ToPx()
	d.Margin.Bottom = sn.Lookup("margin-bottom", "margin", zero).ToPx()
	d.Border.Top = sn.Lookup("border-top-width", "border-width", zero).ToPx()
	d.Border.Bottom = sn.Lookup("border-bottom-width", "border-width", zero).ToPx()
	d.Padding.Top = sn.Lookup("padding-top", "padding", zero).ToPx()
	d.Padding.Bottom = sn.Lookup("padding-bottom", "padding", zero).ToPx()

	d.Content.X = containing.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containing.Content.Y + containing.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren lays out each child in turn, growing the content
// height by the child's full margin box so the next sibling lands below.
func (b *LayoutBox) layoutBlockChildren() error {
	d := &b.Dimensions
	for _, child := range b.Children {
		if err := child.layout(*d); err != nil {
			return err
		}
		d.Content.Height += child.Dimensions.MarginBox().Height
	}
	return nil
}

// calculateBlockHeight applies an explicit pixel height, overriding the
// content-derived height computed from the children.
func (b *LayoutBox) calculateBlockHeight(sn *style.StyledNode) {
	if v, ok := sn.Value("height"); ok && v.Kind == css.LengthValue {
		b.Dimensions.Content.Height = v.ToPx()
	}
}

// Walk visits every box in the tree in pre-order.
func (b *LayoutBox) Walk(fn func(*LayoutBox)) {
	fn(b)
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

// FindByNode returns the first block or inline box whose styled node wraps
// the given DOM node, searching in pre-order. It returns nil when the node
// generated no box (display:none or a pruned subtree).
func (b *LayoutBox) FindByNode(match func(*style.StyledNode) bool) *LayoutBox {
	if b.styled != nil && match(b.styled) {
		return b
	}
	for _, child := range b.Children {
		if found := child.FindByNode(match); found != nil {
			return found
		}
	}
	return nil
}
