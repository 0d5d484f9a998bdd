// internal/render/pipeline.go
package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/dom"
	"github.com/xkilldash9x/fresco/internal/layout"
	"github.com/xkilldash9x/fresco/internal/paint"
	"github.com/xkilldash9x/fresco/internal/style"
)

// Options carries the per-render parameters.
type Options struct {
	ViewportWidth  int
	ViewportHeight int
}

// Result bundles the pipeline outputs. DisplayList and LayoutRoot are
// exposed alongside the canvas so callers can inspect intermediate state
// without re-running earlier stages.
type Result struct {
	Canvas      *paint.Canvas
	DisplayList paint.DisplayList
	LayoutRoot  *layout.LayoutBox
}

// Pipeline runs the full render: parse → style → layout → paint. A
// zero-value Pipeline is usable; the logger defaults to a nop.
type Pipeline struct {
	logger *zap.Logger
}

// NewPipeline builds a pipeline logging through the given logger.
func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{logger: logger.Named("render")}
}

// Render turns an HTML document and a stylesheet into a painted canvas.
func (p *Pipeline) Render(htmlSrc, cssSrc string, opts Options) (*Result, error) {
	if opts.ViewportWidth <= 0 || opts.ViewportHeight <= 0 {
		return nil, fmt.Errorf("render: viewport must be positive, got %dx%d",
			opts.ViewportWidth, opts.ViewportHeight)
	}

	root, err := dom.ParseString(htmlSrc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	sheet := css.NewParser(cssSrc).Parse()
	p.logger.Debug("parsed inputs", zap.Int("rules", len(sheet.Rules)))

	styled := style.Resolve(root, &sheet)

	boxRoot, err := layout.BuildTree(styled)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	viewport := layout.Dimensions{Content: layout.Rect{
		Width:  float64(opts.ViewportWidth),
		Height: float64(opts.ViewportHeight),
	}}
	if err := layout.Layout(boxRoot, viewport); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	list := paint.BuildDisplayList(boxRoot)
	canvas := paint.NewCanvas(opts.ViewportWidth, opts.ViewportHeight)
	for _, cmd := range list {
		canvas.PaintCommand(cmd)
	}
	p.logger.Debug("painted canvas",
		zap.Int("commands", len(list)),
		zap.Int("width", canvas.Width),
		zap.Int("height", canvas.Height))

	return &Result{Canvas: canvas, DisplayList: list, LayoutRoot: boxRoot}, nil
}
