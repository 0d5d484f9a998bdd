// internal/render/pipeline_test.go
package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/fresco/internal/css"
	"github.com/xkilldash9x/fresco/internal/layout"
	"github.com/xkilldash9x/fresco/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const docCSS = `
	html, body, div { display: block; }
	head { display: none; }
	div { width: 100px; height: 50px; background: red; }
`

const docHTML = `<html><body><div></div></body></html>`

func TestRenderEndToEnd(t *testing.T) {
	pipeline := render.NewPipeline(zap.NewNop())
	result, err := pipeline.Render(docHTML, docCSS, render.Options{
		ViewportWidth:  800,
		ViewportHeight: 600,
	})
	require.NoError(t, err)

	canvas := result.Canvas
	require.Equal(t, 800, canvas.Width)
	require.Equal(t, 600, canvas.Height)

	red := css.Color{R: 255, G: 0, B: 0, A: 255}
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, red, canvas.At(0, 0))
	assert.Equal(t, red, canvas.At(99, 49))
	assert.Equal(t, white, canvas.At(100, 50))
	assert.Equal(t, white, canvas.At(799, 599))

	require.Len(t, result.DisplayList, 1)
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 100, Height: 50}, result.DisplayList[0].Rect)
	require.NotNil(t, result.LayoutRoot)
	assert.Equal(t, 800.0, result.LayoutRoot.Dimensions.Content.Width)
}

func TestRenderRootDisplayNone(t *testing.T) {
	pipeline := render.NewPipeline(nil)
	_, err := pipeline.Render(docHTML, `html { display: none; }`, render.Options{
		ViewportWidth:  100,
		ViewportHeight: 100,
	})
	assert.ErrorIs(t, err, layout.ErrRootDisplayNone)
}

func TestRenderRejectsBadViewport(t *testing.T) {
	pipeline := render.NewPipeline(nil)
	for _, opts := range []render.Options{
		{ViewportWidth: 0, ViewportHeight: 100},
		{ViewportWidth: 100, ViewportHeight: 0},
		{ViewportWidth: -1, ViewportHeight: -1},
	} {
		_, err := pipeline.Render(docHTML, docCSS, opts)
		assert.Error(t, err)
	}
}

func TestRenderEmptyStylesheet(t *testing.T) {
	pipeline := render.NewPipeline(nil)
	result, err := pipeline.Render(docHTML, ``, render.Options{
		ViewportWidth:  50,
		ViewportHeight: 50,
	})
	require.NoError(t, err)

	// With no styles everything is inline; nothing paints and the canvas
	// stays white.
	assert.Empty(t, result.DisplayList)
	white := css.Color{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, result.Canvas.At(25, 25))
}

func TestRenderIsDeterministic(t *testing.T) {
	pipeline := render.NewPipeline(nil)
	opts := render.Options{ViewportWidth: 200, ViewportHeight: 200}

	first, err := pipeline.Render(docHTML, docCSS, opts)
	require.NoError(t, err)
	second, err := pipeline.Render(docHTML, docCSS, opts)
	require.NoError(t, err)

	assert.Equal(t, first.DisplayList, second.DisplayList)
	assert.Equal(t, first.Canvas.Pixels, second.Canvas.Pixels)
}
