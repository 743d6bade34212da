// Package visualizer renders per-frame predictions as an image strip
// using the gg library.
package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/sceneshot/pkg/pipeline"
	"github.com/user/sceneshot/pkg/ports"
)

// Columns is the number of frame thumbnails per row.
const Columns = 25

// Renderer implements ports.PredictionRenderer. The output is a grid of
// frame thumbnails, each followed by one vertical bar per prediction head
// whose height is proportional to the score.
type Renderer struct {
	scale int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScale upscales the output by an integer factor. The thumbnails are
// 48x27, so a factor of 2 or 3 makes the strip readable on dense displays.
func WithScale(scale int) Option {
	return func(r *Renderer) {
		if scale > 1 {
			r.scale = scale
		}
	}
}

// New creates a new Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{scale: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the frames and their scores into a single image. manyHot
// may be nil for single-head models.
func (r *Renderer) Render(frames []pipeline.Frame, single, manyHot []float32) (image.Image, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames to render", pipeline.ErrInvalidInput)
	}
	if len(single) != len(frames) {
		return nil, fmt.Errorf("%w: %d predictions for %d frames",
			pipeline.ErrInvalidInput, len(single), len(frames))
	}
	if manyHot != nil && len(manyHot) != len(frames) {
		return nil, fmt.Errorf("%w: %d many-hot predictions for %d frames",
			pipeline.ErrInvalidInput, len(manyHot), len(frames))
	}

	heads := 1
	if manyHot != nil {
		heads = 2
	}

	cellW := pipeline.FrameWidth + heads
	cellH := pipeline.FrameHeight + 1
	rows := (len(frames) + Columns - 1) / Columns

	dc := gg.NewContext(Columns*cellW, rows*cellH)
	dc.SetColor(color.Black)
	dc.Clear()

	for i, frame := range frames {
		col, row := i%Columns, i/Columns
		x0, y0 := col*cellW, row*cellH

		dc.DrawImage(frameImage(frame), x0, y0)

		baseY := float64(y0 + pipeline.FrameHeight - 1)
		barX := float64(x0 + pipeline.FrameWidth)

		drawBar(dc, barX, baseY, single[i], color.RGBA{G: 255, A: 255})
		if manyHot != nil {
			drawBar(dc, barX+1, baseY, manyHot[i], color.RGBA{B: 255, A: 255})
		}
	}

	if r.scale > 1 {
		return upscale(dc.Image(), r.scale), nil
	}
	return dc.Image(), nil
}

// upscale enlarges img by an integer factor, keeping hard pixel edges so
// the score bars stay crisp.
func upscale(img image.Image, factor int) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// drawBar draws one vertical score bar growing upward from baseY.
func drawBar(dc *gg.Context, x, baseY float64, score float32, c color.Color) {
	bar := math.Round(float64(score) * float64(pipeline.FrameHeight-1))
	if bar == 0 {
		return
	}
	dc.SetColor(c)
	dc.SetLineWidth(1)
	dc.DrawLine(x+0.5, baseY, x+0.5, baseY-bar)
	dc.Stroke()
}

// frameImage converts a raw RGB24 frame into an image.Image.
func frameImage(frame pipeline.Frame) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, pipeline.FrameWidth, pipeline.FrameHeight))
	for y := 0; y < pipeline.FrameHeight; y++ {
		for x := 0; x < pipeline.FrameWidth; x++ {
			off := (y*pipeline.FrameWidth + x) * pipeline.FrameChannels
			img.SetRGBA(x, y, color.RGBA{
				R: frame[off],
				G: frame[off+1],
				B: frame[off+2],
				A: 255,
			})
		}
	}
	return img
}

var _ ports.PredictionRenderer = (*Renderer)(nil)
