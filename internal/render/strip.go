// Package render draws a preview image of a button sequence, laid out in a
// left-to-right flow that wraps after a fixed number of columns.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/mj1618/switcher/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// basicfont.Face7x13 glyph metrics.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

// Options controls the preview layout.
type Options struct {
	Columns      int // Buttons per row (default 4)
	ButtonWidth  int // Pixels (default 160)
	ButtonHeight int // Pixels (default 48)
	Padding      int // Gap around and between buttons (default 8)
}

// DefaultOptions returns the preview defaults.
func DefaultOptions() Options {
	return Options{Columns: 4, ButtonWidth: 160, ButtonHeight: 48, Padding: 8}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.ButtonWidth <= 0 {
		o.ButtonWidth = d.ButtonWidth
	}
	if o.ButtonHeight <= 0 {
		o.ButtonHeight = d.ButtonHeight
	}
	if o.Padding < 0 {
		o.Padding = d.Padding
	}
	return o
}

// Layout returns the rectangle of each of n buttons and the canvas size.
func Layout(n int, opts Options) ([]image.Rectangle, image.Rectangle) {
	opts = opts.withDefaults()

	cols := opts.Columns
	if n < cols {
		cols = n
	}
	if cols == 0 {
		cols = 1
	}
	rows := (n + opts.Columns - 1) / opts.Columns
	if rows == 0 {
		rows = 1
	}

	canvas := image.Rect(0, 0,
		opts.Padding+cols*(opts.ButtonWidth+opts.Padding),
		opts.Padding+rows*(opts.ButtonHeight+opts.Padding))

	rects := make([]image.Rectangle, n)
	for i := range rects {
		col, row := i%opts.Columns, i/opts.Columns
		x := opts.Padding + col*(opts.ButtonWidth+opts.Padding)
		y := opts.Padding + row*(opts.ButtonHeight+opts.Padding)
		rects[i] = image.Rect(x, y, x+opts.ButtonWidth, y+opts.ButtonHeight)
	}
	return rects, canvas
}

var (
	backgroundColor = color.RGBA{R: 32, G: 32, B: 36, A: 255}
	buttonColor     = color.RGBA{R: 58, G: 60, B: 68, A: 255}
	borderColor     = color.RGBA{R: 120, G: 124, B: 140, A: 255}
	textColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	captionColor    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
)

// Strip draws buttons in order with their titles and window IDs.
func Strip(buttons []model.ButtonState, opts Options) *image.RGBA {
	rects, canvas := Layout(len(buttons), opts)

	img := image.NewRGBA(canvas)
	draw.Draw(img, canvas, image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	for i, b := range buttons {
		r := rects[i]
		draw.Draw(img, r, image.NewUniform(buttonColor), image.Point{}, draw.Src)
		drawRectangle(img, r, borderColor)

		maxChars := (r.Dx() - 8) / glyphWidth
		drawText(img, truncate(b.Title, maxChars), r.Min.X+4, r.Min.Y+4+glyphHeight, textColor)
		drawText(img, truncate(fmt.Sprintf("0x%x", uint32(b.Window)), maxChars), r.Min.X+4, r.Max.Y-6, captionColor)
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// drawRectangle draws a one-pixel outline of r, clamped to the image.
func drawRectangle(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawText draws text with its baseline at (x, y).
func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
