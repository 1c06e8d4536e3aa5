// Package images holds small raster helpers for the view layer: PNG
// encoding for Tk photos, thumbnailing, and overlay drawing for the crop
// canvas.
package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Thumbnail scales src to fit within maxW x maxH preserving aspect ratio.
// The source is returned unchanged when it already fits.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.Box)
}

// FitToDisplay scales src down so it fits within maxW x maxH, using a
// higher-quality filter than Thumbnail since the result is the interaction
// surface itself.
func FitToDisplay(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

// Outline draws a rectangle border of the given thickness onto dst, clipped
// to dst's bounds.
func Outline(dst *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	if dst == nil || thickness <= 0 {
		return
	}
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness)
	bottom := image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y)
	right := image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y)
	for _, seg := range []image.Rectangle{top, bottom, left, right} {
		Fill(dst, seg, c)
	}
}

// Fill paints a solid rectangle onto dst, clipped to dst's bounds.
func Fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if dst == nil {
		return
	}
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// Label draws small text onto dst with its baseline near (x, y+10), using
// the built-in 7x13 bitmap face. Good enough for badges and affordances.
func Label(dst *image.RGBA, x, y int, text string, c color.RGBA) {
	if dst == nil || text == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+10),
	}
	d.DrawString(text)
}
