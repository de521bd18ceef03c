package renderer

import (
	"image"
	"image/color"
)

/**
 * @brief A read-only copy of a scene color buffer.
 * Pixels are row-major with (0,0) at the bottom-left.
 */
type Frame struct {
	Width  int
	Height int
	Pixels []uint32
}

// At returns the packed color at (x, y), or black outside the frame.
func (f Frame) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return ColorBlack
	}
	return f.Pixels[x+y*f.Width]
}

// RGBA converts the frame to an opaque image with row 0 at the top.
func (f Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := f.Height - 1 - y
		for x := 0; x < f.Width; x++ {
			r, g, b := UnpackRGB(f.Pixels[x+y*f.Width])
			img.SetRGBA(x, row, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img
}
