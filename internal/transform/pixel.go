package transform

import (
	"fmt"
	"image"
)

// Pixel is a non-premultiplied RGBA value with 8-bit channels.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Transparent is fully transparent black.
var Transparent = Pixel{}

// String formats the pixel as (r, g, b, a).
func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", p.R, p.G, p.B, p.A)
}

// Func maps a pixel at (x, y) in an image of the given size to its
// replacement. Implementations must be pure.
type Func func(p Pixel, x, y, width, height int) Pixel

// Visitor is notified of every pixel whose value changed during Apply.
type Visitor func(x, y int, before, after Pixel)

// Apply runs fn over every position of src and returns a new image with the
// same dimensions and its origin at (0,0). src is not modified. It returns
// the number of pixels whose value changed.
func Apply(src *image.NRGBA, fn Func, visit Visitor) (*image.NRGBA, int) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	changed := 0
	for y := 0; y < height; y++ {
		srcRow := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			before := Pixel{R: srcRow[i], G: srcRow[i+1], B: srcRow[i+2], A: srcRow[i+3]}
			after := fn(before, x, y, width, height)
			dstRow[i], dstRow[i+1], dstRow[i+2], dstRow[i+3] = after.R, after.G, after.B, after.A

			if after != before {
				changed++
				if visit != nil {
					visit(x, y, before, after)
				}
			}
		}
	}

	return dst, changed
}
