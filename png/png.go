// Package png adapts the standard library's image/png codec to the
// Raster exchange type. It is a thin adapter, not a PNG implementation:
// all filtering, interlacing, and ancillary-chunk handling is the stdlib
// decoder's responsibility.
package png

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	stdpng "image/png"
	"io"

	"github.com/qoiraster/qoi"
)

// ErrUnsupportedColor is returned when the decoded PNG uses a color model
// this adapter doesn't promote to RGBA — palette or 16-bit-depth source
// data, both explicitly out of scope.
var ErrUnsupportedColor = errors.New("png: unsupported color model")

// Decode reads a PNG and adapts it to a Raster. Grayscale and RGB sources
// are promoted to RGBA (alpha = 255, gray broadcast to R=G=B).
func Decode(r io.Reader) (qoi.Raster, error) {
	img, err := stdpng.Decode(r)
	if err != nil {
		return qoi.Raster{}, err
	}
	return fromImage(img)
}

func fromImage(img image.Image) (qoi.Raster, error) {
	switch img.(type) {
	case *image.Paletted, *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return qoi.Raster{}, fmt.Errorf("%w: %T", ErrUnsupportedColor, img)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = n.R, n.G, n.B, n.A
			i += 4
		}
	}
	return qoi.NewRaster(uint32(w), uint32(h), pix)
}

// Encode writes r as a PNG, wrapping its bytes in an *image.NRGBA without
// copying them.
func Encode(w io.Writer, r qoi.Raster) error {
	img := &image.NRGBA{
		Pix:    r.Pix,
		Stride: int(r.Width) * 4,
		Rect:   image.Rect(0, 0, int(r.Width), int(r.Height)),
	}
	return stdpng.Encode(w, img)
}
