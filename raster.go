package qoi

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Colorspace mirrors the QOI header's one-byte colorspace flag. The codec
// never interprets it: DecodeRaster stores the byte it read, and
// EncodeRaster ignores this field and always writes Linear. No color
// management is performed.
type Colorspace uint8

const (
	SRGB   Colorspace = 0
	Linear Colorspace = 1
)

// Raster is the exchange value between codecs: width, height, and
// row-major RGBA bytes, four per pixel. len(Pix) must equal 4*Width*Height.
//
// Raster implements image.Image directly, so it can be handed to any
// stdlib or third-party code expecting one (image/draw, image/png, ...)
// without an intermediate conversion.
type Raster struct {
	Width, Height uint32
	Pix           []byte
	Colorspace    Colorspace
}

// NewRaster validates the length invariant before returning a Raster.
func NewRaster(width, height uint32, pix []byte) (Raster, error) {
	want := int(width) * int(height) * 4
	if len(pix) != want {
		return Raster{}, fmt.Errorf("%w: got %d bytes, want %d for a %dx%d raster", ErrMalformedRaster, len(pix), want, width, height)
	}
	return Raster{Width: width, Height: height, Pix: pix}, nil
}

func (r Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

func (r Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(r.Width), int(r.Height))
}

func (r Raster) At(x, y int) color.Color {
	off := (y*int(r.Width) + x) * 4
	return color.NRGBA{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2], A: r.Pix[off+3]}
}

// WriteTo serializes r as big-endian u32 Width, big-endian u32 Height,
// then 4*Width*Height RGBA bytes — the framing used to pipe rasters
// between processes, distinct from the QOI container format.
func (r Raster) WriteTo(w io.Writer) (int64, error) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], r.Width)
	binary.BigEndian.PutUint32(hdr[4:8], r.Height)
	n1, err := w.Write(hdr[:])
	if err != nil {
		return int64(n1), err
	}
	n2, err := w.Write(r.Pix)
	return int64(n1 + n2), err
}

// ReadRasterFrom reads the framing WriteTo produces. It fails with
// ErrMalformedRaster if the trailing byte count doesn't equal
// 4*Width*Height exactly — short or long.
func ReadRasterFrom(r io.Reader) (Raster, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Raster{}, fmt.Errorf("%w: reading raster frame header: %v", ErrMalformedRaster, err)
	}
	width := binary.BigEndian.Uint32(hdr[0:4])
	height := binary.BigEndian.Uint32(hdr[4:8])

	pix, err := io.ReadAll(r)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: reading raster body: %v", ErrMalformedRaster, err)
	}
	return NewRaster(width, height, pix)
}
