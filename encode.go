package qoi

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"
)

// isOpaque reports whether every pixel in r has alpha 255, scanning
// Raster.Pix directly.
func isOpaque(r Raster) bool {
	for i := 3; i < len(r.Pix); i += 4 {
		if r.Pix[i] != 0xFF {
			return false
		}
	}
	return true
}

// isOpaqueImage is isOpaque's counterpart for an arbitrary image.Image
// source, used by rasterFrom before a Raster exists to scan. It prefers
// the image's own Opaque method when available (image.RGBA, image.NRGBA,
// and friends implement it as a scan of their alpha bytes), falling
// back to a per-pixel At scan otherwise.
func isOpaqueImage(im image.Image) bool {
	if oim, ok := im.(interface{ Opaque() bool }); ok {
		return oim.Opaque()
	}
	rect := im.Bounds()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if _, _, _, a := im.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// EncodeRaster encodes r as a complete QOI byte stream: header, chunk
// body, end marker.
func EncodeRaster(r Raster) []byte {
	channels := byte(4)
	if isOpaque(r) {
		channels = 3
	}

	out := make([]byte, 0, headerSize+len(r.Pix)/2+len(endMarker))
	out = append(out, magic...)
	var whdr [8]byte
	binary.BigEndian.PutUint32(whdr[0:4], r.Width)
	binary.BigEndian.PutUint32(whdr[4:8], r.Height)
	out = append(out, whdr[:]...)
	out = append(out, channels, byte(Linear))

	comp := newCompressor(r.Pix)
	for !comp.done() {
		out = assemble(comp.next(), out)
	}
	out = append(out, endMarker[:]...)
	return out
}

// Encode implements the image.Encode-shaped signature the stdlib codecs
// (png.Encode, jpeg.Encode) use.
func Encode(w io.Writer, m image.Image) error {
	raster, err := rasterFrom(m)
	if err != nil {
		return err
	}
	_, err = w.Write(EncodeRaster(raster))
	return err
}

func rasterFrom(m image.Image) (Raster, error) {
	if r, ok := m.(Raster); ok {
		return r, nil
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)
	opaque := isOpaqueImage(m)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			a := n.A
			if opaque {
				a = 255
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = n.R, n.G, n.B, a
			i += 4
		}
	}
	return NewRaster(uint32(w), uint32(h), pix)
}
