package qoi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	magic      = "qoif"
	headerSize = 14
)

var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Header is the 14-byte QOI container header.
type Header struct {
	Width, Height uint32
	Channels      byte
	Colorspace    Colorspace
}

func readHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, fmt.Errorf("%w: need %d header bytes, got %d", ErrTruncatedStream, headerSize, len(buf))
	}
	if string(buf[0:4]) != magic {
		return Header{}, fmt.Errorf("%w: expected %q, got %q", ErrBadMagic, magic, buf[0:4])
	}
	channels := buf[12]
	if channels != 3 && channels != 4 {
		return Header{}, fmt.Errorf("%w: channels must be 3 or 4, got %d", ErrBadHeaderField, channels)
	}
	colorspace := buf[13]
	if colorspace != 0 && colorspace != 1 {
		return Header{}, fmt.Errorf("%w: colorspace must be 0 or 1, got %d", ErrBadHeaderField, colorspace)
	}
	return Header{
		Width:      binary.BigEndian.Uint32(buf[4:8]),
		Height:     binary.BigEndian.Uint32(buf[8:12]),
		Channels:   channels,
		Colorspace: Colorspace(colorspace),
	}, nil
}

// DecodeRaster decodes a complete QOI byte stream into a Raster.
func DecodeRaster(buf []byte) (Raster, error) {
	hdr, err := readHeader(buf)
	if err != nil {
		return Raster{}, err
	}

	pix := make([]byte, int(hdr.Width)*int(hdr.Height)*4)
	interp := newInterpreter(pix)
	p := newParser(buf[headerSize:])

	for !interp.done() {
		c, err := p.next()
		if err == io.EOF {
			return Raster{}, fmt.Errorf("%w: produced %d of %d pixels", ErrTruncatedRaster, interp.produced, interp.target)
		}
		if err != nil {
			return Raster{}, err
		}
		if err := interp.feed(c); err != nil {
			return Raster{}, err
		}
	}

	rest := buf[headerSize+p.pos:]
	if len(rest) < 8 || !bytes.Equal(rest[:8], endMarker[:]) {
		return Raster{}, fmt.Errorf("%w", ErrBadEndMarker)
	}

	return Raster{Width: hdr.Width, Height: hdr.Height, Pix: pix, Colorspace: hdr.Colorspace}, nil
}

// Decode implements the image.Decode signature so QOI can be registered
// as a stdlib image format (see init below).
func Decode(r io.Reader) (image.Image, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raster, err := DecodeRaster(buf)
	if err != nil {
		return nil, err
	}
	return raster, nil
}

// DecodeConfig reads just the header; image.RegisterFormat's format-sniffing
// needs a real implementation of this to work.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	hdr, err := readHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(hdr.Width),
		Height:     int(hdr.Height),
	}, nil
}

func init() {
	image.RegisterFormat("qoi", magic, Decode, DecodeConfig)
}
