// Package ppm reads and writes the binary PPM (P6) format, the text-header
// / binary-body sibling of the QOI and PNG codecs in this module.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/qoiraster/qoi"
)

var (
	ErrBadMagic       = errors.New("ppm: bad magic bytes")
	ErrBadHeaderField = errors.New("ppm: bad header field")
	ErrTruncatedBody  = errors.New("ppm: truncated body")
)

// Decode parses a P6 image into a Raster, expanding RGB to RGBA by
// appending alpha = 255 to every pixel.
func Decode(r io.Reader) (qoi.Raster, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return qoi.Raster{}, fmt.Errorf("%w: reading magic: %v", ErrBadMagic, err)
	}
	if magic != "P6" {
		return qoi.Raster{}, fmt.Errorf("%w: expected %q, got %q", ErrBadMagic, "P6", magic)
	}

	width, err := readIntToken(br)
	if err != nil {
		return qoi.Raster{}, err
	}
	height, err := readIntToken(br)
	if err != nil {
		return qoi.Raster{}, err
	}
	maxval, err := readIntToken(br)
	if err != nil {
		return qoi.Raster{}, err
	}
	if maxval != 255 {
		return qoi.Raster{}, fmt.Errorf("%w: maxval must be 255, got %d", ErrBadHeaderField, maxval)
	}

	// Exactly one newline must immediately follow maxval — no further
	// whitespace or comment skipping here.
	nl, err := br.ReadByte()
	if err != nil || nl != '\n' {
		return qoi.Raster{}, fmt.Errorf("%w: maxval must be followed by a single newline", ErrBadHeaderField)
	}

	rgb := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, rgb); err != nil {
		return qoi.Raster{}, fmt.Errorf("%w: expected %d RGB body bytes: %v", ErrTruncatedBody, len(rgb), err)
	}

	pix := make([]byte, width*height*4)
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		pix[j], pix[j+1], pix[j+2], pix[j+3] = rgb[i], rgb[i+1], rgb[i+2], 255
	}

	return qoi.NewRaster(uint32(width), uint32(height), pix)
}

// Encode writes r as a P6 image, dropping alpha.
func Encode(w io.Writer, r qoi.Raster) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", r.Width, r.Height); err != nil {
		return err
	}
	rgb := make([]byte, 0, int(r.Width)*int(r.Height)*3)
	for i := 0; i < len(r.Pix); i += 4 {
		rgb = append(rgb, r.Pix[i], r.Pix[i+1], r.Pix[i+2])
	}
	_, err := w.Write(rgb)
	return err
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// skipWhitespaceAndComments advances past runs of ASCII whitespace and
// '#'-prefixed comment lines terminated by '\n', leaving the cursor on
// the first byte of the next token.
func skipWhitespaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			for {
				b, err := br.ReadByte()
				if err != nil {
					return err
				}
				if b == '\n' {
					break
				}
			}
		case isSpace(b):
			continue
		default:
			return br.UnreadByte()
		}
	}
}

func readToken(br *bufio.Reader) (string, error) {
	if err := skipWhitespaceAndComments(br); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if isSpace(b) || b == '#' {
			_ = br.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func readIntToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("%w: reading integer field: %v", ErrBadHeaderField, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid integer", ErrBadHeaderField, tok)
	}
	return n, nil
}
