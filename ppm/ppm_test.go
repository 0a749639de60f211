package ppm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/qoiraster/qoi"
)

func TestDecodeBasic(t *testing.T) {
	src := "P6\n2 1\n255\n" + string([]byte{255, 0, 0, 0, 255, 0})
	r, err := Decode(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatal(err)
	}
	if r.Width != 2 || r.Height != 1 {
		t.Fatalf("dims = %dx%d, want 2x1", r.Width, r.Height)
	}
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(r.Pix, want) {
		t.Errorf("Pix = %v, want %v", r.Pix, want)
	}
}

func TestDecodeSkipsCommentsAndWhitespace(t *testing.T) {
	src := "P6 \n # a comment\n 1  1\n255\n" + string([]byte{10, 20, 30})
	r, err := Decode(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{10, 20, 30, 255}
	if !bytes.Equal(r.Pix, want) {
		t.Errorf("Pix = %v, want %v", r.Pix, want)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P5\n1 1\n255\n\x00\x00\x00")))
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeRejectsNonstandardMaxval(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P6\n1 1\n100\n\x00\x00\x00")))
	if !errors.Is(err, ErrBadHeaderField) {
		t.Errorf("err = %v, want ErrBadHeaderField", err)
	}
}

func TestDecodeRequiresSingleNewlineAfterMaxval(t *testing.T) {
	// A space before the newline is not permitted: exactly one '\n' must
	// directly follow maxval's digits.
	_, err := Decode(bytes.NewReader([]byte("P6\n1 1\n255 \n\x00\x00\x00")))
	if err == nil {
		t.Fatal("expected an error for a non-newline byte immediately after maxval")
	}
}

func TestDecodeTruncatedBody(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P6\n2 2\n255\n\x00\x00\x00")))
	if !errors.Is(err, ErrTruncatedBody) {
		t.Errorf("err = %v, want ErrTruncatedBody", err)
	}
}

func TestEncodeDropsAlpha(t *testing.T) {
	r, err := qoi.NewRaster(2, 1, []byte{1, 2, 3, 255, 4, 5, 6, 0})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		t.Fatal(err)
	}
	want := "P6\n2 1\n255\n" + string([]byte{1, 2, 3, 4, 5, 6})
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r, _ := qoi.NewRaster(3, 2, []byte{
		1, 2, 3, 255, 4, 5, 6, 255, 7, 8, 9, 255,
		10, 11, 12, 255, 13, 14, 15, 255, 16, 17, 18, 255,
	})
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, r.Pix) {
		t.Errorf("round-trip mismatch: got %v, want %v", got.Pix, r.Pix)
	}
}
