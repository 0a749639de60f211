package qoi

import (
	"bytes"
	"testing"
)

func TestEncodeRasterSingleRedPixel(t *testing.T) {
	r, err := NewRaster(1, 1, []byte{255, 0, 0, 255})
	if err != nil {
		t.Fatal(err)
	}
	got := EncodeRaster(r)
	want := []byte{
		0x71, 0x6F, 0x69, 0x66, // "qoif"
		0x00, 0x00, 0x00, 0x01, // width
		0x00, 0x00, 0x00, 0x01, // height
		0x03, 0x01, // channels=3 (opaque), colorspace=1
		0x5A, // Diff{-1,0,0}: 0 -> 255 wraps to a delta of -1
		0, 0, 0, 0, 0, 0, 0, 1, // end marker
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X\nwant % X", got, want)
	}
}

func TestEncodeRasterRunOfTwo(t *testing.T) {
	r, err := NewRaster(2, 1, []byte{0, 0, 0, 255, 0, 0, 0, 255})
	if err != nil {
		t.Fatal(err)
	}
	got := EncodeRaster(r)
	bodyStart := headerSize
	bodyEnd := len(got) - len(endMarker)
	body := got[bodyStart:bodyEnd]
	if !bytes.Equal(body, []byte{0xC1}) {
		t.Errorf("body = % X, want [C1]", body)
	}
}

func TestEncodeRasterSplitRunAt62(t *testing.T) {
	pix := make([]byte, 63*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 255
	}
	r, err := NewRaster(1, 63, pix)
	if err != nil {
		t.Fatal(err)
	}
	got := EncodeRaster(r)
	body := got[headerSize : len(got)-len(endMarker)]
	if !bytes.Equal(body, []byte{0xFD, 0xC0}) {
		t.Errorf("body = % X, want [FD C0]", body)
	}
}

func TestEncodeChoosesChannelsFromOpacity(t *testing.T) {
	opaque, _ := NewRaster(1, 1, []byte{1, 2, 3, 255})
	transparent, _ := NewRaster(1, 1, []byte{1, 2, 3, 254})

	og := EncodeRaster(opaque)
	tg := EncodeRaster(transparent)
	if og[12] != 3 {
		t.Errorf("opaque raster channels byte = %d, want 3", og[12])
	}
	if tg[12] != 4 {
		t.Errorf("non-opaque raster channels byte = %d, want 4", tg[12])
	}
}

func TestEncodeDecodeRoundTripGradient(t *testing.T) {
	const w, h = 16, 16
	pix := make([]byte, w*h*4)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[i], pix[i+1], pix[i+2], pix[i+3] = byte(x*16), byte(y*16), byte((x+y)*8), 255
			i += 4
		}
	}
	r, err := NewRaster(w, h, pix)
	if err != nil {
		t.Fatal(err)
	}

	encoded := EncodeRaster(r)
	decoded, err := DecodeRaster(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.Pix, r.Pix) {
		t.Fatalf("round-trip mismatch")
	}

	reencoded := EncodeRaster(decoded)
	if !bytes.Equal(reencoded, encoded) {
		t.Errorf("re-encode not byte-identical to original encode")
	}

	redecoded, err := DecodeRaster(reencoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(redecoded.Pix, r.Pix) {
		t.Errorf("decode-encode-decode mismatch")
	}
}

func TestEncodeDecodeRoundTripMixedAlpha(t *testing.T) {
	const w, h = 4, 4
	pix := make([]byte, w*h*4)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := byte(255)
			if (x+y)%3 == 0 {
				a = 128
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = byte(x), byte(y), byte(x+y), a
			i += 4
		}
	}
	r, _ := NewRaster(w, h, pix)
	encoded := EncodeRaster(r)
	if encoded[12] != 4 {
		t.Fatalf("channels byte = %d, want 4 for mixed-alpha raster", encoded[12])
	}
	decoded, err := DecodeRaster(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.Pix, r.Pix) {
		t.Errorf("round-trip mismatch for mixed-alpha raster")
	}
}

func TestIsOpaque(t *testing.T) {
	opaque, _ := NewRaster(1, 2, []byte{1, 2, 3, 255, 4, 5, 6, 255})
	if !isOpaque(opaque) {
		t.Error("isOpaque = false, want true")
	}
	mixed, _ := NewRaster(1, 2, []byte{1, 2, 3, 255, 4, 5, 6, 254})
	if isOpaque(mixed) {
		t.Error("isOpaque = true, want false")
	}
}
