package qoi

// pixel is the decoder/encoder's unit of work: four unassociated-alpha
// 8-bit channels in wire order (R, G, B, A).
type pixel struct {
	R, G, B, A uint8
}

// startPixel is the running "previous pixel" both the encoder and decoder
// begin from. The seen table, by contrast, starts all-zero (see seenTable) —
// that asymmetry is load-bearing, not an oversight.
var startPixel = pixel{R: 0, G: 0, B: 0, A: 255}

// hash is the QOI index hash: (3R + 5G + 7B + 11A) mod 64. The multiply-add
// is widened to avoid wrapping uint8 arithmetic before the mod, though any
// width wide enough to hold 3*255+5*255+7*255+11*255 = 6630 would do.
func (p pixel) hash() uint8 {
	sum := 3*uint16(p.R) + 5*uint16(p.G) + 7*uint16(p.B) + 11*uint16(p.A)
	return uint8(sum % 64)
}

// seenTable is the 64-slot cache addressed by hash, initialized to 64
// copies of the zero pixel (0,0,0,0) — not startPixel.
type seenTable [64]pixel

func (s *seenTable) observe(p pixel) {
	s[p.hash()] = p
}
