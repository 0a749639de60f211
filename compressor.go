package qoi

// compressor turns an RGBA pixel slice into a lazy sequence of Chunks,
// choosing the smallest legal chunk per pixel. It owns the running
// "previous pixel" and seen table for one encode.
type compressor struct {
	previous pixel
	seen     seenTable
	src      []byte
	pos      int // pixel index, not byte offset
}

func newCompressor(src []byte) *compressor {
	return &compressor{previous: startPixel, src: src}
}

func (c *compressor) numPixels() int {
	return len(c.src) / 4
}

func (c *compressor) done() bool {
	return c.pos >= c.numPixels()
}

func (c *compressor) pixelAt(i int) pixel {
	off := i * 4
	return pixel{R: c.src[off], G: c.src[off+1], B: c.src[off+2], A: c.src[off+3]}
}

// next returns the next chunk and advances the cursor over however many
// pixels that chunk accounts for. Callers must not call next once done
// reports true.
func (c *compressor) next() Chunk {
	p := c.pixelAt(c.pos)

	// Rule 1: run extension. previous and seen are left untouched — seen
	// was already set by whichever earlier chunk made previous equal p; a
	// run at the very start of the stream (previous still startPixel)
	// leaves p unobserved.
	if p == c.previous {
		length := 0
		for length < maxRunLength && c.pos < c.numPixels() && c.pixelAt(c.pos) == c.previous {
			length++
			c.pos++
		}
		return RunChunk{Length: length}
	}

	h := p.hash()

	// Rule 2: index hit. Must be checked before the diff/luma ranges —
	// when both would apply, the shorter Index chunk wins.
	if c.seen[h] == p {
		c.pos++
		c.previous = p
		return IndexChunk{Loc: h}
	}

	// Wrap-around signed deltas: byte subtraction wraps mod 256, and
	// reinterpreting the wrapped uint8 as int8 gives the canonical signed
	// delta QOI requires (e.g. 255 -> 0 is +1, not -255).
	dr := int(int8(p.R - c.previous.R))
	dg := int(int8(p.G - c.previous.G))
	db := int(int8(p.B - c.previous.B))
	sameAlpha := p.A == c.previous.A

	// Rule 3: small diff.
	if sameAlpha && inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1) {
		c.pos++
		c.seen.observe(p)
		c.previous = p
		return DiffChunk{DR: int8(dr), DG: int8(dg), DB: int8(db)}
	}

	// Rule 4: luma.
	drDg := dr - dg
	dbDg := db - dg
	if sameAlpha && inRange(dg, -32, 31) && inRange(drDg, -8, 7) && inRange(dbDg, -8, 7) {
		c.pos++
		c.seen.observe(p)
		c.previous = p
		return LumaChunk{DG: int8(dg), DRDG: int8(drDg), DBDG: int8(dbDg)}
	}

	c.pos++
	c.seen.observe(p)
	c.previous = p

	// Rule 5: RGB.
	if sameAlpha {
		return RGBChunk{R: p.R, G: p.G, B: p.B}
	}

	// Rule 6: RGBA.
	return RGBAChunk{R: p.R, G: p.G, B: p.B, A: p.A}
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
