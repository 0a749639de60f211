package qoi

import "fmt"

// interpreter turns a Chunk sequence into RGBA pixels, writing them
// directly into a destination byte slice as they're produced. It owns
// the running "previous pixel" and seen table for one decode.
type interpreter struct {
	previous pixel
	seen     seenTable
	out      []byte
	produced int
	target   int
}

func newInterpreter(dst []byte) *interpreter {
	return &interpreter{previous: startPixel, out: dst, target: len(dst) / 4}
}

func (in *interpreter) done() bool {
	return in.produced >= in.target
}

// feed processes one chunk, writing the pixel(s) it implies into out and
// advancing produced. It reports ErrOverrunRaster if the chunk would push
// produced past target (possible only for a Run).
func (in *interpreter) feed(c Chunk) error {
	switch v := c.(type) {
	case RGBChunk:
		return in.emit(pixel{R: v.R, G: v.G, B: v.B, A: in.previous.A})

	case RGBAChunk:
		return in.emit(pixel{R: v.R, G: v.G, B: v.B, A: v.A})

	case IndexChunk:
		return in.emit(in.seen[v.Loc])

	case DiffChunk:
		p := in.previous
		p.R += uint8(v.DR)
		p.G += uint8(v.DG)
		p.B += uint8(v.DB)
		return in.emit(p)

	case LumaChunk:
		p := in.previous
		dg := int(v.DG)
		p.G += uint8(dg)
		p.R += uint8(int(v.DRDG) + dg)
		p.B += uint8(int(v.DBDG) + dg)
		return in.emit(p)

	case RunChunk:
		for i := 0; i < v.Length; i++ {
			if err := in.emit(in.previous); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("qoi: unknown chunk type %T", c)
	}
}

// emit appends p to out and updates previous/seen. Doing this
// unconditionally — including for every pixel inside a Run — keeps
// seen[hash(previous)] == previous after every pixel. For a Run at the
// very start of a stream this also records startPixel, which the
// compressor does not observe; the compressor only emits Index for
// pixels it has observed itself, so that slot is never referenced
// (see phoboslab/qoi#258).
func (in *interpreter) emit(p pixel) error {
	if in.produced >= in.target {
		return fmt.Errorf("%w: would produce pixel %d of %d", ErrOverrunRaster, in.produced+1, in.target)
	}
	off := in.produced * 4
	in.out[off], in.out[off+1], in.out[off+2], in.out[off+3] = p.R, p.G, p.B, p.A
	in.produced++
	in.previous = p
	in.seen.observe(p)
	return nil
}
