package qoi

// assemble maps one Chunk to its on-wire bytes — the exact inverse of the
// Parser's dispatch table, including the biases applied back in.
func assemble(c Chunk, dst []byte) []byte {
	switch v := c.(type) {
	case RGBChunk:
		return append(dst, tagRGB, v.R, v.G, v.B)

	case RGBAChunk:
		return append(dst, tagRGBA, v.R, v.G, v.B, v.A)

	case IndexChunk:
		return append(dst, tagIndex|(v.Loc&0x3F))

	case DiffChunk:
		b := tagDiff | byte(v.DR+diffBias)<<4 | byte(v.DG+diffBias)<<2 | byte(v.DB+diffBias)
		return append(dst, b)

	case LumaChunk:
		b1 := tagLuma | byte(v.DG+lumaGBias)
		b2 := byte(v.DRDG+lumaRBBias)<<4 | byte(v.DBDG+lumaRBBias)
		return append(dst, b1, b2)

	case RunChunk:
		return append(dst, tagRun|byte(v.Length-runBias))

	default:
		panic("qoi: unknown chunk type")
	}
}
