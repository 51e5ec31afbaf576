// Package core implements the Argon2 block-filling engine: the BlaMka
// compression function and the segment filler driving it across the
// memory matrix. This is a pure-Go port from the optimized Argon2 C
// implementation.
//
// The package supports all three Argon2 addressing modes: Argon2d
// (data-dependent), Argon2i (data-independent) and Argon2id (hybrid),
// for both format revisions 0x10 and 0x13.
package core

// fBlaMka is the non-linear combining primitive of the Argon2 permutation.
//
// It replaces the plain addition of the Blake2b G function with a
// multiply-accumulate step:
//
//	fBlaMka(x, y) = x + y + 2 * lo32(x) * lo32(y)  (mod 2^64)
//
// where lo32 extracts the low 32 bits of a word treated as unsigned. The
// extra low-word product makes the function non-linear and forces a full
// 32x32->64 multiply per invocation, which is what makes reduced-memory
// evaluation of the block matrix expensive.
//
// All arithmetic is unsigned 64-bit with wraparound on overflow; overflow
// is correct behavior, never an error.
//
// Reference: Argon2 specification section 3.5 (the BlaMka permutation).
func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}

// rotr64 performs a right rotation of x by n bits.
//
// This is a constant-time operation that doesn't depend on the rotation
// amount being secret, making it safe for cryptographic use.
func rotr64(x uint64, n uint) uint64 {
	return (x >> n) | (x << (64 - n))
}

// blamkaG applies the full BlaMka quarter-round to four 64-bit working
// values and returns the mixed quadruple.
//
// The quarter-round is two halves:
//
//	G1: a = fBlaMka(a,b); d = rotr64(d^a, 32); c = fBlaMka(c,d); b = rotr64(b^c, 24)
//	G2: a = fBlaMka(a,b); d = rotr64(d^a, 16); c = fBlaMka(c,d); b = rotr64(b^c, 63)
//
// identical in structure to the Blake2b G function but with fBlaMka in
// place of plain addition.
func blamkaG(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	// G1: rotation distances 32 and 24
	a = fBlaMka(a, b)
	d = rotr64(d^a, 32)
	c = fBlaMka(c, d)
	b = rotr64(b^c, 24)

	// G2: rotation distances 16 and 63
	a = fBlaMka(a, b)
	d = rotr64(d^a, 16)
	c = fBlaMka(c, d)
	b = rotr64(b^c, 63)

	return a, b, c, d
}

// blamkaRound applies one full BlaMka round to 16 words in place.
//
// The 16 words hold eight 16-byte lanes carrying two interleaved
// quadruples. The column step mixes the quadruples in their home
// positions; the diagonal step is the diagonalized application of the
// same quarter-rounds, equivalent to the byte-level
// diagonalize / quarter-round / undiagonalize sequence of the vectorized
// implementations (see lanes.go for that formulation).
func blamkaRound(v *[16]uint64) {
	// Column step
	v[0], v[4], v[8], v[12] = blamkaG(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = blamkaG(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = blamkaG(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = blamkaG(v[3], v[7], v[11], v[15])

	// Diagonal step
	v[0], v[5], v[10], v[15] = blamkaG(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = blamkaG(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = blamkaG(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = blamkaG(v[3], v[4], v[9], v[14])
}

// permuteBlockGeneric applies the Argon2 permutation network to a block
// in place: 8 independent row rounds followed by 8 independent column
// rounds over the 8x8 grid of 16-byte lanes.
//
// Row r covers words [16r, 16r+16); column c covers the word pair
// (16j+2c, 16j+2c+1) of every row j.
func permuteBlockGeneric(b *Block) {
	var v [16]uint64

	// Row rounds: 16 consecutive words per row.
	for row := 0; row < 8; row++ {
		copy(v[:], b[row*16:row*16+16])
		blamkaRound(&v)
		copy(b[row*16:row*16+16], v[:])
	}

	// Column rounds: one two-word lane from each row.
	for col := 0; col < 8; col++ {
		base := 2 * col
		for j := 0; j < 8; j++ {
			v[2*j] = b[16*j+base]
			v[2*j+1] = b[16*j+base+1]
		}
		blamkaRound(&v)
		for j := 0; j < 8; j++ {
			b[16*j+base] = v[2*j]
			b[16*j+base+1] = v[2*j+1]
		}
	}
}

// fillBlock is the Mixing Core: it combines the running state with a
// reference block and writes the result into nextBlock.
//
// The state buffer carries the previously written block across
// consecutive calls within one segment; after the call it holds the
// newly written block value.
//
// Algorithm:
//  1. state = state XOR refBlock
//  2. blockXY = state, additionally XORed with the current nextBlock
//     contents when withXOR is set (the accumulate rule used from the
//     second pass onward in format revision 0x13)
//  3. apply the permutation network to state
//  4. state = state XOR blockXY; nextBlock = state
//
// This is a pure, total function over fixed-size buffers: it never
// allocates and never fails.
func fillBlock(state, refBlock, nextBlock *Block, withXOR bool) {
	var blockXY Block

	if withXOR {
		for i := range state {
			state[i] ^= refBlock[i]
			blockXY[i] = state[i] ^ nextBlock[i]
		}
	} else {
		for i := range state {
			state[i] ^= refBlock[i]
			blockXY[i] = state[i]
		}
	}

	permuteBlock(state)

	for i := range state {
		state[i] ^= blockXY[i]
		nextBlock[i] = state[i]
	}
}
