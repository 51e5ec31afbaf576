package core

import (
	"encoding/binary"
)

// This file is the lane-oriented formulation of the permutation network:
// the block is processed as 16-byte vectors of two 64-bit lanes, with the
// diagonalization expressed as explicit byte-level cross-lane permutations.
// It is a portable rendition of the vectorized (SSE2/VSX) implementations
// and must produce bit-identical output to permuteBlockGeneric; the two are
// cross-checked in tests. Any backend providing the lane operations below
// (add, xor, low-32 widened multiply, constant-distance rotation, the two
// permutations, unaligned load/store) is a legal Mixing Core substrate.

// vlane is one 16-byte vector holding two little-endian 64-bit lanes.
type vlane [16]byte

// Byte permutation tables. Rotations by 32, 24 and 16 bits are cheap byte
// shuffles on a little-endian lane; destination byte i takes source byte
// table[i]. The diagonalization table indexes the 32-byte concatenation of
// two vectors and takes the high 8 bytes of the first followed by the low
// 8 bytes of the second (the alignr-by-8 pattern).
var (
	rot32Perm = [16]byte{4, 5, 6, 7, 0, 1, 2, 3, 12, 13, 14, 15, 8, 9, 10, 11}
	rot24Perm = [16]byte{3, 4, 5, 6, 7, 0, 1, 2, 11, 12, 13, 14, 15, 8, 9, 10}
	rot16Perm = [16]byte{2, 3, 4, 5, 6, 7, 0, 1, 10, 11, 12, 13, 14, 15, 8, 9}

	alignr8Perm = [16]byte{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}
)

func (v *vlane) lane(i int) uint64 {
	return binary.LittleEndian.Uint64(v[i*8 : i*8+8])
}

func (v *vlane) setLane(i int, x uint64) {
	binary.LittleEndian.PutUint64(v[i*8:i*8+8], x)
}

// loadLane reads the two-word lane starting at word w of the block.
func loadLane(b *Block, w int) vlane {
	var v vlane
	v.setLane(0, b[w])
	v.setLane(1, b[w+1])
	return v
}

// storeLane writes the vector back to the two-word lane at word w.
func storeLane(b *Block, w int, v vlane) {
	b[w] = v.lane(0)
	b[w+1] = v.lane(1)
}

// laneAdd adds the two 64-bit lanes element-wise with wraparound.
func laneAdd(x, y vlane) vlane {
	var r vlane
	r.setLane(0, x.lane(0)+y.lane(0))
	r.setLane(1, x.lane(1)+y.lane(1))
	return r
}

// laneXor XORs the vectors byte-wise.
func laneXor(x, y vlane) vlane {
	var r vlane
	for i := range r {
		r[i] = x[i] ^ y[i]
	}
	return r
}

// laneMulLo32 multiplies the low 32 bits of each 64-bit lane, producing
// the widened 64-bit product per lane.
func laneMulLo32(x, y vlane) vlane {
	var r vlane
	r.setLane(0, uint64(uint32(x.lane(0)))*uint64(uint32(y.lane(0))))
	r.setLane(1, uint64(uint32(x.lane(1)))*uint64(uint32(y.lane(1))))
	return r
}

// lanePerm permutes the bytes of a single vector: result byte i is
// source byte table[i].
func lanePerm(x vlane, table *[16]byte) vlane {
	var r vlane
	for i := range r {
		r[i] = x[table[i]]
	}
	return r
}

// lanePerm2 permutes bytes drawn from the 32-byte concatenation of two
// vectors: indexes 0-15 select from x, 16-31 from y.
func lanePerm2(x, y vlane, table *[16]byte) vlane {
	var r vlane
	for i := range r {
		j := table[i]
		if j < 16 {
			r[i] = x[j]
		} else {
			r[i] = y[j-16]
		}
	}
	return r
}

// laneRotr63 rotates each 64-bit lane right by 63 bits, computed as
// (x >> 63) XOR (x + x) like the vectorized implementations.
func laneRotr63(x vlane) vlane {
	var r vlane
	r.setLane(0, x.lane(0)>>63|x.lane(0)<<1)
	r.setLane(1, x.lane(1)>>63|x.lane(1)<<1)
	return r
}

// laneFBlaMka applies fBlaMka to each 64-bit lane:
// x + y + 2*lo32(x)*lo32(y), composed from the lane primitives.
func laneFBlaMka(x, y vlane) vlane {
	z := laneMulLo32(x, y)
	return laneAdd(laneAdd(x, y), laneAdd(z, z))
}

// g1Lanes is the first quarter-round half over a quadruple of vectors
// (rotation distances 32 and 24).
func g1Lanes(a, b, c, d *vlane) {
	*a = laneFBlaMka(*a, *b)
	*d = lanePerm(laneXor(*d, *a), &rot32Perm)
	*c = laneFBlaMka(*c, *d)
	*b = lanePerm(laneXor(*b, *c), &rot24Perm)
}

// g2Lanes is the second quarter-round half (rotation distances 16 and 63).
func g2Lanes(a, b, c, d *vlane) {
	*a = laneFBlaMka(*a, *b)
	*d = lanePerm(laneXor(*d, *a), &rot16Perm)
	*c = laneFBlaMka(*c, *d)
	*b = laneRotr63(laneXor(*b, *c))
}

// diagonalizeLanes rotates the B, C and D vector pairs so that the second
// quarter-round pass mixes the grid diagonals. The B and D pairs shift by
// 8 bytes across vector boundaries (in opposite directions); the C pair
// swaps whole vectors.
//
// Vector layout within v: A0, A1, B0, B1, C0, C1, D0, D1.
func diagonalizeLanes(v *[8]vlane) {
	b0 := lanePerm2(v[2], v[3], &alignr8Perm)
	b1 := lanePerm2(v[3], v[2], &alignr8Perm)
	v[2], v[3] = b0, b1

	v[4], v[5] = v[5], v[4]

	d0 := lanePerm2(v[6], v[7], &alignr8Perm)
	d1 := lanePerm2(v[7], v[6], &alignr8Perm)
	v[6], v[7] = d1, d0
}

// undiagonalizeLanes applies the inverse permutation, restoring the
// original lane positions.
func undiagonalizeLanes(v *[8]vlane) {
	b0 := lanePerm2(v[3], v[2], &alignr8Perm)
	b1 := lanePerm2(v[2], v[3], &alignr8Perm)
	v[2], v[3] = b0, b1

	v[4], v[5] = v[5], v[4]

	d0 := lanePerm2(v[7], v[6], &alignr8Perm)
	d1 := lanePerm2(v[6], v[7], &alignr8Perm)
	v[6], v[7] = d1, d0
}

// blamkaRoundLanes runs one full BlaMka round over eight vectors carrying
// two parallel quadruples: quarter-rounds in home position, diagonalize,
// quarter-rounds again, undiagonalize.
func blamkaRoundLanes(v *[8]vlane) {
	g1Lanes(&v[0], &v[2], &v[4], &v[6])
	g1Lanes(&v[1], &v[3], &v[5], &v[7])
	g2Lanes(&v[0], &v[2], &v[4], &v[6])
	g2Lanes(&v[1], &v[3], &v[5], &v[7])

	diagonalizeLanes(v)

	g1Lanes(&v[0], &v[2], &v[4], &v[6])
	g1Lanes(&v[1], &v[3], &v[5], &v[7])
	g2Lanes(&v[0], &v[2], &v[4], &v[6])
	g2Lanes(&v[1], &v[3], &v[5], &v[7])

	undiagonalizeLanes(v)
}

// permuteBlockLanes applies the permutation network using the lane
// formulation: 8 row rounds then 8 column rounds, bit-identical to
// permuteBlockGeneric.
func permuteBlockLanes(b *Block) {
	var v [8]vlane

	for row := 0; row < 8; row++ {
		for j := 0; j < 8; j++ {
			v[j] = loadLane(b, row*16+2*j)
		}
		blamkaRoundLanes(&v)
		for j := 0; j < 8; j++ {
			storeLane(b, row*16+2*j, v[j])
		}
	}

	for col := 0; col < 8; col++ {
		for j := 0; j < 8; j++ {
			v[j] = loadLane(b, 16*j+2*col)
		}
		blamkaRoundLanes(&v)
		for j := 0; j < 8; j++ {
			storeLane(b, 16*j+2*col, v[j])
		}
	}
}
