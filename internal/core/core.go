package core

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Algorithm identifiers as they appear on the wire: in the H0 parameter
// block and in the address-stream input block.
const (
	// VariantD is Argon2d: data-dependent addressing throughout.
	VariantD Variant = 0

	// VariantI is Argon2i: data-independent addressing throughout.
	VariantI Variant = 1

	// VariantID is Argon2id: data-independent for the first half of the
	// first pass, data-dependent afterwards.
	VariantID Variant = 2
)

// Variant selects the addressing mode of a derivation.
type Variant uint32

// String returns the canonical lowercase name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantD:
		return "argon2d"
	case VariantI:
		return "argon2i"
	case VariantID:
		return "argon2id"
	default:
		return "argon2(" + itoa(int(v)) + ")"
	}
}

// Supported format revisions. They differ in the overwrite rule for
// passes after the first: revision 0x13 XOR-accumulates the new
// compression output into the existing block, revision 0x10 always
// overwrites.
const (
	Version10 uint32 = 0x10
	Version13 uint32 = 0x13
)

// Instance is the read-only description of one derivation plus the
// externally visible memory matrix. It is fixed for the lifetime of the
// derivation; only the Memory contents change, and only through
// FillSegment.
type Instance struct {
	// Memory is the block matrix, Lanes x LaneLength blocks indexed by
	// lane*LaneLength + position.
	Memory []Block

	Passes        uint32
	MemoryBlocks  uint32
	SegmentLength uint32
	LaneLength    uint32
	Lanes         uint32
	Variant       Variant
	Version       uint32
}

// NewInstance allocates the memory matrix for the given (already
// validated) parameters. The requested block count is clamped to the
// minimum of 8 blocks per lane and rounded down to a multiple of
// 4*lanes so that every slice holds the same number of blocks.
func NewInstance(memoryBlocks, passes, lanes uint32, variant Variant, version uint32) *Instance {
	if memoryBlocks < 2*SyncPoints*lanes {
		memoryBlocks = 2 * SyncPoints * lanes
	}
	memoryBlocks = memoryBlocks / (SyncPoints * lanes) * (SyncPoints * lanes)

	laneLength := memoryBlocks / lanes

	return &Instance{
		Memory:        make([]Block, memoryBlocks),
		Passes:        passes,
		MemoryBlocks:  memoryBlocks,
		SegmentLength: laneLength / SyncPoints,
		LaneLength:    laneLength,
		Lanes:         lanes,
		Variant:       variant,
		Version:       version,
	}
}

// FillMemory runs all passes over the memory matrix.
//
// Segments of different lanes within one slice are mutually independent
// and run on separate goroutines; the WaitGroup is the barrier that
// keeps slice N+1 from starting before every lane has finished slice N,
// since slice N+1 may reference blocks other lanes wrote during slice N.
// Within one lane, slices and passes are strictly sequential.
func (instance *Instance) FillMemory() {
	for pass := uint32(0); pass < instance.Passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < instance.Lanes; lane++ {
				wg.Add(1)
				go func(lane uint32) {
					defer wg.Done()
					FillSegment(instance, Position{Pass: pass, Lane: lane, Slice: slice})
				}(lane)
			}
			wg.Wait()
		}
	}
}

// initialHash computes H0, the 64-byte seed for the first two blocks of
// every lane.
//
// H0 = Blake2b-512(lanes, tagLength, memory, passes, version, variant,
// len(password), password, len(salt), salt, len(secret), secret,
// len(data), data), all integers encoded as little-endian uint32. The
// memory parameter is the requested block count, before clamping and
// rounding.
func initialHash(lanes, tagLength, memory, passes, version uint32, variant Variant,
	password, salt, secret, data []byte) [64]byte {

	var buf [4]byte
	input := make([]byte, 0, 10*4+len(password)+len(salt)+len(secret)+len(data))

	appendU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		input = append(input, buf[:]...)
	}

	appendU32(lanes)
	appendU32(tagLength)
	appendU32(memory)
	appendU32(passes)
	appendU32(version)
	appendU32(uint32(variant))

	appendU32(uint32(len(password)))
	input = append(input, password...)

	appendU32(uint32(len(salt)))
	input = append(input, salt...)

	appendU32(uint32(len(secret)))
	input = append(input, secret...)

	appendU32(uint32(len(data)))
	input = append(input, data...)

	return blake2b.Sum512(input)
}

// initializeMemory seeds the first two blocks of each lane from H0 using
// the variable-length hash H':
//
//	Block[lane][0] = H'(H0 || le32(0) || le32(lane), 1024)
//	Block[lane][1] = H'(H0 || le32(1) || le32(lane), 1024)
//
// The segment filler starts at index 2 on pass 0, slice 0 because these
// two positions are reserved for this seed material.
func (instance *Instance) initializeMemory(h0 [64]byte) {
	input := make([]byte, 72) // 64 + 4 + 4
	copy(input[0:64], h0[:])

	for lane := uint32(0); lane < instance.Lanes; lane++ {
		binary.LittleEndian.PutUint32(input[68:72], lane)

		// Blake2bLong(_, BlockSize) returns exactly BlockSize bytes, so
		// FromBytes cannot fail here.
		binary.LittleEndian.PutUint32(input[64:68], 0)
		_ = instance.Memory[lane*instance.LaneLength].FromBytes(Blake2bLong(input, BlockSize))

		binary.LittleEndian.PutUint32(input[64:68], 1)
		_ = instance.Memory[lane*instance.LaneLength+1].FromBytes(Blake2bLong(input, BlockSize))
	}
}

// finalizeHash XORs the last block of every lane together and hashes the
// result down to the requested tag length with H'.
func (instance *Instance) finalizeHash(tagLength uint32) []byte {
	var final Block
	final.Copy(&instance.Memory[instance.LaneLength-1])

	for lane := uint32(1); lane < instance.Lanes; lane++ {
		final.XOR(&instance.Memory[lane*instance.LaneLength+instance.LaneLength-1])
	}

	return Blake2bLong(final.ToBytes(), tagLength)
}

// Derive runs one complete derivation: H0, seed blocks, memory filling,
// finalization. Parameters are assumed validated by the caller; memoryKB
// is the requested number of 1 KB blocks.
func Derive(password, salt []byte, passes, memoryKB, lanes, tagLength uint32,
	variant Variant, version uint32) []byte {

	h0 := initialHash(lanes, tagLength, memoryKB, passes, version, variant,
		password, salt, nil, nil)

	instance := NewInstance(memoryKB, passes, lanes, variant, version)
	instance.initializeMemory(h0)
	instance.FillMemory()

	return instance.finalizeHash(tagLength)
}
