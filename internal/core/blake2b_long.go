package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Blake2bLong is H', the variable-length hash used to seed the first two
// blocks of each lane and to produce the final tag. It extends Blake2b
// beyond its native 64-byte maximum.
//
// Algorithm from the Argon2 specification section 3.2:
//   - If outlen <= 64 bytes: return Blake2b(le32(outlen) || input, outlen)
//   - If outlen > 64 bytes:
//     1. V1 = Blake2b(le32(outlen) || input, 64)
//     2. result = V1[0:32]
//     3. While more than 64 bytes remain: Vi = Blake2b(Vi-1, 64),
//        append Vi[0:32]
//     4. Final block: Blake2b(Vi-1, remaining), appended whole
//
// Returns exactly outlen bytes; outlen 0 returns nil.
func Blake2bLong(input []byte, outlen uint32) []byte {
	if outlen == 0 {
		return nil
	}

	// The output length is prepended as a 4-byte little-endian value for
	// every output size.
	inputWithLen := make([]byte, 4+len(input))
	binary.LittleEndian.PutUint32(inputWithLen[0:4], outlen)
	copy(inputWithLen[4:], input)

	// Simple case: output fits in a single Blake2b hash.
	if outlen <= 64 {
		h, err := blake2b.New(int(outlen), nil)
		if err != nil {
			// Unreachable for output lengths 1-64.
			panic("blake2b.New failed with valid length: " + err.Error())
		}
		h.Write(inputWithLen)
		return h.Sum(nil)
	}

	// Extended output: chain Blake2b hashes, emitting 32 bytes per
	// 64-byte intermediate block, with the final block sized to the
	// remainder.
	output := make([]byte, outlen)

	h, _ := blake2b.New512(nil)
	h.Write(inputWithLen)
	v := h.Sum(nil)

	copied := copy(output, v[:32])

	for copied < int(outlen) {
		remaining := int(outlen) - copied

		var outSize, toCopy int
		if remaining > 64 {
			outSize = 64
			toCopy = 32
		} else {
			outSize = remaining
			toCopy = remaining
		}

		h2, _ := blake2b.New(outSize, nil)
		h2.Write(v)
		v = h2.Sum(nil)

		copy(output[copied:], v[:toCopy])
		copied += toCopy
	}

	return output
}
