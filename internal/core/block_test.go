package core

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// TestBlockConstants verifies the size relationships the whole engine
// relies on.
func TestBlockConstants(t *testing.T) {
	if BlockSize != 1024 {
		t.Errorf("BlockSize = %d, want 1024", BlockSize)
	}
	if QWordsInBlock != 128 {
		t.Errorf("QWordsInBlock = %d, want 128", QWordsInBlock)
	}
	if BlockSize != QWordsInBlock*8 {
		t.Error("BlockSize and QWordsInBlock are inconsistent")
	}
}

// TestBlockXOR verifies element-wise XOR semantics.
func TestBlockXOR(t *testing.T) {
	a := testRandBlock(1)
	b := testRandBlock(2)
	orig := a

	a.XOR(&b)
	for i := range a {
		if a[i] != orig[i]^b[i] {
			t.Fatalf("word %d: got %#x, want %#x", i, a[i], orig[i]^b[i])
		}
	}

	// XOR with itself clears the block.
	a.XOR(&a)
	if a != (Block{}) {
		t.Error("self-XOR did not zero the block")
	}
}

// TestBlockCopyZero verifies Copy duplicates and Zero clears.
func TestBlockCopyZero(t *testing.T) {
	src := testRandBlock(3)

	var dst Block
	dst.Copy(&src)
	if dst != src {
		t.Error("Copy did not duplicate the block")
	}

	// Copy is a snapshot, not a reference.
	src[0] ^= 0xFF
	if dst[0] == src[0] {
		t.Error("Copy aliases the source block")
	}

	dst.Zero()
	if dst != (Block{}) {
		t.Error("Zero left non-zero words")
	}
}

// TestBlockSerializationRoundTrip verifies ToBytes/FromBytes preserve
// content exactly.
func TestBlockSerializationRoundTrip(t *testing.T) {
	b := testRandBlock(4)

	var decoded Block
	if err := decoded.FromBytes(b.ToBytes()); err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if decoded != b {
		t.Error("serialization round trip lost data")
	}
}

// TestBlockLittleEndianLayout pins the wire format: word i occupies
// bytes [8i, 8i+8) in little-endian order, regardless of backend.
func TestBlockLittleEndianLayout(t *testing.T) {
	var b Block
	b[0] = 0x0123456789ABCDEF
	b[127] = 0x1122334455667788

	data := b.ToBytes()

	if !bytes.Equal(data[0:8], []byte{0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}) {
		t.Errorf("word 0 bytes = %x, not little-endian", data[0:8])
	}
	if got := binary.LittleEndian.Uint64(data[127*8:]); got != b[127] {
		t.Errorf("word 127 decoded as %#x, want %#x", got, b[127])
	}
}

// TestBlockFromBytesSizeCheck verifies the length guard.
func TestBlockFromBytesSizeCheck(t *testing.T) {
	var b Block

	tests := []struct {
		name string
		size int
	}{
		{name: "empty", size: 0},
		{name: "short", size: 1023},
		{name: "long", size: 1025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.FromBytes(make([]byte, tt.size))
			if err == nil {
				t.Fatalf("FromBytes accepted %d bytes", tt.size)
			}
			if _, ok := err.(*InvalidBlockSizeError); !ok {
				t.Errorf("error type %T, want *InvalidBlockSizeError", err)
			}
		})
	}
}
