package core

const (
	// SyncPoints is the number of segments (slices) per lane per pass.
	// Slice boundaries are synchronization barriers across lanes.
	SyncPoints = 4

	// AddressesInBlock is the number of pseudo-random draws served by one
	// address block under data-independent addressing before the block
	// must be regenerated.
	AddressesInBlock = QWordsInBlock
)

// Position identifies where in the memory matrix the filler currently
// operates:
//   - Pass: which iteration over memory (0 to passes-1)
//   - Lane: which parallel lane (0 to lanes-1)
//   - Slice: which segment within the pass (0 to SyncPoints-1)
//   - Index: which block within the segment
type Position struct {
	Pass  uint32
	Lane  uint32
	Slice uint32
	Index uint32
}

// indexAlpha computes the reference block index within the target lane.
//
// The pseudo-random value comes either from the previously written block
// (data-dependent) or from the address stream (data-independent); this
// function only maps it into the window of blocks that are legal to
// reference from the current position.
//
// Algorithm per RFC 9106 section 3.4.1.2:
//  1. Determine the reference area size: how many blocks are addressable
//     given the pass, slice, index and whether the reference lane is the
//     current lane. Cross-lane references may only target blocks finished
//     in earlier slices; same-lane references may additionally target
//     blocks already written in the current segment. The block written
//     immediately before the current one is always excluded.
//  2. Map pseudoRand to a relative position with the quadratic
//     distribution x^2/2^32, inverted so that recent blocks are favored.
//  3. Offset by the start position (on later passes the window begins
//     after the current segment, wrapping over the lane end).
//
// Returns the block index within the reference lane.
func indexAlpha(pos *Position, pseudoRand uint32, segmentLength, laneLength uint32, sameLane bool) uint32 {
	var referenceAreaSize uint32

	if pos.Pass == 0 {
		if pos.Slice == 0 {
			// First slice of first pass: blocks before the previous one
			// in this segment.
			referenceAreaSize = pos.Index - 1
		} else if sameLane {
			// All finished slices plus the blocks written so far in this
			// segment, minus the immediately previous block.
			referenceAreaSize = pos.Slice*segmentLength + pos.Index - 1
		} else {
			// Other lanes: finished slices only.
			referenceAreaSize = pos.Slice * segmentLength
			if pos.Index == 0 {
				referenceAreaSize--
			}
		}
	} else {
		// Later passes: the whole lane except the current segment.
		if sameLane {
			referenceAreaSize = laneLength - segmentLength + pos.Index - 1
		} else {
			referenceAreaSize = laneLength - segmentLength
			if pos.Index == 0 {
				referenceAreaSize--
			}
		}
	}

	// Quadratic distribution favoring recent blocks:
	// relative = size - 1 - size * (rand^2 / 2^32) / 2^32
	relativePosition := uint64(pseudoRand)
	relativePosition = relativePosition * relativePosition >> 32
	relativePosition = uint64(referenceAreaSize) - 1 -
		(uint64(referenceAreaSize)*relativePosition)>>32

	// On later passes the oldest addressable block is the start of the
	// next slice (the window wraps around the lane end); on the first
	// pass, and in the last slice of later passes, it is the lane start.
	var startPosition uint32
	if pos.Pass != 0 && pos.Slice != SyncPoints-1 {
		startPosition = (pos.Slice + 1) * segmentLength
	}

	return (startPosition + uint32(relativePosition)) % laneLength
}
