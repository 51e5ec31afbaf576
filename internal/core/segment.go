package core

// nextAddresses advances the data-independent address stream: it
// increments the counter word of the input block and derives a fresh
// address block by running the compression function twice over it with a
// zeroed state.
//
// Each generated address block serves AddressesInBlock (128) draws.
func nextAddresses(addressBlock, inputBlock *Block) {
	var zero Block

	inputBlock[6]++

	fillBlock(&zero, inputBlock, addressBlock, false)
	zero.Zero()
	fillBlock(&zero, addressBlock, addressBlock, false)
}

// FillSegment writes one segment of the memory matrix: the
// segmentLength consecutive blocks of one (pass, lane, slice) tuple.
// It is the core's single entry point; the orchestrator invokes it once
// per segment, slice by slice, so that cross-lane references always
// target blocks completed in an earlier slice.
//
// Algorithm:
//  1. Decide the addressing mode. Argon2i is always data-independent;
//     Argon2id is data-independent for the first half of the first pass
//     (pass 0, slices 0 and 1) and data-dependent afterwards; Argon2d is
//     always data-dependent. The decision is positional and recomputed
//     on every call.
//  2. On the very first segment (pass 0, slice 0) start at index 2: the
//     first two blocks of each lane hold seed material written by the
//     orchestrator. Pre-generate the first address block if
//     data-independent.
//  3. Load the state accumulator from the block preceding the first
//     block to fill, wrapping to the lane's last block when filling
//     starts at the lane's first position.
//  4. For each index: draw a 64-bit pseudo-random value (address stream
//     or first word of the previous block), derive the reference lane
//     and index, and run the compression function. From the second pass
//     onward, format revision 0x13 XOR-accumulates into the existing
//     block instead of overwriting it.
//
// A nil instance is a deliberate silent no-op, preserving the behavior
// of the reference implementation's early-exit guard; the descriptor is
// validated before this code is ever reached.
func FillSegment(instance *Instance, position Position) {
	if instance == nil {
		return
	}

	dataIndependent := instance.Variant == VariantI ||
		(instance.Variant == VariantID && position.Pass == 0 && position.Slice < SyncPoints/2)

	scratch := getScratch()
	defer putScratch(scratch)

	addressBlock, inputBlock := &scratch.address, &scratch.input

	if dataIndependent {
		inputBlock.Zero()
		inputBlock[0] = uint64(position.Pass)
		inputBlock[1] = uint64(position.Lane)
		inputBlock[2] = uint64(position.Slice)
		inputBlock[3] = uint64(instance.MemoryBlocks)
		inputBlock[4] = uint64(instance.Passes)
		inputBlock[5] = uint64(instance.Variant)
	}

	startingIndex := uint32(0)

	if position.Pass == 0 && position.Slice == 0 {
		// Blocks 0 and 1 of every lane are seed blocks derived from H0.
		startingIndex = 2

		if dataIndependent {
			nextAddresses(addressBlock, inputBlock)
		}
	}

	currOffset := position.Lane*instance.LaneLength +
		position.Slice*instance.SegmentLength + startingIndex

	var prevOffset uint32
	if currOffset%instance.LaneLength == 0 {
		// Lane start: the previous block is the lane's last block.
		prevOffset = currOffset + instance.LaneLength - 1
	} else {
		prevOffset = currOffset - 1
	}

	state := &scratch.state
	state.Copy(&instance.Memory[prevOffset])

	for i := startingIndex; i < instance.SegmentLength; i, currOffset, prevOffset = i+1, currOffset+1, prevOffset+1 {
		if currOffset%instance.LaneLength == 1 {
			prevOffset = currOffset - 1
		}

		var pseudoRand uint64
		if dataIndependent {
			if i%AddressesInBlock == 0 {
				nextAddresses(addressBlock, inputBlock)
			}
			pseudoRand = addressBlock[i%AddressesInBlock]
		} else {
			pseudoRand = instance.Memory[prevOffset][0]
		}

		refLane := uint32(pseudoRand>>32) % instance.Lanes

		if position.Pass == 0 && position.Slice == 0 {
			// No other lane has produced blocks yet.
			refLane = position.Lane
		}

		position.Index = i
		refIndex := indexAlpha(&position, uint32(pseudoRand), instance.SegmentLength,
			instance.LaneLength, refLane == position.Lane)

		refBlock := &instance.Memory[instance.LaneLength*refLane+refIndex]
		currBlock := &instance.Memory[currOffset]

		withXOR := instance.Version != Version10 && position.Pass > 0
		fillBlock(state, refBlock, currBlock, withXOR)
	}
}
