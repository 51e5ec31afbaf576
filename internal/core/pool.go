package core

import (
	"sync"
)

// segmentScratch holds the per-segment working buffers: the 1024-byte
// state accumulator carried across consecutive fillBlock calls, and the
// address/input blocks of the data-independent address stream. Each
// instance is exclusively owned by one FillSegment invocation.
type segmentScratch struct {
	state   Block
	address Block
	input   Block
}

// Scratch blocks are pooled to keep concurrent segment fills from
// allocating 3 KB per invocation.
var scratchPool = sync.Pool{
	New: func() interface{} {
		return new(segmentScratch)
	},
}

func getScratch() *segmentScratch {
	return scratchPool.Get().(*segmentScratch)
}

func putScratch(s *segmentScratch) {
	if s != nil {
		scratchPool.Put(s)
	}
}
