package core

// Backend selection for the permutation network.
//
// The Mixing Core algorithm is written once against a backend that must
// provide, over a fixed lane width: lane-wise add, xor, low-32 widened
// multiply, constant-distance rotation, the forward and inverse
// diagonalization byte permutations, and unaligned lane load/store. Two
// portable backends satisfy the contract today:
//
//   - permuteBlockGeneric: word-indexed formulation (fastest in pure Go)
//   - permuteBlockLanes: byte-level lane formulation mirroring the
//     vectorized (SSE2/VSX) implementations
//
// Bit-exact output across backends is a strict requirement and is
// enforced by tests. An assembly backend would be selected here at init
// via CPU capability detection, the way the x/crypto argon2 ports switch
// on useSSE4/useAVX2; the function variable is the single substitution
// point.
var permuteBlock = permuteBlockGeneric
