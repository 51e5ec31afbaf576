// Package argon2 provides a pure-Go implementation of the Argon2
// memory-hard key derivation function (RFC 9106), covering all three
// variants: Argon2d (data-dependent), Argon2i (data-independent) and
// Argon2id (hybrid), for format revisions 0x10 and 0x13.
//
// For interactive logins and general password hashing use Argon2id via
// Key or IDKey. Argon2d is faster and binds more tightly to memory
// bandwidth but leaks memory access patterns through side channels; use
// it only where the execution environment is trusted (e.g. server-side
// proof-of-work schemes).
//
// Example usage:
//
//	key, err := argon2.Params{
//	    Variant: argon2.VariantID,
//	    Time:    1,
//	    Memory:  64 * 1024, // 64 MB
//	    Threads: 4,
//	    KeyLen:  32,
//	}.Derive([]byte("password"), salt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// or, with the recommended defaults baked in:
//
//	key := argon2.Key([]byte("password"), salt, 1, 64*1024, 4, 32)
package argon2

import (
	"errors"

	"github.com/opd-ai/go-argon2/internal/core"
)

// Variant selects the addressing mode of the derivation.
type Variant = core.Variant

const (
	// VariantD is Argon2d: data-dependent addressing throughout.
	VariantD = core.VariantD

	// VariantI is Argon2i: data-independent addressing throughout.
	VariantI = core.VariantI

	// VariantID is Argon2id: data-independent addressing for the first
	// half of the first pass, data-dependent afterwards.
	VariantID = core.VariantID
)

// Format revisions. Version13 is current; Version10 is supported for
// verifying hashes produced by old deployments.
const (
	Version10 uint32 = core.Version10
	Version13 uint32 = core.Version13

	// Version is the revision used when Params.Version is left zero.
	Version = Version13
)

// Parameter bounds, following the reference implementation.
var (
	// ErrTimeTooSmall is returned when fewer than one pass is requested.
	ErrTimeTooSmall = errors.New("argon2: number of passes must be at least 1")

	// ErrMemoryTooSmall is returned when the memory parameter is below
	// 8 blocks per thread.
	ErrMemoryTooSmall = errors.New("argon2: memory must be at least 8 KiB per thread")

	// ErrNoThreads is returned when the parallelism degree is zero.
	ErrNoThreads = errors.New("argon2: parallelism degree must be at least 1")

	// ErrKeyTooShort is returned when fewer than 4 output bytes are
	// requested.
	ErrKeyTooShort = errors.New("argon2: key length must be at least 4 bytes")

	// ErrSaltTooShort is returned when the salt is shorter than 8 bytes.
	ErrSaltTooShort = errors.New("argon2: salt must be at least 8 bytes")

	// ErrUnknownVariant is returned for a variant other than Argon2d,
	// Argon2i or Argon2id.
	ErrUnknownVariant = errors.New("argon2: unknown variant")

	// ErrUnknownVersion is returned for a format revision other than
	// 0x10 or 0x13.
	ErrUnknownVersion = errors.New("argon2: unknown version")
)

// Params specifies an Argon2 derivation.
//
// Memory is in KiB (one memory block per KiB) and is rounded down to a
// multiple of 4*Threads. Increasing Memory is the preferred way to harden
// a deployment; increase Time only when more memory is not available.
type Params struct {
	// Variant selects Argon2d, Argon2i or Argon2id. The zero value is
	// VariantD to match the wire encoding; callers wanting the
	// recommended mode should set VariantID explicitly or use Key.
	Variant Variant

	// Version is the format revision, Version10 or Version13.
	// Zero means Version13.
	Version uint32

	// Time is the number of passes over memory. Minimum 1.
	Time uint32

	// Memory is the memory size in KiB. Minimum 8*Threads.
	Memory uint32

	// Threads is the parallelism degree: the number of lanes, each
	// fillable by its own goroutine. Minimum 1.
	Threads uint8

	// KeyLen is the derived key length in bytes. Minimum 4.
	KeyLen uint32
}

// Validate checks the parameter bounds. The filling engine assumes
// validated input, so every entry point calls this before touching the
// core.
func (p Params) Validate() error {
	if p.Variant > VariantID {
		return ErrUnknownVariant
	}
	if p.Version != 0 && p.Version != Version10 && p.Version != Version13 {
		return ErrUnknownVersion
	}
	if p.Time < 1 {
		return ErrTimeTooSmall
	}
	if p.Threads < 1 {
		return ErrNoThreads
	}
	if p.Memory < 8*uint32(p.Threads) {
		return ErrMemoryTooSmall
	}
	if p.KeyLen < 4 {
		return ErrKeyTooShort
	}
	return nil
}

// Derive derives a key of p.KeyLen bytes from the password and salt.
//
// The salt should be random, unique per password, and at least 8 bytes.
// The password may be empty.
func (p Params) Derive(password, salt []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(salt) < 8 {
		return nil, ErrSaltTooShort
	}

	version := p.Version
	if version == 0 {
		version = Version13
	}

	return core.Derive(password, salt, p.Time, p.Memory, uint32(p.Threads),
		p.KeyLen, p.Variant, version), nil
}

// Key derives a key from the password, salt, and cost parameters using
// Argon2id (the RFC 9106 recommended mode) at the current format
// revision. It panics if the parameters are out of range, mirroring the
// convenience APIs of the x/crypto hash packages.
//
// For example, a 32-byte key suitable for AES-256:
//
//	key := argon2.Key([]byte("password"), salt, 1, 64*1024, 4, 32)
//
// The time parameter is the number of passes over memory and the memory
// parameter is the size in KiB. Both should be increased as memory
// latency and CPU parallelism increase.
func Key(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(VariantID, password, salt, time, memory, threads, keyLen)
}

// DKey derives a key using Argon2d. Data-dependent addressing is the
// fastest and most memory-bandwidth-bound mode but is vulnerable to
// cache-timing side channels; do not use it for password hashing on
// shared hardware.
func DKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(VariantD, password, salt, time, memory, threads, keyLen)
}

// IKey derives a key using Argon2i. Data-independent addressing resists
// cache-timing side channels at some cost in memory-hardness; RFC 9106
// recommends at least 3 passes for Argon2i.
func IKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(VariantI, password, salt, time, memory, threads, keyLen)
}

// IDKey derives a key using Argon2id explicitly; identical to Key.
func IDKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return mustDerive(VariantID, password, salt, time, memory, threads, keyLen)
}

func mustDerive(variant Variant, password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	key, err := Params{
		Variant: variant,
		Time:    time,
		Memory:  memory,
		Threads: threads,
		KeyLen:  keyLen,
	}.Derive(password, salt)
	if err != nil {
		panic(err)
	}
	return key
}
