// Package testdata provides deterministic pseudorandom inputs for tests and fuzz corpora.
package testdata

import (
	"crypto/sha3"
	"encoding/binary"
)

// DRBG is a SHAKE128-based deterministic random bit generator. It is not safe for concurrent use.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a DRBG keyed with the given label.
func New(label string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(label))
	return &DRBG{h: h}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}

// Uint64 returns the next 8 bytes of output as a little-endian integer. With it, a DRBG satisfies
// math/rand/v2.Source.
func (d *DRBG) Uint64() uint64 {
	var b [8]byte
	_, _ = d.h.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
