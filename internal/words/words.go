// Package words provides operations on slices of 32-bit words used by the bit-sliced difference bases.
package words

import "math/bits"

// XOR XORs src into dst. Both slices must have the same length.
func XOR(dst, src []uint32) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// OrStride returns the bitwise OR of the n words of row starting at offset and spaced stride words apart.
func OrStride(row []uint32, offset, stride, n int) uint32 {
	var x uint32
	for i := range n {
		x |= row[offset+i*stride]
	}
	return x
}

// Equal reports whether a and b hold the same words.
func Equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	var d uint32
	for i := range a {
		d |= a[i] ^ b[i]
	}
	return d == 0
}

// OnesCount returns the Hamming weight of x.
func OnesCount(x uint32) int {
	return bits.OnesCount32(x)
}
