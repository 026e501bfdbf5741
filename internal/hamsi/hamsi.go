// Package hamsi implements the linear diffusion layer L of the [Hamsi] hash function.
//
// The state is a 4x4 grid of 32-bit words stored row-major. L is applied to the four diagonals of the grid, and every
// operation in it (rotation, zero-filling left shift, XOR) is GF(2)-linear, so Diffuse(a^b) == Diffuse(a)^Diffuse(b).
//
// [Hamsi]: https://www.esat.kuleuven.be/cosic/publications/article-1203.pdf
package hamsi

import "math/bits"

const (
	// Words is the number of 32-bit words in the state.
	Words = 16

	// Bits is the width of the state in bits.
	Bits = Words * 32
)

// Mix applies L to a single line of four words.
func Mix(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a = bits.RotateLeft32(a, 13)
	c = bits.RotateLeft32(c, 3)
	b ^= a ^ c
	d ^= c ^ (a << 3)

	b = bits.RotateLeft32(b, 1)
	d = bits.RotateLeft32(d, 7)
	a ^= b ^ d
	c ^= d ^ (b << 7)

	a = bits.RotateLeft32(a, 5)
	c = bits.RotateLeft32(c, 22)

	return a, b, c, d
}

// Diffuse applies L in place to the diagonals of the state. Only the first Words words of state are read or written.
func Diffuse(state []uint32) {
	s := (*[Words]uint32)(state[:Words])

	// Line k is (row i, column (i+k) mod 4), i.e. grid positions at stride 5.
	s[0], s[5], s[10], s[15] = Mix(s[0], s[5], s[10], s[15])
	s[1], s[6], s[11], s[12] = Mix(s[1], s[6], s[11], s[12])
	s[2], s[7], s[8], s[13] = Mix(s[2], s[7], s[8], s[13])
	s[3], s[4], s[9], s[14] = Mix(s[3], s[4], s[9], s[14])
}

// Column returns the image of the unit vector with bit i of the state set, i.e. the i-th column of L's matrix.
func Column(i int) [Words]uint32 {
	var s [Words]uint32
	s[i/32] = 1 << (i % 32)
	Diffuse(s[:])
	return s
}
