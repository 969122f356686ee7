// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package idcodec packs integer identifiers into 24-bit RGB colour values.
//
// A selection pass renders every fragment with a colour whose three 8-bit
// channels carry an identifier instead of a visible colour. Channel R holds
// the least significant byte, so a pixel (r, g, b) stores r | g<<8 | b<<16.
//
// Identifiers wider than 24 bits are split into 24-bit chunks that are
// rendered in separate passes and recombined with [Compose]. The split is a
// uniform 24/24/24: chunk k occupies bits [24k, 24k+24).
package idcodec

const (
	// ChunkBits is the number of identifier bits carried by one RGB pixel.
	ChunkBits = 24

	// Mask24 selects the low 24 bits of an identifier.
	Mask24 = 1<<ChunkBits - 1

	// Max24 is the number of distinct values a single chunk can carry.
	// Identifiers >= Max24 need a high chunk.
	Max24 = 1 << ChunkBits
)

// Encode returns the little-endian byte triple of the low 24 bits of id.
func Encode(id uint64) (r, g, b byte) {
	return byte(id), byte(id >> 8), byte(id >> 16)
}

// Color is Encode returning the triple as an array, the form renderers
// write into pixel buffers.
func Color(id uint64) [3]byte {
	r, g, b := Encode(id)
	return [3]byte{r, g, b}
}

// Decode is the inverse of Encode. The result is always < Max24.
func Decode(r, g, b byte) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

// DecodeAt decodes the pixel starting at offset in a packed RGB buffer.
// The caller guarantees offset+3 <= len(buf).
func DecodeAt(buf []byte, offset int) uint32 {
	return Decode(buf[offset], buf[offset+1], buf[offset+2])
}

// Compose concatenates three 24-bit chunks into one identifier:
//
//	id = (high24<<24 | mid24)<<24 | low24
//
// Callers pass 0 for absent chunks. Selection captures at most two chunks
// per quantity, so attribute ids are Compose(low, high, 0). Only the low 16
// bits of high24 survive in the uint64 result.
func Compose(low24, mid24, high24 uint32) uint64 {
	return (uint64(high24&Mask24)<<ChunkBits|uint64(mid24&Mask24))<<ChunkBits | uint64(low24&Mask24)
}

// Split returns the two low chunks of id. For id < 1<<48,
// Compose(Split(id)) == id with a zero third chunk.
func Split(id uint64) (low24, high24 uint32) {
	return uint32(id & Mask24), uint32((id >> ChunkBits) & Mask24)
}
