// Package pixbuf holds the per-pass pixel buffers captured during a
// hardware selection.
package pixbuf

import "github.com/gogpu/pick/idcodec"

// Slots is the fixed number of pass buffers a Store can hold.
const Slots = 11

// Store owns one raw and one processed RGB buffer per pass slot plus an
// optional depth plane, all sized to the capture rectangle.
//
// Raw buffers keep exactly what the renderer produced. Processed buffers
// start as a copy and may be rewritten in place by per-drawable
// post-processing; decoding always reads the processed copy.
type Store struct {
	width, height int

	raw       [Slots][]byte
	processed [Slots][]byte
	depth     []float32
}

// New creates an empty store for a width x height capture.
func New(width, height int) *Store {
	s := &Store{}
	s.Reset(width, height)
	return s
}

// Reset releases every buffer and resizes the store.
func (s *Store) Reset(width, height int) {
	s.Release()
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Width returns the capture width in pixels.
func (s *Store) Width() int { return s.width }

// Height returns the capture height in pixels.
func (s *Store) Height() int { return s.height }

// Len returns the number of pixels in one buffer.
func (s *Store) Len() int { return s.width * s.height }

// Save stores rgb as the raw buffer of slot and copies it into the
// processed buffer. rgb must hold 3*Len() bytes; it is retained, not copied.
// Out-of-range slots and wrongly sized buffers are ignored and reported
// with false.
func (s *Store) Save(slot int, rgb []byte) bool {
	if slot < 0 || slot >= Slots || len(rgb) != 3*s.Len() {
		return false
	}
	s.raw[slot] = rgb
	s.processed[slot] = append([]byte(nil), rgb...)
	return true
}

// SaveDepth stores a depth plane of Len() values.
func (s *Store) SaveDepth(depth []float32) bool {
	if len(depth) != s.Len() {
		return false
	}
	s.depth = depth
	return true
}

// Has reports whether slot holds a captured buffer.
func (s *Store) Has(slot int) bool {
	return slot >= 0 && slot < Slots && s.processed[slot] != nil
}

// Raw returns the raw buffer of slot or nil.
func (s *Store) Raw(slot int) []byte {
	if slot < 0 || slot >= Slots {
		return nil
	}
	return s.raw[slot]
}

// Processed returns the processed buffer of slot or nil.
func (s *Store) Processed(slot int) []byte {
	if slot < 0 || slot >= Slots {
		return nil
	}
	return s.processed[slot]
}

// Decode returns the identifier stored at (x, y) of the processed buffer.
// Coordinates are relative to the capture origin. Pixels outside the
// capture and absent buffers decode as 0 (background).
func (s *Store) Decode(x, y, slot int) uint32 {
	return s.decode(s.Processed(slot), x, y)
}

// DecodeRaw is Decode on the raw buffer.
func (s *Store) DecodeRaw(x, y, slot int) uint32 {
	return s.decode(s.Raw(slot), x, y)
}

func (s *Store) decode(buf []byte, x, y int) uint32 {
	if buf == nil || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0
	}
	return idcodec.DecodeAt(buf, (y*s.width+x)*3)
}

// RawAt decodes pixel index i (y*width+x) of the raw buffer of slot.
func (s *Store) RawAt(slot, i int) uint32 {
	buf := s.Raw(slot)
	if buf == nil || i < 0 || i >= s.Len() {
		return 0
	}
	return idcodec.DecodeAt(buf, i*3)
}

// SetProcessed overwrites pixel index i of the processed buffer of slot
// with the low 24 bits of value.
func (s *Store) SetProcessed(slot, i int, value uint64) bool {
	buf := s.Processed(slot)
	if buf == nil || i < 0 || i >= s.Len() {
		return false
	}
	buf[i*3], buf[i*3+1], buf[i*3+2] = idcodec.Encode(value)
	return true
}

// Depth returns the captured depth at (x, y).
func (s *Store) Depth(x, y int) (float32, bool) {
	if s.depth == nil || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, false
	}
	return s.depth[y*s.width+x], true
}

// HasDepth reports whether a depth plane was captured.
func (s *Store) HasDepth() bool { return s.depth != nil }

// Release frees every buffer. It is safe to call repeatedly.
func (s *Store) Release() {
	for i := range s.raw {
		s.raw[i] = nil
		s.processed[i] = nil
	}
	s.depth = nil
}
