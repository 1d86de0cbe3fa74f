// Package bytebuffer implements an append-only, random-access byte store
// used as the neutral carrier for serialized project blobs and WAV sample
// data throughout aup3tool. It is a direct port of
// _examples/original_source/src/Buffer.{h,cpp}'s deque-of-fixed-size-chunks
// design to idiomatic Go.
package bytebuffer

// segmentSize matches the original's BUFFER_SIZE: each chunk is 1 MiB.
const segmentSize = 1 << 20

// Buffer is a deque of fixed-size segments with a write cursor into the
// last segment. It never shrinks; Reset is the only way to release memory.
type Buffer struct {
	segments [][]byte
	lastUsed int // bytes used in the last segment
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Reset discards all segments, returning the Buffer to its empty state.
func (b *Buffer) Reset() {
	b.segments = nil
	b.lastUsed = 0
}

// Size returns the total number of bytes appended so far.
func (b *Buffer) Size() int {
	if len(b.segments) == 0 {
		return 0
	}
	return (len(b.segments)-1)*segmentSize + b.lastUsed
}

func (b *Buffer) ensureCapacity() {
	if len(b.segments) == 0 || b.lastUsed == segmentSize {
		b.segments = append(b.segments, make([]byte, segmentSize))
		b.lastUsed = 0
	}
}

// Append copies data onto the end of the buffer, spanning as many segments
// as required.
func (b *Buffer) Append(data []byte) {
	for len(data) > 0 {
		b.ensureCapacity()
		room := segmentSize - b.lastUsed
		n := len(data)
		if n > room {
			n = room
		}
		copy(b.segments[len(b.segments)-1][b.lastUsed:], data[:n])
		b.lastUsed += n
		data = data[n:]
	}
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.ensureCapacity()
	b.segments[len(b.segments)-1][b.lastUsed] = v
	b.lastUsed++
}

// Read copies up to len(dst) bytes starting at offset into dst, returning
// the number of bytes actually copied. A window extending past the end of
// the buffer is silently truncated rather than treated as an error.
func (b *Buffer) Read(dst []byte, offset int) int {
	size := b.Size()
	if offset < 0 || offset >= size {
		return 0
	}
	want := len(dst)
	if offset+want > size {
		want = size - offset
	}

	segIndex := offset / segmentSize
	segOffset := offset % segmentSize

	copied := 0
	for copied < want {
		seg := b.segments[segIndex]
		n := len(seg) - segOffset
		if n > want-copied {
			n = want - copied
		}
		copy(dst[copied:copied+n], seg[segOffset:segOffset+n])
		copied += n
		segIndex++
		segOffset = 0
	}
	return copied
}

// Linearize returns the buffer contents as a single contiguous slice.
func (b *Buffer) Linearize() []byte {
	size := b.Size()
	out := make([]byte, size)
	b.Read(out, 0)
	return out
}
