// Package pool provides pooled byte buffers for building FIT container
// files in memory.
//
// A FIT file must be fully buffered before it can be finalized: the header
// length field and the checksum trailer are only known once every message
// has been emitted. ByteBuffer therefore supports append-only writes plus
// in-place patching of previously written bytes via Slice.
package pool

import (
	"io"
	"sync"
)

const (
	// FrameBufferDefaultSize is the initial capacity of buffers from the
	// pool. Health-data FIT files are small; 4KiB covers typical syncs
	// without reallocation.
	FrameBufferDefaultSize = 1024 * 4

	// FrameBufferMaxThreshold is the largest buffer the pool retains.
	// Larger buffers are dropped to avoid memory bloat after encoding an
	// unusually long measurement history.
	FrameBufferMaxThreshold = 1024 * 256
)

// ByteBuffer is an appendable, patchable byte sequence.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// AppendByte appends a single byte to the buffer.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.B = append(bb.B, b)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns the written bytes from start to end. The returned slice
// aliases the buffer, so writing through it patches the buffer in place;
// this is how the header length field is backfilled during finalize.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > len(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// Snapshot returns a copy of the buffer contents. The copy is detached from
// the buffer and remains valid after the buffer is reset or pooled.
func (bb *ByteBuffer) Snapshot() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. The pool can be configured with a maximum
// size threshold to avoid retaining overly large buffers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && bb.Cap() > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var frameDefaultPool = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)

// GetFrameBuffer retrieves a ByteBuffer from the default frame pool.
func GetFrameBuffer() *ByteBuffer {
	return frameDefaultPool.Get()
}

// PutFrameBuffer returns a ByteBuffer to the default frame pool.
func PutFrameBuffer(bb *ByteBuffer) {
	frameDefaultPool.Put(bb)
}
