package fit

import (
	"fmt"
	"time"

	"github.com/openhealth/fitsync/endian"
	"github.com/openhealth/fitsync/errs"
	"github.com/openhealth/fitsync/internal/pool"
)

// Encoder builds one FIT container file in memory.
//
// The file is assembled as header, message stream, checksum trailer. The
// header's data_size field and the trailer are only known once every
// message has been emitted, so the whole file is buffered and patched in
// place during Finish; streaming to a non-seekable sink is not supported.
//
// Note: the Encoder is NOT thread-safe. Each instance must be used by a
// single goroutine at a time.
//
// Note: the Encoder is NOT reusable. After calling Finish, a new encoder
// must be created for the next file; further writes fail with
// ErrEncoderFinalized.
type Encoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	now    func() time.Time

	// bound maps each local slot to its field layout. Binding is
	// append-only: once a slot is bound its layout is immutable for the
	// remainder of the file, and a repeat bind is a no-op so that
	// write-measurement calls stay idempotent about definitions.
	bound [MaxLocalSlots][]FieldDef

	finalized bool
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithTimeFunc overrides the clock used to derive the file creation
// timestamp in WriteFileID. Intended for tests.
func WithTimeFunc(now func() time.Time) Option {
	return func(e *Encoder) {
		e.now = now
	}
}

// NewEncoder creates an Encoder for a single output file and writes the
// file header. The data_size field of the header is backfilled by Finish.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		buf:    pool.GetFrameBuffer(),
		engine: endian.GetLittleEndianEngine(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf.MustWrite(NewFileHeader().Bytes())

	return e
}

// Len returns the number of bytes written so far, header included.
func (e *Encoder) Len() int {
	if e.finalized {
		return 0
	}

	return e.buf.Len()
}

func (e *Encoder) appendUint16(v uint16) {
	e.buf.B = e.engine.AppendUint16(e.buf.B, v)
}

func (e *Encoder) appendUint32(v uint32) {
	e.buf.B = e.engine.AppendUint32(e.buf.B, v)
}

// writeDefinition emits a definition message binding slot to the given
// global message number and field layout. A repeat call for an
// already-bound slot is a no-op.
func (e *Encoder) writeDefinition(slot uint8, globalNum uint16, fields []FieldDef) error {
	if e.finalized {
		return errs.ErrEncoderFinalized
	}

	if slot >= MaxLocalSlots {
		return fmt.Errorf("%w: %d", errs.ErrInvalidLocalSlot, slot)
	}

	if e.bound[slot] != nil {
		return nil
	}

	// Validate widths up front so a bad layout never reaches the buffer.
	for _, f := range fields {
		if _, err := sentinelFor(f.Width); err != nil {
			return err
		}
	}

	e.buf.AppendByte(definitionFlag | (slot & slotMask))
	e.buf.MustWrite([]byte{0, 0}) // reserved, always zero in this subset
	e.appendUint16(globalNum)
	e.buf.AppendByte(uint8(len(fields)))

	for _, f := range fields {
		e.buf.MustWrite([]byte{f.Num, f.Width, byte(f.Type)})
	}

	e.bound[slot] = fields

	return nil
}

// writeData emits a data message for a previously bound slot, packing one
// value per field in the bound definition's order and width. Absent
// optional values pack as the width's sentinel; present values that exceed
// their declared width fail with ErrValueOverflow rather than wrap.
func (e *Encoder) writeData(slot uint8, values []fieldValue) error {
	if e.finalized {
		return errs.ErrEncoderFinalized
	}

	if slot >= MaxLocalSlots {
		return fmt.Errorf("%w: %d", errs.ErrInvalidLocalSlot, slot)
	}

	fields := e.bound[slot]
	if fields == nil {
		return fmt.Errorf("%w: slot %d", errs.ErrUnboundSlot, slot)
	}

	if len(values) != len(fields) {
		return fmt.Errorf("%w: got %d values for %d fields", errs.ErrFieldCountMismatch, len(values), len(fields))
	}

	// Validate every value before touching the buffer so a failed write
	// never leaves a partial message behind.
	for i, f := range fields {
		maxVal, err := sentinelFor(f.Width)
		if err != nil {
			return err
		}

		if values[i].set && values[i].val > maxVal {
			return fmt.Errorf("%w: field %d value %d exceeds %d-byte width", errs.ErrValueOverflow, f.Num, values[i].val, f.Width)
		}
	}

	e.buf.AppendByte(slot & slotMask)

	for i, f := range fields {
		packed := values[i].val
		if !values[i].set {
			packed, _ = sentinelFor(f.Width)
		}

		switch f.Width {
		case 1:
			e.buf.AppendByte(byte(packed))
		case 2:
			e.appendUint16(uint16(packed))
		case 4:
			e.appendUint32(uint32(packed))
		}
	}

	return nil
}

// Finish finalizes the file: it backfills the header's data_size field,
// computes the checksum over every byte written so far and appends the
// 2-byte trailer. It returns the complete immutable file contents.
//
// Finish is the terminal operation of an Encoder; calling it twice fails
// with ErrEncoderFinalized.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finalized {
		return nil, errs.ErrEncoderFinalized
	}
	e.finalized = true

	dataSize := uint32(e.buf.Len() - HeaderSize)
	e.engine.PutUint32(e.buf.Slice(dataSizeOffset, dataSizeOffset+4), dataSize)

	crc := Checksum(e.buf.Bytes())
	e.appendUint16(crc)

	out := e.buf.Snapshot()
	pool.PutFrameBuffer(e.buf)
	e.buf = nil

	return out, nil
}
