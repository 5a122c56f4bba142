// Package endian provides byte order utilities for FIT binary encoding.
//
// The FIT container format is little-endian throughout, but the encoder
// takes its byte order through the EndianEngine interface so packing code
// stays uniform and testable. EndianEngine combines ByteOrder and
// AppendByteOrder from encoding/binary into a single interface; both
// binary.LittleEndian and binary.BigEndian satisfy it.
//
// Using the Append* methods avoids the temporary-buffer allocation of
// PutUint* followed by append, which matters on the encoder hot path.
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order of every integer in a FIT container file.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
