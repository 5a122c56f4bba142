// Package compress provides the compression codecs used for archived
// measurement dumps.
//
// A sync run can write the fetched measurements to a JSON archive for
// later inspection; the archive is optionally compressed through one of
// the codecs here. The FIT payload itself is never compressed, since the
// upload sink consumes it as-is.
package compress

import "fmt"

// Type identifies a compression codec.
type Type uint8

const (
	TypeNone Type = 0x1 // no compression
	TypeZstd Type = 0x2 // Zstandard
	TypeS2   Type = 0x3 // S2 (Snappy-compatible)
	TypeLZ4  Type = 0x4 // LZ4 block format
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension suffix for archives written with this
// codec, empty for TypeNone.
func (t Type) Ext() string {
	switch t {
	case TypeZstd:
		return ".zst"
	case TypeS2:
		return ".s2"
	case TypeLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseType parses a codec name as used on the command line. The empty
// string means no compression.
func ParseType(name string) (Type, error) {
	switch name {
	case "", "none":
		return TypeNone, nil
	case "zstd":
		return TypeZstd, nil
	case "s2":
		return TypeS2, nil
	case "lz4":
		return TypeLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// Compressor compresses a complete archive payload.
//
// The returned slice is newly allocated and owned by the caller (except
// for the no-op codec, which returns its input); the input slice is not
// modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously compressed with the same
// codec. It returns an error if the data is corrupted or was compressed
// with an incompatible format.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
