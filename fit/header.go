package fit

import (
	"github.com/openhealth/fitsync/endian"
	"github.com/openhealth/fitsync/errs"
)

const (
	// HeaderSize is the fixed size of the file header in bytes.
	HeaderSize = 12
	// TrailerSize is the size of the checksum trailer in bytes.
	TrailerSize = 2

	// ProtocolVersion is the FIT protocol version written to byte 1.
	ProtocolVersion = 16
	// ProfileVersion is the FIT profile version written to bytes 2-3.
	ProfileVersion = 108

	// dataSizeOffset is the byte offset of the data_size field within the
	// header. It is backfilled during Finish once the payload length is
	// known.
	dataSizeOffset = 4
)

// dataTypeTag is the 4-byte type tag at bytes 8-11 of the header.
var dataTypeTag = [4]byte{'.', 'F', 'I', 'T'}

// FileHeader represents the fixed 12-byte header at the start of a FIT
// container file.
type FileHeader struct {
	Size     uint8  // byte 0: header length, always HeaderSize
	Protocol uint8  // byte 1: protocol version
	Profile  uint16 // bytes 2-3: profile version
	// DataSize is the number of payload bytes between the end of the
	// header and the start of the checksum trailer. It is zero until the
	// file is finalized.
	DataSize uint32 // bytes 4-7
	// bytes 8-11 carry the ".FIT" type tag
}

// NewFileHeader creates a FileHeader with the current protocol and profile
// versions. DataSize is backfilled by the encoder during Finish.
func NewFileHeader() FileHeader {
	return FileHeader{
		Size:     HeaderSize,
		Protocol: ProtocolVersion,
		Profile:  ProfileVersion,
	}
}

// Bytes serializes the header into its fixed 12-byte little-endian layout.
func (h FileHeader) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, HeaderSize)
	b = append(b, h.Size, h.Protocol)
	b = engine.AppendUint16(b, h.Profile)
	b = engine.AppendUint32(b, h.DataSize)
	b = append(b, dataTypeTag[:]...)

	return b
}

// ParseFileHeader parses a FileHeader from the start of data.
//
// Returns ErrInvalidHeaderSize if data is shorter than 12 bytes, or
// ErrInvalidTypeTag if the type tag is not ".FIT".
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, errs.ErrInvalidHeaderSize
	}

	if [4]byte(data[8:12]) != dataTypeTag {
		return FileHeader{}, errs.ErrInvalidTypeTag
	}

	engine := endian.GetLittleEndianEngine()

	return FileHeader{
		Size:     data[0],
		Protocol: data[1],
		Profile:  engine.Uint16(data[2:4]),
		DataSize: engine.Uint32(data[4:8]),
	}, nil
}
