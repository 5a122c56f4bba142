package fit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateCRC_ZeroByte(t *testing.T) {
	// Folding a zero byte into the zero state stays zero: every nibble
	// indexes table entry 0.
	require.Equal(t, uint16(0), UpdateCRC(0, 0x00))
}

func TestUpdateCRC_KnownVectors(t *testing.T) {
	// Reference values computed with the canonical nibble-table algorithm
	// (CRC-16/ARC over the same table).
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "single byte", data: []byte{0x01}, want: 0xC0C1},
		{name: "ascii digits", data: []byte("123456789"), want: 0xBB3D},
		{name: "all ones byte", data: []byte{0xFF}, want: 0x4040},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Checksum(tt.data))
		})
	}
}

func TestChecksum_Incremental(t *testing.T) {
	data := []byte{0x0C, 0x10, 0x6C, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}

	var crc uint16
	for _, b := range data {
		crc = UpdateCRC(crc, b)
	}

	require.Equal(t, Checksum(data), crc)
}

func TestChecksum_Empty(t *testing.T) {
	require.Equal(t, uint16(0), Checksum(nil))
}
