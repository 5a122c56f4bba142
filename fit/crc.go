package fit

// crcTable is the fixed 16-entry correction table of the FIT CRC-16.
// The table is part of the wire contract; any deviation breaks
// interoperability with consumers of the file.
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400,
	0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401,
	0x5000, 0x9C01, 0x8801, 0x4400,
}

// UpdateCRC folds one byte into the running 16-bit check value, processing
// the low nibble first and then the high nibble. The initial state is 0.
func UpdateCRC(crc uint16, b byte) uint16 {
	// low nibble
	tmp := crcTable[crc&0xF]
	crc = (crc >> 4) & 0x0FFF
	crc = crc ^ tmp ^ crcTable[b&0xF]

	// high nibble
	tmp = crcTable[crc&0xF]
	crc = (crc >> 4) & 0x0FFF
	crc = crc ^ tmp ^ crcTable[(b>>4)&0xF]

	return crc
}

// Checksum folds every byte of data through UpdateCRC starting from the
// zero state.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc = UpdateCRC(crc, b)
	}

	return crc
}
