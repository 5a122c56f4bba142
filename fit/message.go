package fit

import (
	"fmt"

	"github.com/openhealth/fitsync/errs"
)

// BaseType is the numeric tag describing a field's primitive encoding in a
// definition message.
type BaseType uint8

// Base type codes used by the supported message kinds.
const (
	BaseEnum    BaseType = 0x00
	BaseUint8   BaseType = 0x02
	BaseUint16  BaseType = 0x84
	BaseUint32  BaseType = 0x86
	BaseUint32z BaseType = 0x8C
)

// Message header byte layout: bit 6 set marks a definition message, bits
// 0-5 carry the local slot. Data messages use the same slot bits with bit
// 6 clear.
const (
	definitionFlag = 0x40
	slotMask       = 0x3F

	// MaxLocalSlots is the number of local slots a single file can bind.
	MaxLocalSlots = 64
)

// FieldDef describes one field of a definition message: its field number,
// width in bytes and base type code.
type FieldDef struct {
	Num   uint8
	Width uint8
	Type  BaseType
}

// sentinelFor returns the reserved "value absent" sentinel for the given
// field width, which is also the largest representable value.
func sentinelFor(width uint8) (uint64, error) {
	switch width {
	case 1:
		return 0xFF, nil
	case 2:
		return 0xFFFF, nil
	case 4:
		return 0xFFFFFFFF, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", errs.ErrInvalidFieldWidth, width)
	}
}

// fieldValue is a single value of a data message. Absent optional values
// carry set=false and pack as the sentinel of their declared width; the
// message is never shortened structurally.
type fieldValue struct {
	val uint64
	set bool
}

// newValue returns a present field value.
func newValue(v uint64) fieldValue {
	return fieldValue{val: v, set: true}
}

// unsetValue returns an absent field value.
func unsetValue() fieldValue {
	return fieldValue{}
}

// scaledValue converts an optional decimal quantity into a field value,
// multiplying by scale and truncating to an integer. A nil pointer packs
// as the sentinel. Negative quantities cannot be represented in an
// unsigned field; they map above every field maximum so the width check
// rejects them with ErrValueOverflow.
func scaledValue(p *float64, scale float64) fieldValue {
	if p == nil {
		return unsetValue()
	}

	scaled := *p * scale
	if scaled < 0 {
		return fieldValue{val: 1 << 63, set: true}
	}

	return newValue(uint64(scaled))
}

// intValue converts an optional integer into a field value. Negative
// values map above every field maximum, same as scaledValue.
func intValue(p *int) fieldValue {
	if p == nil {
		return unsetValue()
	}

	if *p < 0 {
		return fieldValue{val: 1 << 63, set: true}
	}

	return newValue(uint64(*p))
}
