// Package hash computes stable 64-bit identifiers for measurement groups.
//
// The sync ledger keys uploaded measurements by fingerprint so that
// overlapping date ranges do not re-upload the same readings.
package hash

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint folds a measurement's timestamp and values into a stable
// 64-bit identifier. Optional values are folded as an explicit
// present/absent marker so that "weight only" and "weight plus zero fat"
// fingerprint differently.
type Fingerprint struct {
	digest *xxhash.Digest
}

// NewFingerprint creates a fingerprint seeded with the measurement's unix
// timestamp.
func NewFingerprint(unixTS int64) *Fingerprint {
	fp := &Fingerprint{digest: xxhash.New()}
	fp.writeUint64(uint64(unixTS))

	return fp
}

func (fp *Fingerprint) writeUint64(v uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = fp.digest.Write(buf[:])
}

// AddFloat folds an optional float value into the fingerprint.
func (fp *Fingerprint) AddFloat(v *float64) *Fingerprint {
	if v == nil {
		fp.writeUint64(0)
		return fp
	}

	fp.writeUint64(1)
	fp.writeUint64(math.Float64bits(*v))

	return fp
}

// AddInt folds an optional integer value into the fingerprint.
func (fp *Fingerprint) AddInt(v *int) *Fingerprint {
	if v == nil {
		fp.writeUint64(0)
		return fp
	}

	fp.writeUint64(1)
	fp.writeUint64(uint64(*v))

	return fp
}

// Sum returns the 64-bit fingerprint.
func (fp *Fingerprint) Sum() uint64 {
	return fp.digest.Sum64()
}
