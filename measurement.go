package fitsync

import (
	"time"

	"github.com/openhealth/fitsync/internal/hash"
)

// Measurement is one timestamped measurement group from the source.
// Optional fields are nil when the source did not report them.
type Measurement struct {
	Timestamp time.Time `json:"timestamp"`

	Weight     *float64 `json:"weight,omitempty"`      // kg
	FatRatio   *float64 `json:"fat_ratio,omitempty"`   // %
	MuscleMass *float64 `json:"muscle_mass,omitempty"` // kg
	BoneMass   *float64 `json:"bone_mass,omitempty"`   // kg
	Hydration  *float64 `json:"hydration,omitempty"`   // %

	SystolicBP  *int `json:"systolic_bp,omitempty"`  // mmHg
	DiastolicBP *int `json:"diastolic_bp,omitempty"` // mmHg
	HeartRate   *int `json:"heart_rate,omitempty"`   // bpm
}

// HasWeight reports whether the group carries any weight-family reading.
// A group with only body composition values still yields a weight-scale
// message; the missing quantities pack as absent.
func (m Measurement) HasWeight() bool {
	return m.Weight != nil || m.FatRatio != nil || m.MuscleMass != nil ||
		m.BoneMass != nil || m.Hydration != nil
}

// HasBloodPressure reports whether the group carries a complete
// blood-pressure reading. Both pressures are required; heart rate is not.
func (m Measurement) HasBloodPressure() bool {
	return m.SystolicBP != nil && m.DiastolicBP != nil
}

// Fingerprint returns a stable 64-bit identifier for the measurement,
// used by the sync ledger to skip already-uploaded readings.
func (m Measurement) Fingerprint() uint64 {
	return hash.NewFingerprint(m.Timestamp.Unix()).
		AddFloat(m.Weight).
		AddFloat(m.FatRatio).
		AddFloat(m.MuscleMass).
		AddFloat(m.BoneMass).
		AddFloat(m.Hydration).
		AddInt(m.SystolicBP).
		AddInt(m.DiastolicBP).
		AddInt(m.HeartRate).
		Sum()
}
