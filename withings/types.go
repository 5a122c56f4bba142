package withings

import "math"

// MeasureType is a Withings API measure type code.
type MeasureType int

// Measure type codes returned by the measure API.
const (
	TypeWeight        MeasureType = 1  // kg
	TypeHeight        MeasureType = 4  // meter
	TypeFatFreeMass   MeasureType = 5  // kg
	TypeFatRatio      MeasureType = 6  // %
	TypeFatMassWeight MeasureType = 8  // kg
	TypeDiastolicBP   MeasureType = 9  // mmHg
	TypeSystolicBP    MeasureType = 10 // mmHg
	TypeHeartRate     MeasureType = 11 // bpm
	TypeTemperature   MeasureType = 12 // celsius
	TypeMuscleMass    MeasureType = 76 // kg
	TypeHydration     MeasureType = 77 // %
	TypeBoneMass      MeasureType = 88 // kg
)

// apiResponse is the envelope every Withings API call returns. A non-zero
// Status indicates an API-level failure even when HTTP succeeds.
type apiResponse struct {
	Status int         `json:"status"`
	Error  string      `json:"error,omitempty"`
	Body   measureBody `json:"body"`
}

type measureBody struct {
	MeasureGroups []measureGroup `json:"measuregrps"`
}

type measureGroup struct {
	GroupID  int64     `json:"grpid"`
	Attrib   int       `json:"attrib"`
	Date     int64     `json:"date"`
	Category int       `json:"category"`
	Measures []measure `json:"measures"`
}

// measure is one raw reading: the real value is value × 10^unit.
type measure struct {
	Value int64       `json:"value"`
	Type  MeasureType `json:"type"`
	Unit  int         `json:"unit"`
}

// realValue applies the unit exponent and rounds to two decimals, the
// precision the rest of the pipeline works in.
func (m measure) realValue() float64 {
	v := float64(m.Value) * math.Pow(10, float64(m.Unit))
	return math.Round(v*100) / 100
}
