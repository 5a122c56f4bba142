package fit

import "time"

// Global message numbers of the supported record kinds.
const (
	GlobalFileID        uint16 = 0
	GlobalDeviceInfo    uint16 = 23
	GlobalWeightScale   uint16 = 30
	GlobalBloodPressure uint16 = 51
)

// Each kind owns one fixed local slot. The slot is bound by the first
// write of that kind and reused by every later data message of the same
// kind within the file.
const (
	slotFileID        = 0
	slotDeviceInfo    = 1
	slotWeightScale   = 2
	slotBloodPressure = 3
)

const (
	// epochOffset is the number of seconds between the Unix epoch and the
	// FIT epoch (1989-12-31T00:00:00Z). FIT timestamps count seconds since
	// the FIT epoch.
	epochOffset = 631065600

	// weightFieldScale pre-scales weight-family decimal quantities before
	// packing: kilograms and percentages are stored as value*100.
	weightFieldScale = 100

	// FileTypeWeight is the file_id type value for weight files.
	FileTypeWeight = 9

	// manufacturerGarmin is the manufacturer value expected by the upload
	// sink.
	manufacturerGarmin = 1

	// deviceTypeScale is the antplus device type for a weight scale.
	deviceTypeScale = 119

	// deviceSoftwareVersion is the fixed software_version reported in
	// device_info messages.
	deviceSoftwareVersion = 100
)

// Fixed schemas of the message catalog. Field numbers, widths and base
// types are part of the wire contract.
var (
	fileIDFields = []FieldDef{
		{Num: 0, Width: 1, Type: BaseEnum},    // type
		{Num: 1, Width: 2, Type: BaseUint16},  // manufacturer
		{Num: 2, Width: 2, Type: BaseUint16},  // product
		{Num: 3, Width: 4, Type: BaseUint32z}, // serial_number
		{Num: 4, Width: 4, Type: BaseUint32},  // time_created
	}

	deviceInfoFields = []FieldDef{
		{Num: 253, Width: 4, Type: BaseUint32}, // timestamp
		{Num: 0, Width: 1, Type: BaseUint8},    // device_index
		{Num: 1, Width: 1, Type: BaseUint8},    // device_type
		{Num: 2, Width: 2, Type: BaseUint16},   // manufacturer
		{Num: 4, Width: 2, Type: BaseUint16},   // product
		{Num: 5, Width: 2, Type: BaseUint16},   // software_version
	}

	weightScaleFields = []FieldDef{
		{Num: 253, Width: 4, Type: BaseUint32}, // timestamp
		{Num: 0, Width: 2, Type: BaseUint16},   // weight, scale 100
		{Num: 1, Width: 2, Type: BaseUint16},   // percent_fat, scale 100
		{Num: 5, Width: 2, Type: BaseUint16},   // muscle_mass, scale 100
		{Num: 4, Width: 2, Type: BaseUint16},   // bone_mass, scale 100
		{Num: 2, Width: 2, Type: BaseUint16},   // percent_hydration, scale 100
	}

	bloodPressureFields = []FieldDef{
		{Num: 253, Width: 4, Type: BaseUint32}, // timestamp
		{Num: 0, Width: 2, Type: BaseUint16},   // systolic_pressure
		{Num: 1, Width: 2, Type: BaseUint16},   // diastolic_pressure
		{Num: 6, Width: 1, Type: BaseUint8},    // heart_rate
	}
)

// EncodeTimestamp converts t to seconds since the FIT epoch, truncated to
// an unsigned 32-bit value.
func EncodeTimestamp(t time.Time) uint32 {
	return uint32(t.Unix() - epochOffset)
}

// WeightReading carries one weight-scale measurement. Nil fields are
// absent and pack as the sentinel of their width. Weight is in kilograms,
// MuscleMass and BoneMass in kilograms, FatPercent and Hydration in
// percent; all are stored *100.
type WeightReading struct {
	Weight     *float64
	FatPercent *float64
	MuscleMass *float64
	BoneMass   *float64
	Hydration  *float64
}

// BloodPressureReading carries one blood-pressure measurement in mmHg.
// HeartRate is in bpm and optional.
type BloodPressureReading struct {
	Systolic  int
	Diastolic int
	HeartRate *int
}

// WriteFileID writes the identification message. It must be called exactly
// once per file, before any other message, and derives the creation
// timestamp from the encoder's clock.
func (e *Encoder) WriteFileID() error {
	if err := e.writeDefinition(slotFileID, GlobalFileID, fileIDFields); err != nil {
		return err
	}

	values := []fieldValue{
		newValue(FileTypeWeight),
		newValue(manufacturerGarmin),
		newValue(0), // product
		newValue(0), // serial_number
		newValue(uint64(EncodeTimestamp(e.now()))),
	}

	return e.writeData(slotFileID, values)
}

// WriteDeviceInfo writes a device descriptor message for a weight scale at
// the given timestamp.
func (e *Encoder) WriteDeviceInfo(ts time.Time) error {
	if err := e.writeDefinition(slotDeviceInfo, GlobalDeviceInfo, deviceInfoFields); err != nil {
		return err
	}

	values := []fieldValue{
		newValue(uint64(EncodeTimestamp(ts))),
		newValue(0), // device_index
		newValue(deviceTypeScale),
		newValue(manufacturerGarmin),
		newValue(0), // product
		newValue(deviceSoftwareVersion),
	}

	return e.writeData(slotDeviceInfo, values)
}

// WriteWeight writes a weight-scale reading. The definition message is
// emitted lazily on the first call; later calls reuse the bound slot.
func (e *Encoder) WriteWeight(ts time.Time, r WeightReading) error {
	if err := e.writeDefinition(slotWeightScale, GlobalWeightScale, weightScaleFields); err != nil {
		return err
	}

	values := []fieldValue{
		newValue(uint64(EncodeTimestamp(ts))),
		scaledValue(r.Weight, weightFieldScale),
		scaledValue(r.FatPercent, weightFieldScale),
		scaledValue(r.MuscleMass, weightFieldScale),
		scaledValue(r.BoneMass, weightFieldScale),
		scaledValue(r.Hydration, weightFieldScale),
	}

	return e.writeData(slotWeightScale, values)
}

// WriteBloodPressure writes a blood-pressure reading.
func (e *Encoder) WriteBloodPressure(ts time.Time, r BloodPressureReading) error {
	if err := e.writeDefinition(slotBloodPressure, GlobalBloodPressure, bloodPressureFields); err != nil {
		return err
	}

	systolic := r.Systolic
	diastolic := r.Diastolic

	values := []fieldValue{
		newValue(uint64(EncodeTimestamp(ts))),
		intValue(&systolic),
		intValue(&diastolic),
		intValue(r.HeartRate),
	}

	return e.writeData(slotBloodPressure, values)
}
