// Package fitsync converts health measurements into FIT container files
// and synchronizes them from a measurement source to an upload sink.
//
// The package wires three concerns together:
//
//   - the fit package encodes measurements into the binary FIT format
//   - a Source (e.g. the withings package) yields timestamped measurement
//     groups for a date range
//   - a Sink (e.g. the garmin package) accepts the finished FIT payload
//
// # Basic Usage
//
//	measurements, err := source.Measurements(ctx, from, to)
//	if err != nil {
//	    return err
//	}
//	data, err := fitsync.Encode(measurements)
//	if err != nil {
//	    return err
//	}
//	err = sink.Upload(ctx, "withings_sync.fit", data)
//
// The Syncer type bundles the full fetch → dedup → encode → upload flow
// with sync-state tracking; the fitsync command drives it.
package fitsync

import (
	"github.com/openhealth/fitsync/fit"
)

// Encode converts measurement groups into one complete FIT file: an
// identification message first, then per group a device descriptor
// followed by the measurement messages the group carries. Groups without
// any encodable reading still produce a device descriptor, matching the
// sink's expectations for scale files.
func Encode(measurements []Measurement, opts ...fit.Option) ([]byte, error) {
	enc := fit.NewEncoder(opts...)

	if err := enc.WriteFileID(); err != nil {
		return nil, err
	}

	for _, m := range measurements {
		if err := enc.WriteDeviceInfo(m.Timestamp); err != nil {
			return nil, err
		}

		if m.HasWeight() {
			reading := fit.WeightReading{
				Weight:     m.Weight,
				FatPercent: m.FatRatio,
				MuscleMass: m.MuscleMass,
				BoneMass:   m.BoneMass,
				Hydration:  m.Hydration,
			}
			if err := enc.WriteWeight(m.Timestamp, reading); err != nil {
				return nil, err
			}
		}

		if m.HasBloodPressure() {
			reading := fit.BloodPressureReading{
				Systolic:  *m.SystolicBP,
				Diastolic: *m.DiastolicBP,
				HeartRate: m.HeartRate,
			}
			if err := enc.WriteBloodPressure(m.Timestamp, reading); err != nil {
				return nil, err
			}
		}
	}

	return enc.Finish()
}
