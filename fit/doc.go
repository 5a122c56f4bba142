// Package fit encodes health-data records into the FIT binary container
// format.
//
// A FIT file is a 12-byte header, a stream of definition and data
// messages, and a 2-byte CRC trailer. Every integer is little-endian.
// Definition messages bind a local slot to a field layout; data messages
// reference the slot and pack one fixed-width value per declared field,
// substituting a reserved sentinel (0xFF / 0xFFFF / 0xFFFFFFFF) for absent
// optional values instead of shortening the message.
//
// The package supports the four message kinds a weight-sync file needs:
// file identification, device descriptor, weight-scale reading and
// blood-pressure reading.
//
// # Basic Usage
//
//	enc := fit.NewEncoder()
//	if err := enc.WriteFileID(); err != nil {
//	    return err
//	}
//	if err := enc.WriteDeviceInfo(ts); err != nil {
//	    return err
//	}
//	weight := 70.5
//	if err := enc.WriteWeight(ts, fit.WeightReading{Weight: &weight}); err != nil {
//	    return err
//	}
//	data, err := enc.Finish()
//
// The byte layout, the CRC-16 algorithm and the sentinel convention are a
// wire contract with external consumers and must stay bit-exact.
package fit
