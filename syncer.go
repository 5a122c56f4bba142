package fitsync

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhealth/fitsync/archive"
	"github.com/openhealth/fitsync/compress"
	"github.com/openhealth/fitsync/state"
)

// Source yields measurement groups for a date range.
type Source interface {
	Measurements(ctx context.Context, from, to time.Time) ([]Measurement, error)
}

// Sink accepts a completed FIT payload as an opaque file.
type Sink interface {
	Upload(ctx context.Context, filename string, data []byte) error
}

// DefaultLookback is how far back a run reaches when no explicit start
// date is given and no previous sync is recorded.
const DefaultLookback = 24 * time.Hour

// DefaultUploadName is the file name presented to the sink.
const DefaultUploadName = "withings_sync.fit"

// RunOptions controls a single sync run.
type RunOptions struct {
	// From and To bound the date range. A zero From falls back to the last
	// recorded sync time; a zero To means now.
	From time.Time
	To   time.Time

	// OutputFIT, when set, writes the encoded FIT file to this path.
	OutputFIT string

	// OutputJSON, when set, archives the fetched measurements as JSON to
	// this path, compressed with ArchiveCodec.
	OutputJSON   string
	ArchiveCodec compress.Type

	// UploadName is the file name presented to the sink; defaults to
	// DefaultUploadName.
	UploadName string
}

// Syncer drives one fetch → dedup → encode → upload pass. The sink is
// optional; without one a run only produces the requested file outputs.
type Syncer struct {
	source Source
	sink   Sink
	st     *state.State
	logger zerolog.Logger
}

// NewSyncer creates a Syncer. sink may be nil for offline runs; st must
// not be nil.
func NewSyncer(source Source, sink Sink, st *state.State, logger zerolog.Logger) *Syncer {
	return &Syncer{
		source: source,
		sink:   sink,
		st:     st,
		logger: logger,
	}
}

// Run executes one sync pass. It mutates the sync state (upload ledger and
// last-sync timestamp) but does not persist it; the caller saves the state
// after a successful run.
func (s *Syncer) Run(ctx context.Context, opts RunOptions) error {
	from := opts.From
	explicitFrom := !from.IsZero()
	if !explicitFrom {
		from = s.st.LastSyncTime(DefaultLookback)
	}

	to := opts.To
	if to.IsZero() {
		to = time.Now()
	}

	s.logger.Info().
		Time("from", from).
		Time("to", to).
		Msg("syncing measurements")

	measurements, err := s.source.Measurements(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetch measurements: %w", err)
	}

	if len(measurements) == 0 {
		s.logger.Info().Msg("no measurements found for the specified period")
		return nil
	}

	// Drop groups already uploaded in a previous run. Overlapping date
	// ranges are common with the last-sync fallback.
	fresh := measurements[:0:0]
	for _, m := range measurements {
		if s.st.IsUploaded(m.Fingerprint()) {
			continue
		}
		fresh = append(fresh, m)
	}

	s.logger.Info().
		Int("fetched", len(measurements)).
		Int("fresh", len(fresh)).
		Msg("measurements received")

	if opts.OutputJSON != "" {
		path, err := archive.Write(opts.OutputJSON, measurements, opts.ArchiveCodec)
		if err != nil {
			return err
		}
		s.logger.Info().Str("path", path).Int("count", len(measurements)).Msg("saved measurement archive")
	}

	if len(fresh) == 0 {
		s.logger.Info().Msg("all measurements already uploaded")
		return nil
	}

	var fitData []byte
	if opts.OutputFIT != "" || s.sink != nil {
		fitData, err = Encode(fresh)
		if err != nil {
			return fmt.Errorf("encode fit file: %w", err)
		}
	}

	if opts.OutputFIT != "" {
		if err := os.WriteFile(opts.OutputFIT, fitData, 0o644); err != nil {
			return fmt.Errorf("write fit file: %w", err)
		}
		s.logger.Info().Str("path", opts.OutputFIT).Int("bytes", len(fitData)).Msg("saved fit file")
	}

	if s.sink != nil {
		name := opts.UploadName
		if name == "" {
			name = DefaultUploadName
		}

		if err := s.sink.Upload(ctx, name, fitData); err != nil {
			return fmt.Errorf("upload: %w", err)
		}

		for _, m := range fresh {
			s.st.MarkUploaded(m.Fingerprint())
		}

		// Advance the sync clock only for automatic ranges; an explicit
		// backfill must not skip the window between then and now.
		if !explicitFrom {
			s.st.SetLastSync(to)
		}

		s.logger.Info().Int("count", len(fresh)).Msg("uploaded to sink")
	}

	return nil
}
