// Package state persists sync progress between runs: the timestamp of the
// last successful upload and the fingerprints of measurements already
// uploaded, so overlapping date ranges do not duplicate data at the sink.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// State is the persisted sync state. The zero value is a valid empty
// state.
type State struct {
	// LastSync is the unix timestamp of the last successful upload, zero
	// when no sync has completed yet.
	LastSync int64 `json:"last_sync"`

	// Uploaded holds the fingerprints of measurements that have been
	// uploaded to the sink.
	Uploaded []uint64 `json:"uploaded,omitempty"`

	uploadedSet map[uint64]struct{}
}

// Load reads the state file at path. A missing file yields an empty state
// rather than an error; a corrupt file does not.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}

	s.uploadedSet = make(map[uint64]struct{}, len(s.Uploaded))
	for _, fp := range s.Uploaded {
		s.uploadedSet[fp] = struct{}{}
	}

	return &s, nil
}

// Save writes the state to path, creating parent directories as needed.
func (s *State) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// IsUploaded reports whether the fingerprint was marked in a previous run.
func (s *State) IsUploaded(fp uint64) bool {
	_, ok := s.uploadedSet[fp]
	return ok
}

// MarkUploaded records a fingerprint as uploaded.
func (s *State) MarkUploaded(fp uint64) {
	if s.uploadedSet == nil {
		s.uploadedSet = make(map[uint64]struct{})
	}

	if _, ok := s.uploadedSet[fp]; ok {
		return
	}

	s.uploadedSet[fp] = struct{}{}
	s.Uploaded = append(s.Uploaded, fp)
}

// LastSyncTime returns the last sync timestamp, or now minus fallback when
// no sync has completed yet.
func (s *State) LastSyncTime(fallback time.Duration) time.Time {
	if s.LastSync == 0 {
		return time.Now().Add(-fallback)
	}

	return time.Unix(s.LastSync, 0)
}

// SetLastSync records t as the last successful sync time.
func (s *State) SetLastSync(t time.Time) {
	s.LastSync = t.Unix()
}
