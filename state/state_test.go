package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Equal(t, int64(0), s.LastSync)
	require.False(t, s.IsUploaded(42))
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestState_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")

	s := &State{}
	s.SetLastSync(time.Unix(1700000000, 0))
	s.MarkUploaded(111)
	s.MarkUploaded(222)
	s.MarkUploaded(111) // duplicate, must not double-count

	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), loaded.LastSync)
	require.Len(t, loaded.Uploaded, 2)
	require.True(t, loaded.IsUploaded(111))
	require.True(t, loaded.IsUploaded(222))
	require.False(t, loaded.IsUploaded(333))
}

func TestState_LastSyncTime(t *testing.T) {
	s := &State{}

	fallback := s.LastSyncTime(24 * time.Hour)
	require.WithinDuration(t, time.Now().Add(-24*time.Hour), fallback, time.Minute)

	s.SetLastSync(time.Unix(1700000000, 0))
	require.Equal(t, time.Unix(1700000000, 0), s.LastSyncTime(24*time.Hour))
}
