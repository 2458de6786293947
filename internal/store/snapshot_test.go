package store

import (
	"os"
	"path/filepath"
	"testing"

	"lol-overlay/internal/config"
	"lol-overlay/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{StatsFile: filepath.Join(dir, "stats.json")}
	return NewSnapshotStore(cfg, zerolog.Nop())
}

func TestWriteAndLoad(t *testing.T) {
	s := newTestStore(t)

	snapshot := &domain.Snapshot{
		PlayerName: "Piekasso#EUW",
		Level:      245,
		Ranked:     []domain.RankedEntry{{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Winrate: 60}},
		Matches:    []domain.MatchSummary{},
		Champions:  []domain.MasteryChamp{},
		LastUpdate: 1700000000,
	}

	require.NoError(t, s.Write(snapshot))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestWriteReplacesWholeFile(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(&domain.Snapshot{PlayerName: "Piekasso#EUW", LastUpdate: 1}))
	require.NoError(t, s.Write(&domain.Snapshot{PlayerName: "Piekasso#EUW", LastUpdate: 2}))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.LastUpdate)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(&domain.Snapshot{PlayerName: "Piekasso#EUW"}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stats.json", entries[0].Name())
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{StatsFile: filepath.Join(dir, "overlay", "stats.json")}
	s := NewSnapshotStore(cfg, zerolog.Nop())

	require.NoError(t, s.Write(&domain.Snapshot{PlayerName: "Piekasso#EUW"}))

	_, err := os.Stat(cfg.StatsFile)
	assert.NoError(t, err)
}
