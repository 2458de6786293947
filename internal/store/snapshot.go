package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lol-overlay/internal/config"
	"lol-overlay/internal/domain"

	"github.com/rs/zerolog"
)

// SnapshotStore persists the stats document the overlay reads. Writes go
// to a temp file in the same directory followed by a rename, so a reader
// always sees a complete document.
type SnapshotStore struct {
	path   string
	logger zerolog.Logger
}

func NewSnapshotStore(cfg *config.Config, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{path: cfg.StatsFile, logger: logger}
}

func (s *SnapshotStore) Path() string {
	return s.path
}

func (s *SnapshotStore) Write(snapshot *domain.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("snapshot written")
	return nil
}

// Load reads the current snapshot, if any. A missing file is not an
// error; the first successful cycle will create it.
func (s *SnapshotStore) Load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}
