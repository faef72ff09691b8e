package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// ProbeStore persists registered probe points between sessions.
type ProbeStore interface {
	LoadProbes(path m.Path) ([]m.Location, error)
	SaveProbes(path m.Path, points []m.Location) error
}

// probeFile is the on-disk layout of the probe store.
type probeFile struct {
	Version int          `yaml:"version"`
	Probes  []m.Location `yaml:"probes"`
}

const probeFileVersion = 1

// YAMLProbeStore keeps probe points in a YAML file.
type YAMLProbeStore struct{}

// NewProbeStore creates a YAMLProbeStore.
func NewProbeStore() *YAMLProbeStore {
	return &YAMLProbeStore{}
}

// LoadProbes reads the probe points stored at path. A missing file yields
// no points.
func (s *YAMLProbeStore) LoadProbes(path m.Path) ([]m.Location, error) {
	data, err := os.ReadFile(filepath.Clean(string(path)))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("probe store not found", "path", path)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read probes: %w", err)
	}

	var file probeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse probes %s: %w", path, err)
	}

	if file.Version > probeFileVersion {
		return nil, fmt.Errorf("probes %s: unsupported version %d", path, file.Version)
	}

	for i, point := range file.Probes {
		if !point.Valid() {
			return nil, fmt.Errorf("probes %s: entry %d is not a valid location: %s", path, i, point)
		}
	}

	slog.Debug("loaded probes", "path", path, "count", len(file.Probes))

	return file.Probes, nil
}

// SaveProbes writes points to path, replacing its contents atomically.
func (s *YAMLProbeStore) SaveProbes(path m.Path, points []m.Location) error {
	if points == nil {
		points = []m.Location{}
	}

	data, err := yaml.Marshal(probeFile{Version: probeFileVersion, Probes: points})
	if err != nil {
		return fmt.Errorf("encode probes: %w", err)
	}

	target := filepath.Clean(string(path))
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create probe dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".probes-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp probes: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write probes: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close probes: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace probes: %w", err)
	}

	slog.Debug("saved probes", "path", path, "count", len(points))

	return nil
}
