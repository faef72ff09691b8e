package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/pkg"
)

const (
	sessionPrefix  = "session-"
	sessionSuffix  = ".cbor"
	sessionPattern = sessionPrefix + "*" + sessionSuffix
)

// SessionStore creates and reopens event logs of admitted records.
type SessionStore interface {
	// NewSession starts an empty event log in dir.
	NewSession(dir m.Path) (pkg.FileSpill[m.Record], error)
	// OpenSession reopens an existing event log.
	OpenSession(path m.Path) (pkg.FileSpill[m.Record], error)
	// Sessions lists the event logs in dir, oldest first.
	Sessions(dir m.Path) ([]m.Path, error)
}

// LocalSessionStore keeps event logs as CBOR spill files on disk.
type LocalSessionStore struct{}

// NewSessionStore creates a LocalSessionStore.
func NewSessionStore() *LocalSessionStore {
	return &LocalSessionStore{}
}

// NewSession implements SessionStore.
func (s *LocalSessionStore) NewSession(dir m.Path) (pkg.FileSpill[m.Record], error) {
	return pkg.NewFileSpill[m.Record](string(dir), sessionPattern)
}

// OpenSession implements SessionStore.
func (s *LocalSessionStore) OpenSession(path m.Path) (pkg.FileSpill[m.Record], error) {
	return pkg.OpenFileSpill[m.Record](string(path))
}

// Sessions implements SessionStore. Sessions are ordered by modification
// time, then by name.
func (s *LocalSessionStore) Sessions(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}

	type session struct {
		path    m.Path
		modTime int64
	}

	var sessions []session

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, sessionPrefix) || !strings.HasSuffix(name, sessionSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat session %s: %w", name, err)
		}

		sessions = append(sessions, session{
			path:    m.Path(filepath.Join(string(dir), name)),
			modTime: info.ModTime().UnixNano(),
		})
	}

	slices.SortFunc(sessions, func(a, b session) int {
		if a.modTime != b.modTime {
			if a.modTime < b.modTime {
				return -1
			}

			return 1
		}

		return strings.Compare(string(a.path), string(b.path))
	})

	paths := make([]m.Path, 0, len(sessions))
	for _, s := range sessions {
		paths = append(paths, s.path)
	}

	return paths, nil
}
