// Package adapter contains infrastructure adapters for the streamlens CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer
// relies on when reading user sources, so workflows can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root. When recursive is false the implementation limits
	// itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// AbsPath returns the absolute, cleaned form of path.
	AbsPath(path m.Path) (m.Path, error)

	// SourceFiles expands Go-style path patterns ("./...", "./pkg", "main.go")
	// into the non-test .go files they name, sorted and de-duplicated.
	SourceFiles(patterns []m.Path) ([]m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || skippedDir(info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

func skippedDir(name string) bool {
	return name == "vendor" || name == "node_modules" || name == "testdata" ||
		(strings.HasPrefix(name, ".") && name != "." && name != "..") ||
		strings.HasPrefix(name, "_")
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(filepath.Clean(string(path)))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// AbsPath returns the absolute path of path.
func (a *LocalSourceFSAdapter) AbsPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// SourceFiles expands patterns into Go source files.
func (a *LocalSourceFSAdapter) SourceFiles(patterns []m.Path) ([]m.Path, error) {
	if len(patterns) == 0 {
		patterns = []m.Path{"./..."}
	}

	var files []m.Path

	for _, pattern := range patterns {
		root, recursive := splitPattern(string(pattern))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if isSourceFile(root) {
				files = append(files, m.Path(root))
			}

			continue
		}

		err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() && isSourceFile(path) {
				files = append(files, m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// splitPattern turns "./pkg/..." into ("./pkg", true).
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if root, ok := strings.CutSuffix(pattern, "/..."); ok {
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func isSourceFile(path string) bool {
	return filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go")
}
