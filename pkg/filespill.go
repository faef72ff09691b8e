// Package pkg provides utilities shared by streamlens commands.
package pkg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileSpill is an append-only, on-disk sequence of items of type T.
// Items are stored as consecutive CBOR data items.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

var spillEncMode cbor.EncMode

func init() {
	var err error

	spillEncMode, err = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic("filespill: CBOR encoder initialization failed: " + err.Error())
	}
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	length  uint64
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return fmt.Errorf("filespill %s is closed", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++
	slog.Debug("appended item", "path", f.path, "index", f.length-1)

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// AppendBatch implements FileSpill.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file != nil {
		if err := f.file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
			return err
		}

		f.file = nil
		slog.Debug("closed filespill", "path", f.path, "length", f.length)
	}

	return nil
}

// Get implements FileSpill.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	var found T

	if index >= f.Len() {
		slog.Warn("get index out of bounds", "path", f.path, "index", index, "length", f.Len())
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}

	errFound := errors.New("found")

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errFound
		}

		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		var zero T
		return zero, err
	}

	slog.Debug("got item", "path", f.path, "index", index)

	return found, nil
}

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := cbor.NewDecoder(file)

	for i := range f.length {
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			slog.Debug("range stopped by callback", "path", f.path, "index", i, "error", err)
			return err
		}
	}

	slog.Debug("range completed", "path", f.path, "count", f.length)

	return nil
}

// NewFileSpill creates a new FileSpill in dir. The file name is
// pattern with its last "*" replaced by a random string, as in os.CreateTemp.
func NewFileSpill[T any](dir, pattern string) (FileSpill[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: spillEncMode.NewEncoder(file),
	}, nil
}

// OpenFileSpill opens an existing spill for reading and appending. A
// truncated trailing item is ignored, so a spill cut short by a crash
// still opens.
func OpenFileSpill[T any](path string) (FileSpill[T], error) {
	clean := filepath.Clean(path)

	reader, err := os.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill: %w", err)
	}

	var length uint64

	decoder := cbor.NewDecoder(reader)

	for {
		var item T

		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			slog.Warn("stopping at undecodable item", "path", clean, "index", length, "error", err)
			break
		}

		length++
	}

	if err := reader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close spill: %w", err)
	}

	file, err := os.OpenFile(clean, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill for append: %w", err)
	}

	slog.Debug("opened filespill", "path", clean, "length", length)

	return &fileSpillImpl[T]{
		path:    clean,
		file:    file,
		encoder: spillEncMode.NewEncoder(file),
		length:  length,
	}, nil
}
