package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// ErrProbesLocked is returned when the probe store lock cannot be taken in time.
var ErrProbesLocked = errors.New("probe store is locked")

const (
	lockSuffix        = ".lock"
	lockRetryInterval = 10 * time.Millisecond
	lockTimeout       = 5 * time.Second
	// staleLockAge is how old a lock file must be before it is considered
	// abandoned by a crashed process.
	staleLockAge = 30 * time.Second
)

var processLocks sync.Map

// LockProbes takes the exclusive lock guarding read-modify-write cycles on
// the probe store at path. Goroutines serialize on an in-process mutex and
// processes on a lock file created next to the store. The returned
// function releases both.
func LockProbes(ctx context.Context, path m.Path) (func(), error) {
	target := filepath.Clean(string(path))

	value, _ := processLocks.LoadOrStore(target, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	lockPath := target + lockSuffix

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			mu.Unlock()
			return nil, fmt.Errorf("create probe dir: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(lockRetryInterval), 1)

	for {
		acquired, err := createLockFile(lockPath)
		if err != nil {
			mu.Unlock()
			return nil, err
		}

		if acquired {
			break
		}

		if removeStaleLock(lockPath) {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrProbesLocked, lockPath)
		}
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to remove probe lock", "path", lockPath, "error", err)
			}

			mu.Unlock()
		})
	}, nil
}

func createLockFile(lockPath string) (bool, error) {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("create probe lock: %w", err)
	}

	_, writeErr := f.WriteString(strconv.Itoa(os.Getpid()))

	if err := errors.Join(writeErr, f.Close()); err != nil {
		_ = os.Remove(lockPath)
		return false, fmt.Errorf("write probe lock: %w", err)
	}

	return true, nil
}

func removeStaleLock(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) < staleLockAge {
		return false
	}

	slog.Warn("removing stale probe lock", "path", lockPath, "age", time.Since(info.ModTime()))

	return os.Remove(lockPath) == nil
}
