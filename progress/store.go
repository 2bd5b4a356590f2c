package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const (
	// ProgressFile is the name of the JSON file holding the snapshot.
	ProgressFile = "progress.json"

	lockFile = "progress.lock"
)

// Store persists a single progress snapshot in a state directory.
// Update serializes writers through an exclusive file lock.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the path of the progress file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, ProgressFile)
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, lockFile)
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (s *Store) Load() (Progress, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("read progress file: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("unmarshal progress: %w", err)
	}
	return p, nil
}

// Save writes the snapshot atomically. Writing identical content is a no-op.
func (s *Store) Save(p Progress) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(s.Path()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read progress file: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, ProgressFile+".tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp progress file: %w", err)
	}

	if err := os.Rename(name, s.Path()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename progress file: %w", err)
	}
	return nil
}

// Update loads the snapshot, applies fn and saves the result while holding
// the store lock. The saved snapshot is returned.
func (s *Store) Update(fn func(p Progress) (Progress, error)) (Progress, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return Progress{}, fmt.Errorf("create state dir: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return Progress{}, fmt.Errorf("open lock file: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		return Progress{}, fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	current, err := s.Load()
	if err != nil {
		return Progress{}, err
	}

	next, err := fn(current)
	if err != nil {
		return Progress{}, err
	}

	if err := s.Save(next); err != nil {
		return Progress{}, err
	}
	return next, nil
}
