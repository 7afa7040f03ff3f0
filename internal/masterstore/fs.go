package masterstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"quizsorter/internal/fileutil"
)

// BackupExt is appended to the previous master when backups are enabled.
const BackupExt = ".bak"

// FSStore keeps one CSV file per key under a root directory.
type FSStore struct {
	root       string
	keepBackup bool
}

// NewFS returns a filesystem store rooted at dir, creating it if needed.
func NewFS(dir string, keepBackup bool) (*FSStore, error) {
	if dir == "" {
		return nil, errors.New("master directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create master directory: %w", err)
	}
	return &FSStore{root: dir, keepBackup: keepBackup}, nil
}

// Root returns the directory holding master files.
func (s *FSStore) Root() string { return s.root }

// Path returns the file path for key.
func (s *FSStore) Path(key string) string {
	return filepath.Join(s.root, key+FileExt)
}

func (s *FSStore) Driver() Driver { return DriverFilesystem }

func (s *FSStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read master: %w", err)
	}
	return data, nil
}

// Save writes data atomically. When backups are enabled the previous file is
// copied to <key>.csv.bak first.
func (s *FSStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	path := s.Path(key)
	if s.keepBackup {
		if _, err := os.Stat(path); err == nil {
			if err := fileutil.CopyFile(path, path+BackupExt); err != nil {
				return fmt.Errorf("backup master: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat master: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save master: %w", err)
	}
	return nil
}

func (s *FSStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list masters: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := keyFromName(entry.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
