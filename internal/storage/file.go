package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileStore 每个键一个文件的存储（JSON 快照目录）
// FileStore keeps one file per key under a state directory.
type FileStore struct {
	baseDir  string
	stateDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, fmt.Errorf("storage base dir is empty")
	}
	m := &FileStore{
		baseDir:  baseDir,
		stateDir: filepath.Join(baseDir, "state"),
	}
	for _, dir := range []string{m.baseDir, m.stateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return m, nil
}

func (m *FileStore) Get(key string) (string, error) {
	data, err := os.ReadFile(m.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes through a temp file and rename so a crash never leaves a torn value.
func (m *FileStore) Set(key, value string) error {
	path := m.pathFor(key)
	tmp, err := os.CreateTemp(m.stateDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (m *FileStore) Remove(key string) error {
	if err := os.Remove(m.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (m *FileStore) Close() error { return nil }

func (m *FileStore) pathFor(key string) string {
	return filepath.Join(m.stateDir, url.PathEscape(key)+".json")
}
