package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Open 按后端名称创建存储
// Open creates the Store named by backend. dbFile is relative to baseDir
// unless absolute and only used by the sqlite backend.
func Open(backend, baseDir, dbFile string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		path := strings.TrimSpace(dbFile)
		if path == "" {
			path = "qrscan.db"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return NewSQLiteStore(path)
	case BackendFile:
		return NewFileStore(baseDir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
