package storage

import "errors"

// ErrNotFound 键不存在
// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// KV 单槽键值接口（get/set/remove）
// KV is the slot-oriented key-value interface the history layer persists through.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store 持久化接口，支持多后端 (SQLite / 文件 / 内存)
// Store is a KV backend with a lifecycle.
type Store interface {
	KV

	// 生命周期 / Lifecycle
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)
