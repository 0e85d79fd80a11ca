package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LegacyImportedSuffix names the marker slot recording that key has been
// through a legacy import. History clears never touch it.
const LegacyImportedSuffix = ".legacy-imported"

// ImportLegacySnapshot 将旧版 JSON 历史导出文件导入到存储槽（仅一次）
// ImportLegacySnapshot copies a legacy JSON history export into key, at most
// once per key. It reports whether anything was imported. A missing file is
// not an error. A slot that already holds data is kept and counts as
// imported.
func ImportLegacySnapshot(path, key string, kv KV) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, nil
	}

	marker := key + LegacyImportedSuffix
	if _, err := kv.Get(marker); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("read slot %q: %w", marker, err)
	}

	// 已有数据则只写标记 / Existing data wins, only record the marker
	if existing, err := kv.Get(key); err == nil && strings.TrimSpace(existing) != "" {
		return false, markImported(kv, marker)
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("read slot %q: %w", key, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read legacy snapshot: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return false, fmt.Errorf("parse legacy snapshot %s: %w", path, err)
	}
	if len(records) == 0 {
		return false, markImported(kv, marker)
	}

	compact, err := json.Marshal(records)
	if err != nil {
		return false, fmt.Errorf("encode legacy snapshot: %w", err)
	}
	if err := kv.Set(key, string(compact)); err != nil {
		return false, fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := markImported(kv, marker); err != nil {
		return true, err
	}
	return true, nil
}

func markImported(kv KV, marker string) error {
	if err := kv.Set(marker, nowUTC()); err != nil {
		return fmt.Errorf("write slot %q: %w", marker, err)
	}
	return nil
}
