package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qrscan/internal/content"
)

// InitProjectConfigScaffold 在当前工作目录下初始化项目级配置模板（./.qrscan/config.json）。
// InitProjectConfigScaffold writes the default config to ./.qrscan/config.json
// unless one already exists. It returns the path.
func InitProjectConfigScaffold(projectDir string) (string, error) {
	dir := filepath.Join(strings.TrimSpace(projectDir), ".qrscan")
	path := filepath.Join(dir, "config.json")

	// 若项目已经有配置，则尊重用户现有配置。
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("project config path is a directory: %s", path)
		}
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat project config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir .qrscan: %w", err)
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write project config: %w", err)
	}
	return path, nil
}

// WriteExpectedType 将 scanner.expected_type 写入项目配置；目录不存在则创建
// WriteExpectedType stores scanner.expected_type in ./.qrscan/config.json,
// keeping every other key in the file.
func WriteExpectedType(projectDir string, t content.ContentType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown content type %q", t)
	}
	dir := filepath.Join(strings.TrimSpace(projectDir), ".qrscan")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir .qrscan: %w", err)
	}
	path := filepath.Join(dir, "config.json")
	var out map[string]any
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(stripJSONComments(data), &out); err != nil {
			out = nil
		}
	}
	if out == nil {
		out = make(map[string]any)
	}
	scannerMap, _ := out["scanner"].(map[string]any)
	if scannerMap == nil {
		scannerMap = make(map[string]any)
	}
	scannerMap["expected_type"] = string(t)
	out["scanner"] = scannerMap
	data, err = json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project config: %w", err)
	}
	return nil
}
