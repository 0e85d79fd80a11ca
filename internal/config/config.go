package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"qrscan/internal/content"
	"qrscan/internal/storage"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ScannerConfig struct {
	IntervalMS   int    `json:"interval_ms" yaml:"interval_ms"`
	ExpectedType string `json:"expected_type" yaml:"expected_type"`
	HistoryLimit int    `json:"history_limit" yaml:"history_limit"`
	Torch        bool   `json:"torch" yaml:"torch"`
	// Device is a file or FIFO a hardware scanner writes payloads to, one per
	// line. Empty means payloads come from stdin or the input line.
	Device string `json:"device" yaml:"device"`
}

type StorageConfig struct {
	BaseDir      string `json:"base_dir" yaml:"base_dir"`
	Backend      string `json:"backend" yaml:"backend"`
	DBFile       string `json:"db_file" yaml:"db_file"`
	HistoryKey   string `json:"history_key" yaml:"history_key"`
	ImportLegacy string `json:"import_legacy" yaml:"import_legacy"`
}

type UIConfig struct {
	Mode   string `json:"mode" yaml:"mode"`
	Locale string `json:"locale" yaml:"locale"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

type Config struct {
	Scanner ScannerConfig `json:"scanner" yaml:"scanner"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

type fileScannerConfig struct {
	IntervalMS   *int    `json:"interval_ms" yaml:"interval_ms"`
	ExpectedType *string `json:"expected_type" yaml:"expected_type"`
	HistoryLimit *int    `json:"history_limit" yaml:"history_limit"`
	Torch        *bool   `json:"torch" yaml:"torch"`
	Device       *string `json:"device" yaml:"device"`
}

type fileConfig struct {
	Scanner *fileScannerConfig `json:"scanner" yaml:"scanner"`
	Storage *StorageConfig     `json:"storage" yaml:"storage"`
	UI      *UIConfig          `json:"ui" yaml:"ui"`
	Log     *LogConfig         `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Scanner: ScannerConfig{
			IntervalMS:   DefaultScannerIntervalMS,
			ExpectedType: string(content.Text),
			HistoryLimit: DefaultHistoryLimit,
		},
		Storage: StorageConfig{
			BaseDir:    DefaultBaseDir,
			Backend:    storage.BackendSQLite,
			DBFile:     DefaultDBFile,
			HistoryKey: DefaultHistoryKey,
		},
		UI: UIConfig{
			Mode: UIModeAuto,
		},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogFile,
		},
	}
}

// ExpectedContentType returns the configured expected type; normalize has
// already validated it.
func (c Config) ExpectedContentType() content.ContentType {
	t, err := content.Parse(c.Scanner.ExpectedType)
	if err != nil {
		return content.Text
	}
	return t
}

// Load 按优先级合并配置：默认值 < 全局文件 < 项目文件 < .env < 环境变量
// Load merges defaults, the global file, the project file (or path), .env and
// the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("QRSCAN_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	// .env 不覆盖已有环境变量 / .env never overrides the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".qrscan", "config.json"),
		filepath.Join(home, ".qrscan", "config.yaml"),
	}
}

func findProjectConfigPath() string {
	candidates := []string{
		"qrscan.config.json",
		"qrscan.yaml",
		".qrscan/config.json",
		".qrscan/config.yaml",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return fmt.Errorf("parse config %q: %w", resolved, err)
		}
	default:
		cleaned := stripJSONComments(data)
		if len(bytes.TrimSpace(cleaned)) == 0 {
			return nil
		}
		if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
			return fmt.Errorf("parse config %q: %w", resolved, err)
		}
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.Scanner != nil {
		if fc.Scanner.IntervalMS != nil {
			cfg.Scanner.IntervalMS = *fc.Scanner.IntervalMS
		}
		if fc.Scanner.ExpectedType != nil {
			cfg.Scanner.ExpectedType = *fc.Scanner.ExpectedType
		}
		if fc.Scanner.HistoryLimit != nil {
			cfg.Scanner.HistoryLimit = *fc.Scanner.HistoryLimit
		}
		if fc.Scanner.Torch != nil {
			cfg.Scanner.Torch = *fc.Scanner.Torch
		}
		if fc.Scanner.Device != nil {
			cfg.Scanner.Device = strings.TrimSpace(*fc.Scanner.Device)
		}
	}
	if fc.Storage != nil {
		cfg.Storage = mergeStorage(cfg.Storage, *fc.Storage)
	}
	if fc.UI != nil {
		if strings.TrimSpace(fc.UI.Mode) != "" {
			cfg.UI.Mode = fc.UI.Mode
		}
		if strings.TrimSpace(fc.UI.Locale) != "" {
			cfg.UI.Locale = fc.UI.Locale
		}
	}
	if fc.Log != nil {
		if strings.TrimSpace(fc.Log.Level) != "" {
			cfg.Log.Level = fc.Log.Level
		}
		if strings.TrimSpace(fc.Log.File) != "" {
			cfg.Log.File = fc.Log.File
		}
	}
}

func mergeStorage(base StorageConfig, override StorageConfig) StorageConfig {
	if strings.TrimSpace(override.BaseDir) != "" {
		base.BaseDir = override.BaseDir
	}
	if strings.TrimSpace(override.Backend) != "" {
		base.Backend = override.Backend
	}
	if strings.TrimSpace(override.DBFile) != "" {
		base.DBFile = override.DBFile
	}
	if strings.TrimSpace(override.HistoryKey) != "" {
		base.HistoryKey = override.HistoryKey
	}
	if strings.TrimSpace(override.ImportLegacy) != "" {
		base.ImportLegacy = override.ImportLegacy
	}
	return base
}

func normalize(cfg *Config) error {
	if cfg.Scanner.IntervalMS < 0 {
		cfg.Scanner.IntervalMS = 0
	}
	if cfg.Scanner.HistoryLimit <= 0 || cfg.Scanner.HistoryLimit > DefaultHistoryLimit {
		cfg.Scanner.HistoryLimit = DefaultHistoryLimit
	}
	t, err := content.Parse(cfg.Scanner.ExpectedType)
	if err != nil {
		return fmt.Errorf("scanner.expected_type: %w", err)
	}
	cfg.Scanner.ExpectedType = string(t)

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case "":
		cfg.Storage.Backend = storage.BackendSQLite
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", cfg.Storage.Backend)
	}
	if strings.TrimSpace(cfg.Storage.BaseDir) == "" {
		cfg.Storage.BaseDir = DefaultBaseDir
	}
	baseDir, err := expandPath(cfg.Storage.BaseDir)
	if err != nil {
		return fmt.Errorf("storage.base_dir: %w", err)
	}
	cfg.Storage.BaseDir = baseDir
	if strings.TrimSpace(cfg.Storage.HistoryKey) == "" {
		cfg.Storage.HistoryKey = DefaultHistoryKey
	}
	if strings.TrimSpace(cfg.Storage.ImportLegacy) != "" {
		legacy, err := expandPath(cfg.Storage.ImportLegacy)
		if err != nil {
			return fmt.Errorf("storage.import_legacy: %w", err)
		}
		cfg.Storage.ImportLegacy = legacy
	}

	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	switch cfg.UI.Mode {
	case "":
		cfg.UI.Mode = UIModeAuto
	case UIModeAuto, UIModeTUI, UIModeLine:
	default:
		return fmt.Errorf("ui.mode: unknown mode %q", cfg.UI.Mode)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = DefaultLogFile
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("QRSCAN_EXPECTED_TYPE")); v != "" {
		cfg.Scanner.ExpectedType = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_INTERVAL_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid QRSCAN_INTERVAL_MS: %q", v)
		}
		cfg.Scanner.IntervalMS = n
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_DEVICE")); v != "" {
		cfg.Scanner.Device = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_BASE_DIR")); v != "" {
		cfg.Storage.BaseDir = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_BACKEND")); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_UI_MODE")); v != "" {
		cfg.UI.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("QRSCAN_LANG")); v != "" {
		cfg.UI.Locale = v
	}

	return cfg, normalize(&cfg)
}

// HistoryPath returns the readline history file for line mode.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Storage.BaseDir, "repl.history")
}

// LogPath returns the log file path, relative paths resolved against the base dir.
func (c Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Storage.BaseDir, c.Log.File)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
