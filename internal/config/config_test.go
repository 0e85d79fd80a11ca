package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qrscan/internal/content"
)

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	work = t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	return home, work
}

func TestDefaults(t *testing.T) {
	home, _ := isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scanner.IntervalMS != 400 || cfg.Scanner.HistoryLimit != 20 {
		t.Fatalf("scanner=%+v", cfg.Scanner)
	}
	if cfg.ExpectedContentType() != content.Text {
		t.Fatalf("expected=%q", cfg.Scanner.ExpectedType)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.HistoryKey != "scan-history" {
		t.Fatalf("storage=%+v", cfg.Storage)
	}
	if cfg.Storage.BaseDir != filepath.Join(home, ".qrscan") {
		t.Fatalf("base_dir=%q", cfg.Storage.BaseDir)
	}
	if cfg.LogPath() != filepath.Join(home, ".qrscan", "scanner.log") {
		t.Fatalf("log path=%q", cfg.LogPath())
	}
}

func TestLoadJSONCAndPrecedence(t *testing.T) {
	home, _ := isolate(t)

	globalDir := filepath.Join(home, ".qrscan")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	globalCfg := `{
  // global
  "scanner": {"expected_type": "wifi", "torch": true},
  "log": {"level": "debug"}
}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	projectCfg := `{
  /* project wins */
  "scanner": {"expected_type": "url"},
  "storage": {"backend": "file"}
}`
	if err := os.WriteFile("qrscan.config.json", []byte(projectCfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExpectedContentType() != content.URL {
		t.Fatalf("expected_type=%q", cfg.Scanner.ExpectedType)
	}
	if !cfg.Scanner.Torch {
		t.Fatalf("torch should come from global config")
	}
	if cfg.Storage.Backend != "file" || cfg.Log.Level != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	yamlCfg := `scanner:
  interval_ms: 250
  history_limit: 5
  device: " /dev/hidraw0 "
ui:
  mode: line
  locale: es
`
	if err := os.WriteFile("qrscan.yaml", []byte(yamlCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scanner.IntervalMS != 250 || cfg.Scanner.HistoryLimit != 5 {
		t.Fatalf("scanner=%+v", cfg.Scanner)
	}
	if cfg.Scanner.Device != "/dev/hidraw0" {
		t.Fatalf("device=%q", cfg.Scanner.Device)
	}
	if cfg.UI.Mode != UIModeLine || cfg.UI.Locale != "es" {
		t.Fatalf("ui=%+v", cfg.UI)
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("QRSCAN_EXPECTED_TYPE", "Barcode")
	t.Setenv("QRSCAN_INTERVAL_MS", "0")
	t.Setenv("QRSCAN_BACKEND", "memory")
	t.Setenv("QRSCAN_DEVICE", "/tmp/scanner.fifo")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExpectedContentType() != content.Barcode {
		t.Fatalf("expected_type=%q", cfg.Scanner.ExpectedType)
	}
	if cfg.Scanner.IntervalMS != 0 || cfg.Storage.Backend != "memory" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Scanner.Device != "/tmp/scanner.fifo" {
		t.Fatalf("device=%q", cfg.Scanner.Device)
	}
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	// t.Setenv restores the variable after godotenv sets it.
	t.Setenv("QRSCAN_UI_MODE", "")
	_ = os.Unsetenv("QRSCAN_UI_MODE")
	if err := os.WriteFile(".env", []byte("QRSCAN_UI_MODE=tui\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Mode != UIModeTUI {
		t.Fatalf("ui.mode=%q", cfg.UI.Mode)
	}
}

func TestInvalidValues(t *testing.T) {
	isolate(t)
	cases := []struct {
		body string
		want string
	}{
		{`{"scanner": {"expected_type": "qr"}}`, "expected_type"},
		{`{"storage": {"backend": "redis"}}`, "backend"},
		{`{"ui": {"mode": "gui"}}`, "ui.mode"},
		{`{"scanner": `, "parse config"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "c.json")
		if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("Load(%s) err=%v, want %q", tc.body, err, tc.want)
		}
	}

	t.Setenv("QRSCAN_INTERVAL_MS", "fast")
	if _, err := Load(""); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestHistoryLimitNormalized(t *testing.T) {
	isolate(t)
	for _, limit := range []string{"-3", "0", "21", "50"} {
		body := `{"scanner":{"history_limit":` + limit + `}}`
		if err := os.WriteFile("qrscan.config.json", []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Scanner.HistoryLimit != DefaultHistoryLimit {
			t.Fatalf("history_limit %s normalized to %d", limit, cfg.Scanner.HistoryLimit)
		}
	}
}

func TestProjectScaffoldAndWriteExpectedType(t *testing.T) {
	_, work := isolate(t)

	path, err := InitProjectConfigScaffold(work)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteExpectedType(work, content.Phone); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExpectedContentType() != content.Phone {
		t.Fatalf("expected_type=%q", cfg.Scanner.ExpectedType)
	}
	if cfg.Scanner.IntervalMS != DefaultScannerIntervalMS {
		t.Fatalf("scaffold values lost: %+v", cfg.Scanner)
	}
	if err := WriteExpectedType(work, content.ContentType("qr")); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestStripJSONComments(t *testing.T) {
	in := `{"a": "http://x//y", /* c */ "b": 1 // tail
}`
	out := string(stripJSONComments([]byte(in)))
	if !strings.Contains(out, `"http://x//y"`) || strings.Contains(out, "tail") || strings.Contains(out, "/*") {
		t.Fatalf("out=%q", out)
	}
}
