package tui

import (
	"strings"
	"testing"
	"time"

	"qrscan/internal/content"
	"qrscan/internal/history"
	"qrscan/internal/i18n"

	"github.com/mattn/go-runewidth"
)

func TestRenderMarkdown_Basic(t *testing.T) {
	input := "# Hello\n\nThis is **bold** text."
	result := RenderMarkdown(input, 80)
	if result == "" {
		t.Fatal("RenderMarkdown returned empty")
	}
	if !strings.Contains(result, "Hello") {
		t.Fatalf("result should contain 'Hello': %q", result)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if RenderMarkdown("", 80) != "" {
		t.Fatal("empty input should return empty")
	}
	if RenderMarkdown("  ", 80) != "" {
		t.Fatal("whitespace input should return empty")
	}
}

func TestResultMarkdown_Empty(t *testing.T) {
	loc := i18n.New("en")
	if got := ResultMarkdown(nil, loc); !strings.Contains(got, "No code scanned yet.") {
		t.Fatalf("unexpected empty card: %q", got)
	}
}

func TestResultMarkdown_Phone(t *testing.T) {
	loc := i18n.New("en")
	e := &history.Entry{Raw: "+34 600 111 222", Type: content.Phone, ScannedAt: time.Now()}
	got := ResultMarkdown(e, loc)
	for _, want := range []string{"Phone", "you can call", "+34 600 111 222", "Call: <tel:+34600111222>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("card missing %q:\n%s", want, got)
		}
	}
}

func TestResultMarkdown_EmailKeepsMailto(t *testing.T) {
	loc := i18n.New("en")
	e := &history.Entry{Raw: "mailto:ana@example.com", Type: content.Email}
	got := ResultMarkdown(e, loc)
	if !strings.Contains(got, "<mailto:ana@example.com>") || strings.Contains(got, "mailto:mailto:") {
		t.Fatalf("unexpected mail link:\n%s", got)
	}
	if strings.Contains(got, "Scanned at") {
		t.Fatalf("zero timestamp should not be printed:\n%s", got)
	}
}

func TestResultMarkdown_WiFiFields(t *testing.T) {
	loc := i18n.New("es")
	e := &history.Entry{Raw: "WIFI:T:WPA;S:Cafe;P:latte;;", Type: content.WiFi}
	got := ResultMarkdown(e, loc)
	for _, want := range []string{"Red: `Cafe`", "Clave: `latte`", "Seguridad: WPA"} {
		if !strings.Contains(got, want) {
			t.Fatalf("card missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Fatalf("wifi card should offer no link:\n%s", got)
	}
}

func TestHistoryLines(t *testing.T) {
	theme := DarkTheme()
	loc := i18n.New("en")
	if got := HistoryLines(nil, theme, loc, 80, -1); !strings.Contains(got, "No scans yet.") {
		t.Fatalf("unexpected empty history: %q", got)
	}

	entries := []history.Entry{
		{Raw: "https://example.com", Type: content.URL},
		{Raw: "line one\nline two", Type: content.Text},
	}
	got := HistoryLines(entries, theme, loc, 80, 1)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per entry, got %d: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "https://example.com") || !strings.Contains(lines[1], "line one line two") {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if strings.Contains(lines[0], "›") || !strings.Contains(lines[1], "›") {
		t.Fatalf("only row 2 should be marked: %q", lines)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate(strings.Repeat("x", 30), 10); len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
	// 宽字符占两列 / wide runes take two cells
	if got := truncate(strings.Repeat("码", 10), 10); runewidth.StringWidth(got) > 10 {
		t.Fatalf("got %q", got)
	}
}
