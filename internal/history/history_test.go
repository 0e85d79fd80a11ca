package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"qrscan/internal/content"
	"qrscan/internal/storage"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func entry(i int) Entry {
	return Entry{
		Raw:       fmt.Sprintf("code-%02d", i),
		Type:      content.Barcode,
		ScannedAt: base.Add(time.Duration(i) * time.Second),
	}
}

func sameEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Raw != want[i].Raw || got[i].Type != want[i].Type || !got[i].ScannedAt.Equal(want[i].ScannedAt) {
			t.Fatalf("entry %d=%+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAppendBoundsAndOrder(t *testing.T) {
	s := New(storage.NewMemoryStore(), Options{})
	for i := 0; i < 25; i++ {
		s.Append(entry(i))
		if s.Len() > DefaultLimit {
			t.Fatalf("history grew to %d", s.Len())
		}
	}

	got := s.Entries()
	if len(got) != 20 {
		t.Fatalf("len=%d, want 20", len(got))
	}
	// 最新在前 / Most recent first: 24 down to 5.
	for i, e := range got {
		want := fmt.Sprintf("code-%02d", 24-i)
		if e.Raw != want {
			t.Fatalf("entry %d=%q, want %q", i, e.Raw, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	h := []Entry{
		{Raw: "https://wa.me/1234567890", Type: content.WhatsApp, ScannedAt: base.Add(2 * time.Minute)},
		{Raw: "WIFI:S:Home;P:secret;;", Type: content.WiFi, ScannedAt: base.Add(time.Minute)},
		{Raw: "Hello World", Type: content.Text, ScannedAt: base.Add(1500 * time.Millisecond)},
	}

	New(kv, Options{}).Save(h)

	restarted := New(kv, Options{})
	sameEntries(t, restarted.Load(), h)
}

func TestEveryMutationPersists(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := New(kv, Options{Key: "slot"})
	s.Append(entry(1))
	s.Append(entry(2))

	sameEntries(t, New(kv, Options{Key: "slot"}).Load(), []Entry{entry(2), entry(1)})
}

func TestClearErasesSlot(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := New(kv, Options{})
	s.Append(entry(1))
	s.Clear()

	if s.Len() != 0 {
		t.Fatalf("Len=%d after Clear", s.Len())
	}
	if _, err := kv.Get(DefaultKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("slot still present: err=%v", err)
	}
	if got := New(kv, Options{}).Load(); len(got) != 0 {
		t.Fatalf("Load after Clear=%v", got)
	}
}

func TestLoadMissingOrMalformed(t *testing.T) {
	kv := storage.NewMemoryStore()
	if got := New(kv, Options{}).Load(); len(got) != 0 {
		t.Fatalf("missing slot=%v", got)
	}

	for _, body := range []string{"", "{", `{"raw":"x"}`, "null", `"text"`} {
		_ = kv.Set(DefaultKey, body)
		if got := New(kv, Options{}).Load(); len(got) != 0 {
			t.Fatalf("Load(%q)=%v, want empty", body, got)
		}
	}
}

func TestLoadSkipsInvalidRecordsAndTruncates(t *testing.T) {
	kv := storage.NewMemoryStore()
	body := `[
		{"raw":"a","type":"url","scannedAt":"2025-01-02T03:04:05.000Z"},
		{"raw":"","type":"url","scannedAt":"2025-01-02T03:04:05.000Z"},
		{"raw":"b","type":"qr","scannedAt":"2025-01-02T03:04:05.000Z"},
		{"raw":"c","type":"text","scannedAt":"2025-01-02T03:04:04.000Z"},
		{"raw":"d","type":"phone","scannedAt":"2025-01-02T03:04:03.000Z"}
	]`
	_ = kv.Set(DefaultKey, body)

	got := New(kv, Options{Limit: 2}).Load()
	if len(got) != 2 || got[0].Raw != "a" || got[1].Raw != "c" {
		t.Fatalf("Load=%+v", got)
	}
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got[0].ScannedAt.Equal(want) {
		t.Fatalf("ScannedAt=%v, want %v", got[0].ScannedAt, want)
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.FailWith(errors.New("store unavailable"))
	s := New(kv, Options{})

	if got := s.Load(); len(got) != 0 {
		t.Fatalf("Load=%v", got)
	}
	s.Append(entry(1))
	s.Append(entry(2))
	if s.Len() != 2 {
		t.Fatalf("in-memory history lost: %d", s.Len())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear should still empty memory")
	}
}

func TestNilKVIsMemoryOnly(t *testing.T) {
	s := New(nil, Options{Limit: 3})
	for i := 0; i < 5; i++ {
		s.Append(entry(i))
	}
	if s.Len() != 3 || s.Limit() != 3 {
		t.Fatalf("Len=%d Limit=%d", s.Len(), s.Limit())
	}
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("Load with nil kv=%v", got)
	}
}

func TestEntriesIsACopy(t *testing.T) {
	s := New(nil, Options{})
	s.Append(entry(1))
	got := s.Entries()
	got[0].Raw = "mutated"
	if s.Entries()[0].Raw != "code-01" {
		t.Fatalf("Entries leaked internal slice")
	}
}

func TestLimitNeverExceedsDefault(t *testing.T) {
	s := New(storage.NewMemoryStore(), Options{Limit: 50})
	if s.Limit() != DefaultLimit {
		t.Fatalf("Limit=%d, want %d", s.Limit(), DefaultLimit)
	}
	for i := 0; i < 30; i++ {
		s.Append(entry(i))
	}
	if s.Len() != DefaultLimit {
		t.Fatalf("Len=%d, want %d", s.Len(), DefaultLimit)
	}
}

func TestClearSurvivesLegacyImportOnRestart(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "scan-history.json")
	body := `[{"raw":"https://example.com","type":"url","scannedAt":"2025-01-02T03:04:05Z"}]`
	if err := os.WriteFile(legacy, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	kv := storage.NewMemoryStore()

	if _, err := storage.ImportLegacySnapshot(legacy, DefaultKey, kv); err != nil {
		t.Fatalf("import: %v", err)
	}
	s := New(kv, Options{})
	if got := s.Load(); len(got) != 1 {
		t.Fatalf("Load after import=%+v", got)
	}
	s.Clear()

	// 重启 / restart
	if _, err := storage.ImportLegacySnapshot(legacy, DefaultKey, kv); err != nil {
		t.Fatalf("import on restart: %v", err)
	}
	if got := New(kv, Options{}).Load(); len(got) != 0 {
		t.Fatalf("cleared history came back: %+v", got)
	}
}
