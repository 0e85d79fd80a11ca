// Package history keeps the bounded, most-recent-first record of accepted
// scans and mirrors it into a single key-value slot.
package history

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"qrscan/internal/content"
	"qrscan/internal/storage"

	"github.com/rs/zerolog"
)

const (
	// DefaultLimit is also the largest bound a Store accepts.
	DefaultLimit = 20
	DefaultKey   = "scan-history"
)

// Entry is one accepted scan. It is never mutated after creation.
type Entry struct {
	Raw       string              `json:"raw"`
	Type      content.ContentType `json:"type"`
	ScannedAt time.Time           `json:"scannedAt"`
}

type Options struct {
	Key    string
	Limit  int
	Logger zerolog.Logger
}

// Store owns the in-memory history and its persisted snapshot. In-memory
// state is authoritative: persistence errors are logged and dropped.
type Store struct {
	kv      storage.KV
	key     string
	limit   int
	log     zerolog.Logger
	entries []Entry
}

// New creates an empty Store; call Load to restore the persisted snapshot.
// A nil kv keeps history in memory only. Limits outside 1..DefaultLimit
// fall back to DefaultLimit.
func New(kv storage.KV, opts Options) *Store {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultKey
	}
	limit := opts.Limit
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return &Store{
		kv:    kv,
		key:   key,
		limit: limit,
		log:   opts.Logger,
	}
}

func (s *Store) Limit() int  { return s.limit }
func (s *Store) Len() int    { return len(s.entries) }

// Entries returns a copy of the history, most recent first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Load replaces the in-memory history with the persisted snapshot. A missing
// or unparsable slot yields an empty history. Records with an empty payload
// or an unknown type are skipped.
func (s *Store) Load() []Entry {
	s.entries = nil
	if s.kv == nil {
		return s.Entries()
	}

	raw, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("history load failed")
		}
		return s.Entries()
	}

	var stored []Entry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("history snapshot malformed, starting empty")
		return s.Entries()
	}

	entries := make([]Entry, 0, len(stored))
	for _, e := range stored {
		if e.Raw == "" || !e.Type.Valid() {
			continue
		}
		entries = append(entries, e)
		if len(entries) == s.limit {
			break
		}
	}
	s.entries = entries
	return s.Entries()
}

// Save replaces the history with entries (truncated to the limit) and
// writes the snapshot.
func (s *Store) Save(entries []Entry) {
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	next := make([]Entry, len(entries))
	copy(next, entries)
	s.entries = next
	s.persist()
}

// Append prepends e, evicts everything past the limit and saves.
func (s *Store) Append(e Entry) []Entry {
	n := len(s.entries) + 1
	if n > s.limit {
		n = s.limit
	}
	next := make([]Entry, 0, n)
	next = append(next, e)
	next = append(next, s.entries[:n-1]...)
	s.entries = next
	s.persist()
	return s.Entries()
}

// Clear empties the history and erases the persisted slot.
func (s *Store) Clear() {
	s.entries = nil
	if s.kv == nil {
		return
	}
	if err := s.kv.Remove(s.key); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("history clear failed")
	}
}

func (s *Store) persist() {
	if s.kv == nil {
		return
	}
	snapshot := s.entries
	if snapshot == nil {
		snapshot = []Entry{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("history encode failed")
		return
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Int("entries", len(snapshot)).Msg("history save failed")
	}
}
