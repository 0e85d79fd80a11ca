// Package scan implements the scan-session state machine: it decides when a
// decoded payload is accepted, rejected or ignored, and keeps the current
// result, the advisory and the bounded history in one owned state.
package scan

import (
	"strings"
	"sync"
	"time"

	"qrscan/internal/content"
	"qrscan/internal/history"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdvisoryMismatch is raised when a decode does not match the expected type.
const AdvisoryMismatch = "detected value differs from expected"

// Outcome 解码事件的处理结果
// Outcome reports what OnDecoded did with a payload.
type Outcome int

const (
	// OutcomeIgnored: session paused or blank payload. Nothing changed.
	OutcomeIgnored Outcome = iota
	// OutcomeMismatch: expected type not met. Advisory set, still scanning.
	OutcomeMismatch
	// OutcomeAccepted: result recorded and session paused.
	OutcomeAccepted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeMismatch:
		return "mismatch"
	default:
		return "ignored"
	}
}

// State 会话状态快照
// State is a snapshot of the session. Current is nil when absent and
// Advisory is empty when absent.
type State struct {
	Active       bool
	Current      *history.Entry
	Advisory     string
	ExpectedType content.ContentType
}

type Options struct {
	History      *history.Store
	ExpectedType content.ContentType
	Clock        func() time.Time
	Torch        Torch
	Logger       zerolog.Logger
	// ID identifies the session in logs; generated when empty.
	ID string
}

// Session owns the scan state. All transitions run synchronously on the
// caller's goroutine; the mutex only lets a renderer read snapshots while
// the decoder goroutine delivers events.
type Session struct {
	mu      sync.Mutex
	id      string
	state   State
	history *history.Store
	now     func() time.Time
	torch   Torch
	log     zerolog.Logger
	lastAt  time.Time
}

// New starts a session in the Scanning state and restores history from its
// persisted snapshot.
func New(opts Options) *Session {
	h := opts.History
	if h == nil {
		h = history.New(nil, history.Options{Logger: opts.Logger})
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	torch := opts.Torch
	if torch == nil {
		torch = NoTorch{}
	}
	expected := opts.ExpectedType
	if !expected.Valid() {
		expected = content.Text
	}
	id := strings.TrimSpace(opts.ID)
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:      id,
		history: h,
		now:     clock,
		torch:   torch,
		log:     opts.Logger.With().Str("session", id).Logger(),
		state: State{
			Active:       true,
			ExpectedType: expected,
		},
	}
	h.Load()
	s.log.Info().
		Str("expected", string(expected)).
		Int("history", h.Len()).
		Int("limit", h.Limit()).
		Msg("scan session started")
	return s
}

func (s *Session) ID() string { return s.id }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := s.state
	if st.Current != nil {
		cur := *st.Current
		st.Current = &cur
	}
	return st
}

// History returns the bounded history, most recent first.
func (s *Session) History() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// OnDecoded consumes one payload from the decoder. Paused sessions drop it.
// With a specific expected type a non-matching payload is discarded and the
// session keeps scanning with an advisory; otherwise the payload becomes the
// current result, is appended to history and the session pauses so the same
// code held in front of the camera is not read again.
func (s *Session) OnDecoded(raw string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Active {
		s.log.Debug().Int("len", len(raw)).Msg("late decode dropped while paused")
		return OutcomeIgnored
	}
	if strings.TrimSpace(raw) == "" {
		return OutcomeIgnored
	}

	expected := s.state.ExpectedType
	detected := content.Classify(raw, expected)
	if expected != content.Text && detected != expected {
		s.state.Advisory = AdvisoryMismatch
		s.log.Info().
			Str("expected", string(expected)).
			Str("detected", string(detected)).
			Msg("decode does not match expected type")
		return OutcomeMismatch
	}

	s.state.Advisory = ""
	entry := history.Entry{
		Raw:       raw,
		Type:      detected,
		ScannedAt: s.stamp(),
	}
	s.state.Current = &entry
	s.history.Append(entry)
	s.state.Active = false

	s.log.Info().
		Str("type", string(detected)).
		Int("len", len(raw)).
		Msg("decode accepted")
	return OutcomeAccepted
}

// stamp returns the creation instant, never earlier than the previous one.
func (s *Session) stamp() time.Time {
	now := s.now()
	if now.Before(s.lastAt) {
		now = s.lastAt
	}
	s.lastAt = now
	return now
}

// Resume starts scanning from any state and clears the advisory.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Active = true
	s.state.Advisory = ""
}

// Pause stops scanning. No-op when already paused.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Active {
		return
	}
	s.state.Active = false
	s.state.Advisory = ""
}

// SetExpectedType changes the constraint used for later decodes. Text (or
// an unknown tag) removes the constraint.
func (s *Session) SetExpectedType(t content.ContentType) {
	if !t.Valid() {
		t = content.Text
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ExpectedType = t
}

// ClearCurrent drops the current result. History is untouched.
func (s *Session) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Current = nil
}

// ClearHistory empties history and erases its snapshot. Current is untouched.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.log.Info().Msg("history cleared")
}
