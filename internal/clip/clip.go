// Package clip holds the side-effect helpers driven by a scan result:
// clipboard copy and mail/telephone link building.
package clip

import (
	"errors"
	"strings"
	"unicode"

	"qrscan/internal/content"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

var errClipboardUnsupported = errors.New("clipboard unsupported on this system")

// Adapter copies text to the system clipboard.
type Adapter struct {
	write func(string) error
	log   zerolog.Logger
}

func New(log zerolog.Logger) *Adapter {
	return &Adapter{write: writeSystem, log: log}
}

// NewWithWriter uses write instead of the system clipboard.
func NewWithWriter(write func(string) error, log zerolog.Logger) *Adapter {
	return &Adapter{write: write, log: log}
}

func writeSystem(s string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(s)
}

// CopyText places s on the clipboard and reports success. Failures are
// logged, never returned.
func (a *Adapter) CopyText(s string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("clipboard copy failed")
			ok = false
		}
	}()
	if a.write == nil {
		a.log.Error().Msg("clipboard copy failed: no writer")
		return false
	}
	if err := a.write(s); err != nil {
		a.log.Error().Err(err).Msg("clipboard copy failed")
		return false
	}
	return true
}

const (
	mailScheme = "mailto:"
	telScheme  = "tel:"
)

// BuildMailLink returns raw unchanged when it already carries a mailto:
// prefix, otherwise prefixes one.
func BuildMailLink(raw string) string {
	if hasPrefixFold(raw, mailScheme) {
		return raw
	}
	return mailScheme + raw
}

// BuildTelLink returns raw unchanged when it already carries a tel: prefix,
// otherwise strips whitespace and prefixes one.
func BuildTelLink(raw string) string {
	if hasPrefixFold(raw, telScheme) {
		return raw
	}
	return telScheme + stripSpace(raw)
}

// ActionLink returns the link a result card offers for the given type.
func ActionLink(raw string, t content.ContentType) (string, bool) {
	switch content.ActionFor(t) {
	case content.ActionOpen:
		return strings.TrimSpace(raw), true
	case content.ActionMail:
		return BuildMailLink(strings.TrimSpace(raw)), true
	case content.ActionCall:
		return BuildTelLink(strings.TrimSpace(raw)), true
	default:
		return "", false
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
