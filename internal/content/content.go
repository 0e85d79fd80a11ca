package content

import (
	"fmt"
	"regexp"
	"strings"
)

// ContentType 解码内容的语义类别
// ContentType is the semantic category of a decoded payload.
type ContentType string

const (
	URL      ContentType = "url"
	WhatsApp ContentType = "whatsapp"
	YouTube  ContentType = "youtube"
	Email    ContentType = "email"
	Phone    ContentType = "phone"
	WiFi     ContentType = "wifi"
	Barcode  ContentType = "barcode"
	Text     ContentType = "text"
)

// priority is the unconstrained evaluation order. Text is the fallback and
// is never listed.
var priority = [...]ContentType{WiFi, WhatsApp, YouTube, Email, Barcode, Phone, URL}

// RE2 \s is ASCII only; \p{Z} and U+FEFF extend it to Unicode spaces.
var (
	emailPattern   = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)
	numericBarcode = regexp.MustCompile(`^\d{8,14}$`)
	alnumBarcode   = regexp.MustCompile(`^[a-z0-9-]+$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9 ()-]{6,}$`)
	urlPattern     = regexp.MustCompile(`^https?://[^\s\p{Z}\x{FEFF}]+$`)
)

// All 返回全部类型（选择器顺序）
// All returns every content type in selector order.
func All() []ContentType {
	return []ContentType{URL, WhatsApp, YouTube, Email, Phone, WiFi, Barcode, Text}
}

// Valid reports whether t is one of the enumerated tags.
func (t ContentType) Valid() bool {
	switch t {
	case URL, WhatsApp, YouTube, Email, Phone, WiFi, Barcode, Text:
		return true
	}
	return false
}

func (t ContentType) String() string { return string(t) }

// Parse 解析类型名（忽略大小写，空串视为 text）
// Parse resolves a type name case-insensitively; blank means Text.
func Parse(s string) (ContentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Text, nil
	}
	t := ContentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return t, nil
}

// Next returns the type after t in selector order, wrapping around.
func Next(t ContentType) ContentType {
	all := All()
	for i, c := range all {
		if c == t {
			return all[(i+1)%len(all)]
		}
	}
	return Text
}

// Classify 将解码文本映射为内容类型
// Classify maps a decoded payload to a content type. An empty or Text
// expected type means no constraint: predicates run in priority order and
// the first match wins. Any other expected type is the only predicate
// evaluated, and the result is either that type or Text.
func Classify(raw string, expected ContentType) ContentType {
	s := normalize(raw)

	if expected != "" && expected != Text {
		if matches(expected, s) {
			return expected
		}
		return Text
	}

	for _, t := range priority {
		if matches(t, s) {
			return t
		}
	}
	return Text
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// matches evaluates the predicate for t against normalized text.
func matches(t ContentType, s string) bool {
	switch t {
	case WiFi:
		return strings.HasPrefix(s, "wifi:")
	case WhatsApp:
		return strings.HasPrefix(s, "https://wa.me/") ||
			strings.Contains(s, "api.whatsapp.com") ||
			strings.Contains(s, "chat.whatsapp.com")
	case YouTube:
		return strings.Contains(s, "youtube.com/watch") || strings.Contains(s, "youtu.be/")
	case Email:
		return strings.HasPrefix(s, "correo") ||
			strings.HasPrefix(s, "mailto") ||
			emailPattern.MatchString(s)
	case Barcode:
		return numericBarcode.MatchString(s) ||
			(alnumBarcode.MatchString(s) && len(s) >= 6)
	case Phone:
		return strings.HasPrefix(s, "cel") ||
			strings.HasPrefix(s, "tel") ||
			phonePattern.MatchString(s)
	case URL:
		return urlPattern.MatchString(s)
	case Text:
		return true
	default:
		return false
	}
}
