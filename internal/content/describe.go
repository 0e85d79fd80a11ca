package content

import "strings"

// Action 结果卡片上可执行的动作
// Action is what the result card offers for a content type.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionMail
	ActionCall
)

// ActionFor returns the card action for t.
func ActionFor(t ContentType) Action {
	switch t {
	case URL, WhatsApp, YouTube:
		return ActionOpen
	case Email:
		return ActionMail
	case Phone:
		return ActionCall
	default:
		return ActionNone
	}
}

// DescriptionKey returns the i18n key describing t.
func DescriptionKey(t ContentType) string {
	switch t {
	case URL, WhatsApp, YouTube, Email, Phone, WiFi, Barcode:
		return "content.desc." + string(t)
	default:
		return "content.desc.text"
	}
}

// LabelKey returns the i18n key for the short label of t.
func LabelKey(t ContentType) string {
	if !t.Valid() {
		return "content.label.text"
	}
	return "content.label." + string(t)
}

// WiFiNetwork WiFi 配置码解析结果
// WiFiNetwork holds the fields of a WIFI: configuration payload.
type WiFiNetwork struct {
	SSID     string
	Password string
	Auth     string
	Hidden   bool
}

// ParseWiFi decodes WIFI:T:<auth>;S:<ssid>;P:<password>;H:<hidden>;; payloads.
// Backslash escapes the next character. The second result is false when raw
// is not a WiFi payload or carries no SSID.
func ParseWiFi(raw string) (WiFiNetwork, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 5 || !strings.EqualFold(s[:5], "wifi:") {
		return WiFiNetwork{}, false
	}

	var n WiFiNetwork
	for _, field := range splitEscaped(s[5:], ';') {
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		value = unescape(value)
		switch strings.ToUpper(key) {
		case "S":
			n.SSID = value
		case "P":
			n.Password = value
		case "T":
			n.Auth = value
		case "H":
			n.Hidden = strings.EqualFold(value, "true")
		}
	}
	if n.SSID == "" {
		return WiFiNetwork{}, false
	}
	return n, true
}

func splitEscaped(s string, sep byte) []string {
	var parts []string
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c == sep {
			if b.Len() > 0 {
				parts = append(parts, b.String())
			}
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
