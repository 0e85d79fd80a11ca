// Package i18n holds the scanner's message catalogs. English is complete;
// every other locale overlays it and falls back to English key by key.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"qrscan/internal/content"
)

// Fallback is the language every lookup ends in.
const Fallback = "en"

var catalogs = map[string]map[string]string{
	"en": EnMessages,
	"es": EsMessages,
}

// Catalog 单一语言的消息查找链
// Catalog resolves message keys for one language. It is immutable.
type Catalog struct {
	locale string
	chain  []map[string]string
}

var global atomic.Pointer[Catalog]

// New builds the catalog for a locale tag; see Match.
func New(locale string) *Catalog {
	lang := Match(locale)
	c := &Catalog{locale: lang}
	if lang != Fallback {
		c.chain = append(c.chain, catalogs[lang])
	}
	c.chain = append(c.chain, catalogs[Fallback])
	return c
}

// Match maps a tag such as "es_MX.UTF-8" or "es-419" to a supported
// language and returns Fallback otherwise. A blank tag reads LC_ALL,
// LC_MESSAGES and LANG, first non-empty wins.
func Match(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
			if v := strings.TrimSpace(os.Getenv(env)); v != "" {
				tag = v
				break
			}
		}
	}
	lang := strings.ToLower(tag)
	if i := strings.IndexAny(lang, "._-@"); i >= 0 {
		lang = lang[:i]
	}
	if _, ok := catalogs[lang]; ok {
		return lang
	}
	return Fallback
}

// Init replaces the process-wide catalog.
func Init(locale string) {
	global.Store(New(locale))
}

// Global returns the process-wide catalog, built from the environment on
// first use when Init was never called.
func Global() *Catalog {
	if c := global.Load(); c != nil {
		return c
	}
	global.CompareAndSwap(nil, New(""))
	return global.Load()
}

// T translates key with the process-wide catalog.
func T(key string, args ...any) string {
	return Global().T(key, args...)
}

// Locale returns the resolved language, e.g. "es".
func (c *Catalog) Locale() string { return c.locale }

// T returns the message for key, formatted with args when given. Unknown
// keys come back unchanged.
func (c *Catalog) T(key string, args ...any) string {
	for _, m := range c.chain {
		if tmpl, ok := m[key]; ok {
			if len(args) == 0 {
				return tmpl
			}
			return fmt.Sprintf(tmpl, args...)
		}
	}
	return key
}

// Label 内容类型的短名称
// Label is the short display name of a content type.
func (c *Catalog) Label(t content.ContentType) string {
	return c.T(content.LabelKey(t))
}

// Description explains what a content type is and what can be done with it.
func (c *Catalog) Description(t content.ContentType) string {
	return c.T(content.DescriptionKey(t))
}
