// Package langmeta provides the registry of widget display languages
// (native names and emoji flags). The set is closed: country records carry
// exactly one name field per language listed here.
package langmeta

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// ErrUnsupported is returned by Normalize for languages outside the registry.
var ErrUnsupported = errors.New("unsupported language")

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains canonical language metadata.
// Locale variants are resolved in Resolve() via normalization and base fallback.
var Registry = map[string]Meta{
	"en": {Name: "English", Flag: "🇺🇸"},
	"ru": {Name: "Русский", Flag: "🇷🇺"},
	"lt": {Name: "Lietuvių", Flag: "🇱🇹"},
	"tr": {Name: "Türkçe", Flag: "🇹🇷"},
}

// keys is the display order of Registry.
var keys = []string{"en", "ru", "lt", "tr"}

// Keys returns the supported language keys in display order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// lookup returns the registry key for lang, trying the exact key, the
// canonical form and finally the base language.
func lookup(lang string) (string, bool) {
	if _, ok := Registry[lang]; ok {
		return lang, true
	}
	normalized := canonicalize(lang)
	if _, ok := Registry[normalized]; ok {
		return normalized, true
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if _, ok := Registry[parts[0]]; ok {
			return parts[0], true
		}
	}
	return "", false
}

// Resolve returns best-effort language metadata for language codes,
// supporting variants like ru_RU, tr-TR, and locale fallbacks.
func Resolve(lang string) Meta {
	if key, ok := lookup(lang); ok {
		return Registry[key]
	}
	return Meta{Name: lang, Flag: ""}
}

// Normalize maps lang to a registry key ("RU", "ru_RU" and "ru-RU" all give
// "ru"). An empty lang yields DefaultLang.
func Normalize(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return DefaultLang, nil
	}
	if key, ok := lookup(lang); ok {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupported, lang, strings.Join(keys, ", "))
}
