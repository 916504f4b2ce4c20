// Package i18n translates phonekit's user-facing strings: picker labels and
// CLI messages. Country names are not handled here; they live in the
// country catalog.
//
// Catalogs are gettext .po files embedded from locales/<lang>/LC_MESSAGES
// and read with gotext. English strings are the msgids, so English needs no
// catalog.
//
//	i18n.Init("ru")
//	fmt.Println(i18n.T("Close"))
//	fmt.Println(i18n.Nf("%d country", "%d countries", n))
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "phonekit"

var (
	po   *gotext.Locale
	lang string
)

// Init loads the catalog for lang, or for the environment's language when
// lang is empty. It may be called again to switch languages.
func Init(l string) {
	if l == "" {
		l = detectLanguage()
	}
	lang = l

	po = gotext.NewLocaleFSWithPath(l, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// Current returns the language passed to the last Init, or "" before Init.
func Current() string {
	return lang
}

// T translates msgid, returning it unchanged when there is no translation.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// Tf translates a format string and applies args to it.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

// N picks the singular or plural translation for n using the target
// language's plural rule. The result is still a format string.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// Nf is N with n applied to the chosen form's %d verb.
func Nf(singular, plural string, n int) string {
	return fmt.Sprintf(N(singular, plural, n), n)
}

// detectLanguage follows GNU gettext: LANGUAGE, LC_ALL, LC_MESSAGES, LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// ru_RU.UTF-8 -> ru_RU
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
