package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "lt_LT.UTF-8:en_US")
		t.Setenv("LC_ALL", "tr_TR.UTF-8")

		if got := detectLanguage(); got != "lt_LT" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "lt_LT")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "ru_RU.UTF-8")

		if got := detectLanguage(); got != "ru_RU" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ru_RU")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Filter"); got != "Filter" {
		t.Fatalf("T fallback = %q, want %q", got, "Filter")
	}

	if got := N("%d country", "%d countries", 1); got != "%d country" {
		t.Fatalf("N singular fallback = %q, want %q", got, "%d country")
	}

	if got := N("%d country", "%d countries", 0); got != "%d countries" {
		t.Fatalf("N plural fallback = %q, want %q", got, "%d countries")
	}
}

func TestInitWithoutCatalogPassesThrough(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	// No catalog ships for English; msgids are the English strings.
	Init("en")
	if got := T("Close"); got != "Close" {
		t.Fatalf("T(Close) = %q, want %q", got, "Close")
	}
}

func TestFormattingHelpers(t *testing.T) {
	old, oldLang := po, lang
	po = nil
	t.Cleanup(func() { po, lang = old, oldLang })

	if got := Tf("Unknown command: %s", "/x"); got != "Unknown command: /x" {
		t.Fatalf("Tf() = %q", got)
	}
	if got := Nf("%d country", "%d countries", 1); got != "1 country" {
		t.Fatalf("Nf(1) = %q", got)
	}
	if got := Nf("%d country", "%d countries", 51); got != "51 countries" {
		t.Fatalf("Nf(51) = %q", got)
	}

	Init("tr")
	if got := Current(); got != "tr" {
		t.Fatalf("Current() = %q, want %q", got, "tr")
	}
}
