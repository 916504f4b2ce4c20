// Package picker is the default terminal presentation of the country picker.
package picker

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/minios-linux/phonekit/country"
	"github.com/minios-linux/phonekit/i18n"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dialStyle   = lipgloss.NewStyle().Faint(true)
)

// Terminal writes the visible country list as numbered rows of flag, name
// and dial code. It remembers the last rendered list so a row can be chosen
// by number.
type Terminal struct {
	w    io.Writer
	lang string

	rows     []country.Record
	onSelect func(code string)
}

// NewTerminal returns a picker writing to w with names in lang.
func NewTerminal(w io.Writer, lang string) *Terminal {
	return &Terminal{w: w, lang: lang}
}

// Render prints the list when visible. A hidden picker prints nothing but
// still records the list and callback.
func (t *Terminal) Render(visible bool, countries []country.Record, onSelect func(code string)) {
	t.rows = countries
	t.onSelect = onSelect
	if !visible {
		return
	}

	count := i18n.Nf("%d country", "%d countries", len(countries))
	fmt.Fprintln(t.w, headerStyle.Render(fmt.Sprintf("%s (%s) · %s", i18n.T("Filter"), count, i18n.T("Close"))))
	fmt.Fprint(t.w, Table(countries, t.lang))
}

// Choose selects the row with the given 1-based number.
func (t *Terminal) Choose(n int) error {
	if t.onSelect == nil {
		return fmt.Errorf("picker has not been rendered")
	}
	if n < 1 || n > len(t.rows) {
		return fmt.Errorf("no country #%d (1-%d)", n, len(t.rows))
	}
	t.onSelect(t.rows[n-1].Code)
	return nil
}

// Cancel closes the picker without selecting.
func (t *Terminal) Cancel() {
	if t.onSelect != nil {
		t.onSelect("")
	}
}

// Table formats countries as aligned rows. Names are padded by display
// width, so Cyrillic and accented names line up.
func Table(countries []country.Record, lang string) string {
	if len(countries) == 0 {
		return i18n.T("No countries found") + "\n"
	}

	nameWidth := 0
	for _, r := range countries {
		if w := runewidth.StringWidth(r.DisplayName(lang)); w > nameWidth {
			nameWidth = w
		}
	}
	numWidth := len(strconv.Itoa(len(countries)))

	var b strings.Builder
	for i, r := range countries {
		fmt.Fprintf(&b, "%*d. %s  %s  %s\n",
			numWidth, i+1,
			r.Flag,
			runewidth.FillRight(r.DisplayName(lang), nameWidth),
			dialStyle.Render(r.DialCode))
	}
	return b.String()
}
