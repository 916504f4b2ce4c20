// Package phoneinput implements the phone input controller: the state behind
// a phone field with a country picker.
//
// The controller owns the selected country, the masked phone text, picker
// visibility and the filtered country list. Hosts feed it raw events
// (keystrokes, selection taps, search text) and receive a State on every
// keystroke through Options.OnChange.
//
// A Controller is meant to be driven from a single goroutine (the UI loop).
// It is not safe for concurrent use.
package phoneinput

import (
	"fmt"

	"github.com/minios-linux/phonekit/country"
	"github.com/minios-linux/phonekit/langmeta"
	"github.com/minios-linux/phonekit/mask"
	log "github.com/sirupsen/logrus"
)

// Mode is the picker state of a Controller.
type Mode int

const (
	// Idle means the picker is hidden.
	Idle Mode = iota
	// Picking means the picker is visible.
	Picking
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Picking:
		return "picking"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// State is emitted to the host after every keystroke.
type State struct {
	DialCode            string         `json:"dialCode"`
	UnmaskedPhoneNumber string         `json:"unmaskedPhoneNumber"`
	PhoneNumber         string         `json:"phoneNumber"`
	IsVerified          bool           `json:"isVerified"`
	SelectedCountry     country.Record `json:"selectedCountry"`
}

// Picker renders the country list. Hosts implement it to replace the default
// presentation. onSelect takes a country code, or "" to close without
// selecting.
type Picker interface {
	Render(visible bool, countries []country.Record, onSelect func(code string))
}

// Options configure a Controller. They are fixed for its lifetime.
type Options struct {
	// Lang selects the name field used for search; one of langmeta.Keys().
	// Default "en".
	Lang string
	// DefaultCountry is the initial country and the target of unknown
	// selections. Default "TR".
	DefaultCountry string
	// Mask overrides the selected country's mask when non-empty.
	Mask string
	// DisableCountryChange keeps the picker closed.
	DisableCountryChange bool
	// OnChange receives a State after every Type call.
	OnChange func(State)
	// Picker, when set, is re-rendered after every picker change.
	Picker Picker
}

// Controller is the phone input state machine.
type Controller struct {
	catalog *country.Catalog
	opts    Options

	defaultCountry country.Record
	selected       country.Record
	phoneNumber    string
	mode           Mode
	filtered       []country.Record
}

// New creates a Controller over catalog. It fails only when opts.Lang is not
// a supported language.
func New(catalog *country.Catalog, opts Options) (*Controller, error) {
	lang, err := langmeta.Normalize(opts.Lang)
	if err != nil {
		return nil, fmt.Errorf("phone input: %w", err)
	}
	opts.Lang = lang
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = country.FallbackCode
	}

	def := catalog.Resolve(opts.DefaultCountry)
	c := &Controller{
		catalog:        catalog,
		opts:           opts,
		defaultCountry: def,
		selected:       def,
		mode:           Idle,
		filtered:       catalog.Records(),
	}

	log.WithFields(log.Fields{
		"lang":    lang,
		"country": def.Code,
		"mask":    c.Mask(),
	}).Debug("Phone input created")

	c.render()
	return c, nil
}

// OpenPicker shows the picker unless country change is disabled.
func (c *Controller) OpenPicker() {
	if c.opts.DisableCountryChange {
		log.Debug("Country change disabled, picker stays closed")
		return
	}
	c.mode = Picking
	log.WithField("countries", len(c.filtered)).Debug("Picker opened")
	c.render()
}

// ClosePicker hides the picker without changing the selection.
func (c *Controller) ClosePicker() {
	c.SelectCountry("")
}

// SelectCountry selects the country with the given code and hides the picker.
// An empty code only hides the picker. Unknown codes select the default
// country. The phone text is cleared without notifying OnChange.
func (c *Controller) SelectCountry(code string) {
	if code == "" {
		c.mode = Idle
		log.Debug("Picker closed without selection")
		c.render()
		return
	}

	r, ok := c.catalog.Lookup(code)
	if !ok {
		log.WithFields(log.Fields{
			"code":     code,
			"fallback": c.defaultCountry.Code,
		}).Warn("Unknown country code, using default country")
		r = c.defaultCountry
	}
	c.selected = r
	c.phoneNumber = ""
	c.mode = Idle

	log.WithFields(log.Fields{
		"country":   r.Code,
		"dial_code": r.DialCode,
	}).Debug("Country selected")
	c.render()
}

// Search replaces the filtered list with the countries matching term.
// The picker mode is not changed.
func (c *Controller) Search(term string) {
	c.filtered = c.catalog.Filter(term, c.opts.Lang)
	log.WithFields(log.Fields{
		"term":    term,
		"matches": len(c.filtered),
	}).Debug("Country search")
	c.render()
}

// Type formats raw keystroke text against the effective mask, stores the
// result and reports it to OnChange.
func (c *Controller) Type(raw string) State {
	m := c.Mask()
	res := mask.Format(raw, m, c.selected.Code)
	c.phoneNumber = res.Masked

	st := State{
		DialCode:            c.selected.DialCode,
		UnmaskedPhoneNumber: res.Digits,
		PhoneNumber:         res.Masked,
		IsVerified:          mask.PlaceholderCount(m) == len(res.Digits) && res.Masked != "",
		SelectedCountry:     c.selected,
	}

	log.WithFields(log.Fields{
		"country":  c.selected.Code,
		"digits":   len(res.Digits),
		"verified": st.IsVerified,
	}).Debug("Phone input changed")

	if c.opts.OnChange != nil {
		c.opts.OnChange(st)
	}
	return st
}

// Mask returns the mask in effect: the override if set, else the selected
// country's mask.
func (c *Controller) Mask() string {
	if c.opts.Mask != "" {
		return c.opts.Mask
	}
	return c.selected.Mask
}

// Placeholder returns the field placeholder, the mask with blank digits.
func (c *Controller) Placeholder() string {
	return mask.Template(c.Mask())
}

// Mode returns the picker state.
func (c *Controller) Mode() Mode { return c.mode }

// Visible reports whether the picker is shown.
func (c *Controller) Visible() bool { return c.mode == Picking }

// Selected returns the selected country.
func (c *Controller) Selected() country.Record { return c.selected }

// PhoneNumber returns the current masked text.
func (c *Controller) PhoneNumber() string { return c.phoneNumber }

// Lang returns the normalized search language.
func (c *Controller) Lang() string { return c.opts.Lang }

// Filtered returns a copy of the current filtered country list.
func (c *Controller) Filtered() []country.Record {
	out := make([]country.Record, len(c.filtered))
	copy(out, c.filtered)
	return out
}

func (c *Controller) render() {
	if c.opts.Picker == nil {
		return
	}
	c.opts.Picker.Render(c.Visible(), c.Filtered(), c.SelectCountry)
}
