package phoneinput

import (
	"errors"
	"testing"

	"github.com/minios-linux/phonekit/country"
	"github.com/minios-linux/phonekit/langmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *country.Catalog {
	t.Helper()
	c, err := country.New([]country.Record{
		{Code: "TR", DialCode: "+90", Mask: "(999) 999 99 99", Names: country.Names{En: "Turkey", Ru: "Турция", Lt: "Turkija", Tr: "Türkiye"}},
		{Code: "US", DialCode: "+1", Mask: "(999) 999-9999", Names: country.Names{En: "United States", Ru: "США", Lt: "JAV", Tr: "ABD"}},
		{Code: "IN", DialCode: "+91", Mask: "99999 99999", Names: country.Names{En: "India", Ru: "Индия", Lt: "Indija", Tr: "Hindistan"}},
		{Code: "LT", DialCode: "+370", Mask: "(999) 99 999", Names: country.Names{En: "Lithuania", Ru: "Литва", Lt: "Lietuva", Tr: "Litvanya"}},
	})
	require.NoError(t, err)
	return c
}

type renderCall struct {
	visible bool
	codes   []string
}

// recordingPicker keeps every Render call and the last onSelect callback.
type recordingPicker struct {
	calls    []renderCall
	onSelect func(string)
}

func (p *recordingPicker) Render(visible bool, countries []country.Record, onSelect func(code string)) {
	codes := make([]string, 0, len(countries))
	for _, r := range countries {
		codes = append(codes, r.Code)
	}
	p.calls = append(p.calls, renderCall{visible: visible, codes: codes})
	p.onSelect = onSelect
}

func (p *recordingPicker) last() renderCall {
	return p.calls[len(p.calls)-1]
}

func newController(t *testing.T, opts Options) (*Controller, *[]State) {
	t.Helper()
	var states []State
	opts.OnChange = func(s State) { states = append(states, s) }
	c, err := New(testCatalog(t), opts)
	require.NoError(t, err)
	return c, &states
}

func TestNewDefaults(t *testing.T) {
	c, _ := newController(t, Options{})

	assert.Equal(t, "en", c.Lang())
	assert.Equal(t, "TR", c.Selected().Code)
	assert.Equal(t, Idle, c.Mode())
	assert.False(t, c.Visible())
	assert.Equal(t, "", c.PhoneNumber())
	assert.Len(t, c.Filtered(), 4)
	assert.Equal(t, "(999) 999 99 99", c.Mask())
	assert.Equal(t, "(___) ___ __ __", c.Placeholder())
}

func TestNewOptions(t *testing.T) {
	t.Run("default country", func(t *testing.T) {
		c, _ := newController(t, Options{DefaultCountry: "US", Lang: "RU"})
		assert.Equal(t, "US", c.Selected().Code)
		assert.Equal(t, "ru", c.Lang())
	})

	t.Run("unknown default country falls back", func(t *testing.T) {
		c, _ := newController(t, Options{DefaultCountry: "ZZ"})
		assert.Equal(t, "TR", c.Selected().Code)
	})

	t.Run("unsupported lang", func(t *testing.T) {
		_, err := New(testCatalog(t), Options{Lang: "de"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, langmeta.ErrUnsupported))
	})
}

func TestTypeScenarios(t *testing.T) {
	c, states := newController(t, Options{DefaultCountry: "US"})

	st := c.Type("5551234567")
	assert.Equal(t, "(555) 123-4567", st.PhoneNumber)
	assert.Equal(t, "5551234567", st.UnmaskedPhoneNumber)
	assert.True(t, st.IsVerified)
	assert.Equal(t, "+1", st.DialCode)
	assert.Equal(t, "US", st.SelectedCountry.Code)
	assert.Equal(t, "(555) 123-4567", c.PhoneNumber())

	st = c.Type("555")
	assert.Equal(t, "(555", st.PhoneNumber)
	assert.False(t, st.IsVerified)

	st = c.Type("")
	assert.Equal(t, "", st.PhoneNumber)
	assert.False(t, st.IsVerified)

	require.Len(t, *states, 3, "one emission per Type call")
	assert.Equal(t, "(555", (*states)[1].PhoneNumber)
}

func TestTypeMaskOverride(t *testing.T) {
	c, _ := newController(t, Options{DefaultCountry: "US", Mask: "999-999"})
	assert.Equal(t, "999-999", c.Mask())

	st := c.Type("123456789")
	assert.Equal(t, "123-456", st.PhoneNumber)
	assert.True(t, st.IsVerified)

	c.OpenPicker()
	c.SelectCountry("LT")
	assert.Equal(t, "999-999", c.Mask(), "override wins over the catalog mask")
}

func TestTypeZeroOmitCountry(t *testing.T) {
	c, _ := newController(t, Options{DefaultCountry: "IN"})

	st := c.Type("09876543210")
	assert.Equal(t, "98765 43210", st.PhoneNumber)
	assert.Equal(t, "9876543210", st.UnmaskedPhoneNumber)
	assert.True(t, st.IsVerified)
}

func TestPickerTransitions(t *testing.T) {
	c, states := newController(t, Options{DefaultCountry: "US"})
	c.Type("555")

	c.OpenPicker()
	assert.Equal(t, Picking, c.Mode())

	c.SelectCountry("LT")
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, "LT", c.Selected().Code)
	assert.Equal(t, "", c.PhoneNumber())
	assert.Len(t, *states, 1, "selection reset is silent")
}

func TestSelectUnknownCountryFallsBackToDefault(t *testing.T) {
	c, _ := newController(t, Options{DefaultCountry: "US"})
	c.OpenPicker()
	c.SelectCountry("LT")
	c.Type("12345")

	c.OpenPicker()
	c.SelectCountry("ZZ")
	assert.Equal(t, "US", c.Selected().Code)
	assert.Equal(t, "", c.PhoneNumber())
	assert.Equal(t, Idle, c.Mode())
}

func TestSelectEmptyClosesOnly(t *testing.T) {
	c, _ := newController(t, Options{DefaultCountry: "US"})
	c.Type("555")
	c.OpenPicker()

	c.SelectCountry("")
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, "US", c.Selected().Code)
	assert.Equal(t, "(555", c.PhoneNumber())

	c.OpenPicker()
	c.ClosePicker()
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, "(555", c.PhoneNumber())
}

func TestDisableCountryChange(t *testing.T) {
	c, _ := newController(t, Options{DisableCountryChange: true})
	c.OpenPicker()
	assert.Equal(t, Idle, c.Mode())
}

func TestSearch(t *testing.T) {
	c, _ := newController(t, Options{Lang: "ru"})
	c.OpenPicker()

	c.Search("ЛИТ")
	assert.Equal(t, Picking, c.Mode())
	require.Len(t, c.Filtered(), 1)
	assert.Equal(t, "LT", c.Filtered()[0].Code)

	c.Search("+9")
	assert.Len(t, c.Filtered(), 2)

	c.Search("")
	assert.Len(t, c.Filtered(), 4)

	c.ClosePicker()
	c.Search("india")
	assert.Equal(t, Idle, c.Mode(), "search never opens the picker")
	assert.Empty(t, c.Filtered(), "name field follows the ru language key")
}

func TestPickerCapability(t *testing.T) {
	p := &recordingPicker{}
	c, err := New(testCatalog(t), Options{DefaultCountry: "US", Picker: p})
	require.NoError(t, err)

	require.Len(t, p.calls, 1)
	assert.False(t, p.last().visible)

	c.OpenPicker()
	assert.True(t, p.last().visible)
	assert.Equal(t, []string{"TR", "US", "IN", "LT"}, p.last().codes)

	c.Search("tur")
	assert.True(t, p.last().visible)
	assert.Equal(t, []string{"TR"}, p.last().codes)

	p.onSelect("TR")
	assert.Equal(t, "TR", c.Selected().Code)
	assert.Equal(t, Idle, c.Mode())
	assert.False(t, p.last().visible)

	c.OpenPicker()
	p.onSelect("")
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, "TR", c.Selected().Code)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "picking", Picking.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
