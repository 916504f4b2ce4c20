// Package country holds the static country catalog: dial codes, flags,
// phone masks and display names in every supported widget language.
//
// A Catalog is immutable once loaded and safe to share. The compiled-in
// catalog is available through Default(); tests and hosts may build their own
// with New or Load.
package country

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/minios-linux/phonekit/mask"
	"github.com/nyaruka/phonenumbers"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FallbackCode is the country used when a requested code is not in the catalog.
// Every catalog must contain it.
const FallbackCode = "TR"

var (
	// ErrFallbackMissing means the catalog has no FallbackCode entry.
	ErrFallbackMissing = errors.New("fallback country " + FallbackCode + " missing from catalog")
	// ErrInvalidRecord means a record failed structural validation.
	ErrInvalidRecord = errors.New("invalid country record")
)

//go:embed countries.yaml
var builtin []byte

// Names holds one display name per supported language.
type Names struct {
	En string `yaml:"en" json:"en"`
	Ru string `yaml:"ru" json:"ru"`
	Lt string `yaml:"lt" json:"lt"`
	Tr string `yaml:"tr" json:"tr"`
}

// Record is one catalog entry.
type Record struct {
	Code     string `yaml:"code" json:"code"`
	DialCode string `yaml:"dial_code" json:"dialCode"`
	Mask     string `yaml:"mask" json:"mask"`
	Flag     string `yaml:"flag,omitempty" json:"flag"`
	Names    Names  `yaml:"names" json:"names"`
}

// Name returns the display name for lang ("en", "ru", "lt", "tr").
// ok is false for any other key.
func (r Record) Name(lang string) (name string, ok bool) {
	switch lang {
	case "en":
		return r.Names.En, true
	case "ru":
		return r.Names.Ru, true
	case "lt":
		return r.Names.Lt, true
	case "tr":
		return r.Names.Tr, true
	}
	return "", false
}

// DisplayName is Name with an English fallback for unknown or empty entries.
func (r Record) DisplayName(lang string) string {
	if name, ok := r.Name(lang); ok && name != "" {
		return name
	}
	return r.Names.En
}

// Catalog is an ordered, read-only set of country records.
type Catalog struct {
	records []Record
	index   map[string]int
}

// catalogFile is the YAML schema of countries.yaml.
type catalogFile struct {
	Countries []Record `yaml:"countries"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the compiled-in catalog. It is parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(builtin)
	})
	return defaultCatalog, defaultErr
}

// Load parses a YAML catalog and validates it.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing country catalog: %w", err)
	}
	return New(f.Countries)
}

// New builds a catalog from records, keeping their order.
//
// Records are validated up front: codes must be unique, every mask needs at
// least one digit position, dial codes look like "+<digits>" and agree with
// libphonenumber for regions it knows, and FallbackCode must be present.
// Empty flags are derived from the ISO code.
func New(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}

	for i, r := range records {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("record #%d: %w", i+1, err)
		}
		if _, dup := c.index[r.Code]; dup {
			return nil, fmt.Errorf("record #%d: %w: duplicate code %q", i+1, ErrInvalidRecord, r.Code)
		}
		if r.Flag == "" {
			r.Flag = FlagEmoji(r.Code)
		}
		c.index[r.Code] = len(c.records)
		c.records = append(c.records, r)
	}

	if _, ok := c.index[FallbackCode]; !ok {
		return nil, ErrFallbackMissing
	}

	log.WithFields(log.Fields{
		"countries": len(c.records),
		"fallback":  FallbackCode,
	}).Debug("Country catalog loaded")

	return c, nil
}

func validate(r Record) error {
	if r.Code == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidRecord)
	}
	if mask.PlaceholderCount(r.Mask) == 0 {
		return fmt.Errorf("%w: %s: mask %q has no digit positions", ErrInvalidRecord, r.Code, r.Mask)
	}

	digits, ok := strings.CutPrefix(r.DialCode, "+")
	if !ok || digits == "" || mask.Digits(digits) != digits {
		return fmt.Errorf("%w: %s: dial code %q is not +<digits>", ErrInvalidRecord, r.Code, r.DialCode)
	}

	// Regions unknown to libphonenumber report 0 and are accepted as is.
	if cc := phonenumbers.GetCountryCodeForRegion(r.Code); cc != 0 && strconv.Itoa(cc) != digits {
		return fmt.Errorf("%w: %s: dial code %s, libphonenumber has +%d", ErrInvalidRecord, r.Code, r.DialCode, cc)
	}
	return nil
}

// Records returns a copy of the catalog in order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Lookup finds a record by exact, case-sensitive ISO code.
func (c *Catalog) Lookup(code string) (Record, bool) {
	i, ok := c.index[code]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// FlagEmoji converts an ISO alpha-2 code to its regional indicator flag.
// Anything that is not two ASCII letters yields "🌐".
func FlagEmoji(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "🌐"
	}
	// A = U+1F1E6 ... Z = U+1F1FF
	first := rune(0x1F1E6 + int32(code[0]-'A'))
	second := rune(0x1F1E6 + int32(code[1]-'A'))
	return string([]rune{first, second})
}
