package country

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a code has no entry in the catalog.
var ErrNotFound = errors.New("country not found")

// Catalog is the loaded collection in dataset order plus a lookup by alpha-3
// code. It is never mutated after NewCatalog returns.
type Catalog struct {
	countries []Country
	byCode    map[string]*Country
	regions   []string
}

// NewCatalog indexes countries by alpha-3 code. When two records share a code
// the later one wins. Records without a code are listed but not addressable.
func NewCatalog(countries []Country) *Catalog {
	c := &Catalog{
		countries: countries,
		byCode:    make(map[string]*Country, len(countries)),
	}

	seen := make(map[string]struct{})
	for i := range c.countries {
		country := &c.countries[i]
		if country.Alpha3Code != "" {
			c.byCode[normalizeCode(country.Alpha3Code)] = country
		}
		if country.Region == "" {
			continue
		}
		if _, ok := seen[country.Region]; !ok {
			seen[country.Region] = struct{}{}
			c.regions = append(c.regions, country.Region)
		}
	}
	sort.Strings(c.regions)

	return c
}

// All returns every country in dataset order. Callers must not modify it.
func (c *Catalog) All() []Country {
	return c.countries
}

// Len returns the number of countries.
func (c *Catalog) Len() int {
	return len(c.countries)
}

// Regions returns the distinct non-empty regions, sorted.
func (c *Catalog) Regions() []string {
	return c.regions
}

// Lookup returns the country with the given alpha-3 code.
func (c *Catalog) Lookup(code string) (*Country, bool) {
	country, ok := c.byCode[normalizeCode(code)]
	return country, ok
}

// Get is Lookup returning ErrNotFound for unknown codes.
func (c *Catalog) Get(code string) (*Country, error) {
	country, ok := c.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, code)
	}
	return country, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
