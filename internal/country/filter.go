package country

import "strings"

// Query is the state of the list controls.
type Query struct {
	// Search is matched against the start of each name word, ignoring case.
	Search string
	// Region must equal the country's region exactly. Empty means all.
	Region string
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Region == ""
}

// Matches applies both predicates.
func (q Query) Matches(c *Country) bool {
	if q.Region != "" && c.Region != q.Region {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	for _, word := range strings.Fields(c.Name) {
		if strings.HasPrefix(strings.ToLower(word), term) {
			return true
		}
	}
	return false
}

// Filter returns the countries matching q, preserving input order.
func Filter(countries []Country, q Query) []Country {
	if q.IsZero() {
		return countries
	}
	out := make([]Country, 0, len(countries))
	for i := range countries {
		if q.Matches(&countries[i]) {
			out = append(out, countries[i])
		}
	}
	return out
}

// Filter is Filter over the whole catalog.
func (c *Catalog) Filter(q Query) []Country {
	return Filter(c.countries, q)
}
