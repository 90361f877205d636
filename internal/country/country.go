package country

import "encoding/json"

// Currency is a currency used by a country.
type Currency struct {
	Code   string `json:"code,omitempty"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Language is a language spoken in a country.
type Language struct {
	Name       string `json:"name"`
	NativeName string `json:"nativeName,omitempty"`
}

// Country is a single record of the public dataset. Records are read-only
// after decoding.
type Country struct {
	Name           string     `json:"name"`
	NativeName     string     `json:"nativeName"`
	Population     int64      `json:"population"`
	Region         string     `json:"region"`
	SubRegion      string     `json:"subregion"`
	Capital        string     `json:"capital"`
	Flag           string     `json:"flag"`
	TopLevelDomain []string   `json:"topLevelDomain"`
	Currencies     []Currency `json:"currencies"`
	Languages      []Language `json:"languages"`
	Borders        []string   `json:"borders"`
	Alpha3Code     string     `json:"alpha3Code"`
}

// UnmarshalJSON accepts the "subRegion" spelling and the newer "flags" object
// some mirrors of the dataset serve.
func (c *Country) UnmarshalJSON(data []byte) error {
	type Alias Country
	aux := struct {
		*Alias

		SubRegionAlt string `json:"subRegion"`
		Flags        struct {
			SVG string `json:"svg"`
			PNG string `json:"png"`
		} `json:"flags"`
	}{Alias: (*Alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.SubRegion == "" {
		c.SubRegion = aux.SubRegionAlt
	}
	if c.Flag == "" {
		c.Flag = aux.Flags.SVG
		if c.Flag == "" {
			c.Flag = aux.Flags.PNG
		}
	}
	return nil
}

// CurrencyNames returns the currency names in dataset order.
func (c *Country) CurrencyNames() []string {
	names := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		names = append(names, cur.Name)
	}
	return names
}

// LanguageNames returns the language names in dataset order.
func (c *Country) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		names = append(names, lang.Name)
	}
	return names
}
