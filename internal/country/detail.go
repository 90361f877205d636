package country

// Fact is one labelled value of a rendered card.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Border is a resolved neighbour.
type Border struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DetailView is everything the detail renderers need for one country.
type DetailView struct {
	Country *Country `json:"country"`
	Facts   []Fact   `json:"facts"`
	Borders []Border `json:"borders"`
	// MissingBorders lists border codes absent from the catalog. They get no
	// button.
	MissingBorders []string `json:"missingBorders,omitempty"`
}

// HasBorders reports whether a border row should be rendered.
func (d DetailView) HasBorders() bool {
	return len(d.Borders) > 0
}

// SummaryFacts are the facts shown on a list card.
func SummaryFacts(c *Country) []Fact {
	return []Fact{
		{Label: "Population", Value: FormatPopulation(c.Population)},
		{Label: "Region", Value: c.Region},
		{Label: "Capital", Value: c.Capital},
	}
}

// DetailFacts are the facts shown on the detail card. Region and Sub Region
// are omitted when empty.
func DetailFacts(c *Country) []Fact {
	facts := []Fact{
		{Label: "Native Name", Value: c.NativeName},
		{Label: "Population", Value: FormatPopulation(c.Population)},
	}
	if c.Region != "" {
		facts = append(facts, Fact{Label: "Region", Value: c.Region})
	}
	if c.SubRegion != "" {
		facts = append(facts, Fact{Label: "Sub Region", Value: c.SubRegion})
	}
	facts = append(facts, Fact{Label: "Capital", Value: c.Capital})

	if len(c.TopLevelDomain) == 1 {
		facts = append(facts, Fact{Label: "Top Level Domain", Value: c.TopLevelDomain[0]})
	} else {
		facts = append(facts, Fact{Label: "Top Level Domains", Value: JoinNames(c.TopLevelDomain)})
	}

	facts = append(facts,
		Fact{Label: "Currencies", Value: JoinNames(c.CurrencyNames())},
		Fact{Label: "Languages", Value: JoinNames(c.LanguageNames())},
	)
	return facts
}

// NewDetailView builds the detail projection of country, resolving borders
// against the catalog in the order the dataset lists them.
func (c *Catalog) NewDetailView(country *Country) DetailView {
	view := DetailView{
		Country: country,
		Facts:   DetailFacts(country),
		Borders: make([]Border, 0, len(country.Borders)),
	}
	for _, code := range country.Borders {
		neighbour, ok := c.Lookup(code)
		if !ok {
			view.MissingBorders = append(view.MissingBorders, code)
			continue
		}
		view.Borders = append(view.Borders, Border{Code: neighbour.Alpha3Code, Name: neighbour.Name})
	}
	return view
}

// Detail looks up code and builds its detail projection.
func (c *Catalog) Detail(code string) (DetailView, error) {
	country, err := c.Get(code)
	if err != nil {
		return DetailView{}, err
	}
	return c.NewDetailView(country), nil
}
