package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/logging"
	"github.com/rshade/countrydex/internal/nav"
	listview "github.com/rshade/countrydex/internal/tui/list"
)

// CatalogFetcher loads the dataset. It is called once, from a Bubble Tea
// command, so it may block.
type CatalogFetcher func(ctx context.Context) (*country.Catalog, error)

// catalogLoadedMsg carries the result of the initial fetch.
type catalogLoadedMsg struct {
	catalog *country.Catalog
	err     error
}

// BrowserOptions seeds the list controls.
type BrowserOptions struct {
	Search string
	Region string
	Logger zerolog.Logger
}

// BrowserModel is the Bubble Tea model for browsing countries: a filtered list
// and a detail view, linked by a session history.
type BrowserModel struct {
	state   ViewState
	catalog *country.Catalog
	history *nav.History

	// List view
	visible   []country.Country
	list      *listview.VirtualListModel[country.Country]
	search    textinput.Model
	searching bool
	regions   []string // index 0 is "all"
	regionIdx int

	// Detail view
	detail      country.DetailView
	borderFocus int

	width  int
	height int

	loading  *LoadingState
	fetchCmd tea.Cmd
	logger   zerolog.Logger
	err      error
}

// NewBrowserModel returns a model that starts in the loading state and runs
// fetcher once from Init.
func NewBrowserModel(ctx context.Context, fetcher CatalogFetcher, opts BrowserOptions) *BrowserModel {
	m := newBrowserModel(opts)
	m.state = ViewStateLoading
	m.loading = NewLoadingState()
	m.fetchCmd = func() tea.Msg {
		cat, err := fetcher(ctx)
		return catalogLoadedMsg{catalog: cat, err: err}
	}
	return m
}

// NewBrowserModelWithCatalog returns a model over an already loaded catalog,
// starting at the list view.
func NewBrowserModelWithCatalog(cat *country.Catalog, opts BrowserOptions) *BrowserModel {
	m := newBrowserModel(opts)
	m.setCatalog(cat)
	return m
}

func newBrowserModel(opts BrowserOptions) *BrowserModel {
	m := &BrowserModel{
		history: nav.NewHistory(),
		search:  newSearchInput(),
		regions: []string{""},
		width:   defaultWidth,
		height:  defaultHeight,
		logger:  logging.ComponentLogger(opts.Logger, "tui"),
	}
	m.search.SetValue(opts.Search)
	if opts.Region != "" {
		m.regions = append(m.regions, opts.Region)
		m.regionIdx = 1
	}
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a country..."
	ti.Prompt = ""
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// setCatalog installs the loaded data and renders the initial list.
func (m *BrowserModel) setCatalog(cat *country.Catalog) {
	m.catalog = cat

	selected := m.Region()
	m.regions = append([]string{""}, cat.Regions()...)
	m.regionIdx = 0
	for i, r := range m.regions {
		if r == selected {
			m.regionIdx = i
		}
	}
	if selected != "" && m.regionIdx == 0 {
		// A region requested up front that the data does not have stays
		// selected and simply matches nothing.
		m.regions = append(m.regions, selected)
		m.regionIdx = len(m.regions) - 1
	}

	m.state = ViewStateList
	m.list = listview.NewVirtualListModel[country.Country](nil, m.listHeight(), m.width, renderCountryRow)
	m.applyFilter()
}

// Init implements tea.Model.
func (m *BrowserModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loading.Init(), m.fetchCmd)
	}
	return nil
}

// Update implements tea.Model.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		if m.list != nil {
			m.list.SetSize(m.width, m.listHeight())
		}
		return m, nil
	}

	if loadMsg, ok := msg.(catalogLoadedMsg); ok {
		return m.handleLoaded(loadMsg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *BrowserModel) handleLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// No retry and no error screen: the loading view stays up.
		m.err = msg.err
		m.logger.Error().Err(msg.err).Msg("loading countries failed")
		return m, nil
	}
	m.setCatalog(msg.catalog)
	m.logger.Debug().Int("countries", msg.catalog.Len()).Msg("catalog ready")
	return m, nil
}

func (m *BrowserModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			return m.quit()
		}
	}
	return m, m.loading.Update(msg)
}

// handleSearchInput re-filters on every keystroke.
func (m *BrowserModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			return m.quit()
		case keyEnter, keyEsc:
			m.searching = false
			m.search.Blur()
			return m, nil
		case keyTab, keyShiftTab:
			m.searching = false
			m.search.Blur()
			return m.handleListUpdate(msg)
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *BrowserModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keySlash:
		m.searching = true
		m.search.CursorEnd()
		return m, m.search.Focus()
	case keyTab:
		m.cycleRegion(1)
		return m, nil
	case keyShiftTab:
		m.cycleRegion(-1)
		return m, nil
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	case keyEnter:
		if c := m.list.SelectedItem(); c != nil {
			m.Open(c.Alpha3Code)
		}
		return m, nil
	case keyForward:
		m.Forward()
		return m, nil
	}

	_, cmd := m.list.Update(keyMsg)
	return m, cmd
}

func (m *BrowserModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keyEsc, keyBack, keyBackAlt:
		m.Back()
	case keyForward:
		m.Forward()
	case keyTab, keyRight, keyL:
		m.moveBorderFocus(1)
	case keyShiftTab, keyLeft, keyH:
		m.moveBorderFocus(-1)
	case keyEnter:
		if m.detail.HasBorders() {
			m.Open(m.detail.Borders[m.borderFocus].Code)
		}
	}
	return m, nil
}

func (m *BrowserModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	return m, tea.Quit
}

// Open pushes a history entry for code and shows its detail view. A code
// missing from the catalog pushes nothing.
func (m *BrowserModel) Open(code string) {
	if _, ok := m.catalog.Lookup(code); !ok {
		m.logger.Warn().Str("code", code).Msg("country not in dataset, not opening")
		return
	}
	m.history.Push(code)
	m.restore(m.history.Current())
}

// Back pops to the previous history entry, like the browser back button.
func (m *BrowserModel) Back() {
	if entry, ok := m.history.Back(); ok {
		m.restore(entry)
	}
}

// Forward re-applies the next history entry.
func (m *BrowserModel) Forward() {
	if entry, ok := m.history.Forward(); ok {
		m.restore(entry)
	}
}

// restore renders the view an entry describes. The record is looked up by
// code; an unknown code falls back to the list.
func (m *BrowserModel) restore(entry nav.Entry) {
	if entry.View() == nav.ViewList {
		m.state = ViewStateList
		m.applyFilter()
		return
	}

	view, err := m.catalog.Detail(entry.Code)
	if err != nil {
		m.logger.Warn().Err(err).Str("code", entry.Code).Msg("history entry has no country, showing list")
		m.state = ViewStateList
		m.applyFilter()
		return
	}
	for _, code := range view.MissingBorders {
		m.logger.Warn().
			Str("country", view.Country.Alpha3Code).
			Str("border", code).
			Msg("border country missing from dataset, skipping")
	}

	m.detail = view
	m.borderFocus = 0
	m.searching = false
	m.search.Blur()
	m.state = ViewStateDetail
}

func (m *BrowserModel) cycleRegion(step int) {
	n := len(m.regions)
	m.regionIdx = ((m.regionIdx+step)%n + n) % n
	m.applyFilter()
}

func (m *BrowserModel) moveBorderFocus(step int) {
	n := len(m.detail.Borders)
	if n == 0 {
		return
	}
	m.borderFocus = ((m.borderFocus+step)%n + n) % n
}

// applyFilter recomputes the visible list from the current controls.
func (m *BrowserModel) applyFilter() {
	if m.catalog == nil {
		return
	}
	m.visible = m.catalog.Filter(m.Query())
	m.list.SetItems(m.visible)
}

func (m *BrowserModel) listHeight() int {
	h := m.height - listChromeHeight
	if h < minHeight {
		h = minHeight
	}
	return h
}

// State returns the current view state.
func (m *BrowserModel) State() ViewState {
	return m.state
}

// Query returns the current list controls.
func (m *BrowserModel) Query() country.Query {
	return country.Query{Search: m.search.Value(), Region: m.Region()}
}

// Region returns the selected region, "" for all.
func (m *BrowserModel) Region() string {
	return m.regions[m.regionIdx]
}

// Visible returns the countries currently listed.
func (m *BrowserModel) Visible() []country.Country {
	return m.visible
}

// Detail returns the country shown in the detail view.
func (m *BrowserModel) Detail() country.DetailView {
	return m.detail
}

// History exposes the session history.
func (m *BrowserModel) History() *nav.History {
	return m.history
}

// Err returns the load error, if the fetch failed.
func (m *BrowserModel) Err() error {
	return m.err
}
