package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/country/countrytest"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *BrowserModel, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		require.Same(t, m, updated)
	}
}

func visibleNames(m *BrowserModel) []string {
	out := []string{}
	for _, c := range m.Visible() {
		out = append(out, c.Name)
	}
	return out
}

func newListModel(t *testing.T, opts BrowserOptions) *BrowserModel {
	t.Helper()
	m := NewBrowserModelWithCatalog(countrytest.Catalog(), opts)
	require.Equal(t, ViewStateList, m.State())
	return m
}

// TestBrowserModel_LoadingToList verifies the loader completes before the first list render.
func TestBrowserModel_LoadingToList(t *testing.T) {
	calls := 0
	fetcher := func(context.Context) (*country.Catalog, error) {
		calls++
		return countrytest.Catalog(), nil
	}

	m := NewBrowserModel(context.Background(), fetcher, BrowserOptions{})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Loading...")
	require.NotNil(t, m.Init())

	msg := m.fetchCmd()
	send(t, m, msg)

	assert.Equal(t, 1, calls)
	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.Visible(), 6)
	assert.Contains(t, m.View(), "France")
	assert.Contains(t, m.View(), "66,710,000")
}

// TestBrowserModel_LoadFailureKeepsLoading verifies a failed fetch leaves the loading view up.
func TestBrowserModel_LoadFailureKeepsLoading(t *testing.T) {
	boom := errors.New("network down")
	m := NewBrowserModel(context.Background(), func(context.Context) (*country.Catalog, error) {
		return nil, boom
	}, BrowserOptions{})

	send(t, m, m.fetchCmd())

	assert.Equal(t, ViewStateLoading, m.State())
	assert.ErrorIs(t, m.Err(), boom)
	assert.Contains(t, m.View(), "Loading...")

	_, cmd := m.Update(runes("q"))
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.NotNil(t, cmd)
}

// TestBrowserModel_SearchFiltersPerKeystroke verifies each keystroke re-filters.
func TestBrowserModel_SearchFiltersPerKeystroke(t *testing.T) {
	m := newListModel(t, BrowserOptions{})

	send(t, m, runes("/"))
	require.True(t, m.searching)

	send(t, m, runes("s"))
	assert.Equal(t, []string{"Spain", "South Africa", "United States of America"}, visibleNames(m))

	send(t, m, runes("o"))
	assert.Equal(t, []string{"South Africa"}, visibleNames(m))

	send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.Visible(), 3)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "s", m.Query().Search, "leaving search keeps the text")

	send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Empty(t, m.Query().Search, "esc in the list clears the search")
	assert.Len(t, m.Visible(), 6)
}

// TestBrowserModel_SearchIsWordPrefix verifies "fra" does not match South Africa.
func TestBrowserModel_SearchIsWordPrefix(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	send(t, m, runes("/"), runes("f"), runes("r"), runes("a"))

	assert.Equal(t, []string{"France"}, visibleNames(m))
}

// TestBrowserModel_RegionCycling verifies Tab walks the sorted regions and wraps.
func TestBrowserModel_RegionCycling(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	send(t, m, tab)
	assert.Equal(t, "Africa", m.Region())
	assert.Equal(t, []string{"South Africa"}, visibleNames(m))

	send(t, m, tab, tab)
	assert.Equal(t, "Europe", m.Region())
	assert.Equal(t, []string{"France", "Germany", "Spain"}, visibleNames(m))

	send(t, m, tab)
	assert.Empty(t, m.Region())
	assert.Len(t, m.Visible(), 6)

	send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Europe", m.Region())
	assert.Contains(t, m.View(), "Europe")
}

// TestBrowserModel_UnknownRegionIsEmpty verifies an unmatched region renders an empty list.
func TestBrowserModel_UnknownRegionIsEmpty(t *testing.T) {
	m := newListModel(t, BrowserOptions{Region: "Atlantis"})

	assert.Equal(t, "Atlantis", m.Region())
	assert.Empty(t, m.Visible())
	assert.Contains(t, m.View(), "No countries match.")

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateList, m.State(), "enter on an empty list does nothing")
}

// TestBrowserModel_OpenAndBack verifies one push per open and that back keeps the controls.
func TestBrowserModel_OpenAndBack(t *testing.T) {
	m := newListModel(t, BrowserOptions{Search: "s", Region: "Europe"})
	require.Equal(t, []string{"Spain"}, visibleNames(m))

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.State())
	assert.Equal(t, 2, m.History().Len())
	assert.Equal(t, "Spain", m.Detail().Country.Name)
	assert.Contains(t, m.View(), "Madrid")

	send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, country.Query{Search: "s", Region: "Europe"}, m.Query())
	assert.Equal(t, []string{"Spain"}, visibleNames(m))

	send(t, m, runes("]"))
	assert.Equal(t, ViewStateDetail, m.State(), "forward restores the detail entry")
	assert.Equal(t, "ESP", m.History().Current().Code)
}

// TestBrowserModel_BorderNavigation follows France -> Spain through border buttons.
func TestBrowserModel_BorderNavigation(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "France", m.Detail().Country.Name)

	view := m.View()
	assert.Contains(t, view, "Germany")
	assert.Contains(t, view, "Spain")
	assert.Contains(t, view, "Border Countries")

	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.borderFocus)
	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.borderFocus, "focus wraps")
	send(t, m, runes("h"))
	assert.Equal(t, 1, m.borderFocus)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Spain", m.Detail().Country.Name)
	assert.Equal(t, 3, m.History().Len())
	assert.Equal(t, []string{"AND"}, m.Detail().MissingBorders)
	assert.Equal(t, 0, m.borderFocus)

	send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "France", m.Detail().Country.Name)

	send(t, m, runes("["))
	assert.Equal(t, ViewStateList, m.State())

	send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, ViewStateList, m.State(), "back at the start of history stays on the list")
}

// TestBrowserModel_NoBordersNoButtons verifies a country without borders renders no border row.
func TestBrowserModel_NoBordersNoButtons(t *testing.T) {
	m := newListModel(t, BrowserOptions{Search: "south"})
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "South Africa", m.Detail().Country.Name)
	assert.NotContains(t, m.View(), "Border Countries")

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.History().Len(), "enter without borders pushes nothing")
}

// TestBrowserModel_UnknownCodeFallsBackToList verifies restoring a stale entry shows the list.
func TestBrowserModel_UnknownCodeFallsBackToList(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	m.history.Push("XXX")
	m.Back()
	m.Forward()

	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, "XXX", m.History().Current().Code)
}

func TestBrowserModel_OpenUnknownCodePushesNothing(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	m.Open("XXX")

	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, 1, m.History().Len())
	assert.False(t, m.History().CanGoBack())
}

func TestBrowserModel_EnterOnRecordWithoutCode(t *testing.T) {
	catalog := country.NewCatalog([]country.Country{{Name: "Nowhere", Region: "Oceania"}})
	m := NewBrowserModelWithCatalog(catalog, BrowserOptions{})
	require.Equal(t, []string{"Nowhere"}, visibleNames(m))

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, 1, m.History().Len())
	assert.False(t, m.History().CanGoBack())
}

func TestBrowserModel_WindowResize(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40-listChromeHeight, m.list.Height())
}

func TestBrowserModel_Quit(t *testing.T) {
	m := newListModel(t, BrowserOptions{})
	_, cmd := m.Update(runes("q"))

	assert.Equal(t, ViewStateQuitting, m.State())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestViewState_String(t *testing.T) {
	assert.Equal(t, "loading", ViewStateLoading.String())
	assert.Equal(t, "list", ViewStateList.String())
	assert.Equal(t, "detail", ViewStateDetail.String())
	assert.Equal(t, "quitting", ViewStateQuitting.String())
	assert.Equal(t, "unknown", ViewState(42).String())
}
