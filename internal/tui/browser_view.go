package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/countrydex/internal/country"
)

const (
	appTitle        = "Where in the world?"
	regionAllLabel  = "Filter by Region"
	colWidthName    = 34
	colWidthPop     = 15
	colWidthRegion  = 10
	colWidthCapital = 22
	truncateSuffix  = "..."
	factLabelWidth  = 20
	listHelpText    = "[/] Search  [Tab] Region  [↑↓/jk] Navigate  [Enter] Details  []] Forward  [q] Quit"
	searchHelpText  = "Type to filter  [Enter/Esc] Done  [Tab] Region"
	detailHelpText  = "[Esc/⌫] Back  []] Forward  [Tab/←→] Border  [Enter] Open border  [q] Quit"
)

// View implements tea.Model.
func (m *BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderCountryDetail(m.detail, m.borderFocus, m.width),
			SubtleStyle.Render(detailHelpText),
		)
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *BrowserModel) renderListView() string {
	search := m.search.View()
	if m.search.Value() == "" && !m.searching {
		search = SubtleStyle.Render(m.search.Placeholder)
	}

	region := regionAllLabel
	if r := m.Region(); r != "" {
		region = r
	}

	header := fmt.Sprintf("%-*s  %*s  %-*s  %-*s",
		colWidthName, "Country",
		colWidthPop, "Population",
		colWidthRegion, "Region",
		colWidthCapital, "Capital",
	)

	help := listHelpText
	if m.searching {
		help = searchHelpText
	}

	body := m.list.View()
	if len(m.visible) == 0 {
		body = SubtleStyle.Render("No countries match.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(appTitle),
		LabelStyle.Render("Search: ")+search,
		LabelStyle.Render("Region: ")+"◂ "+ValueStyle.Render(region)+" ▸",
		SubtleStyle.Render(fmt.Sprintf("%d of %d countries", len(m.visible), m.catalog.Len())),
		ListHeaderStyle.Render(header),
		body,
		"",
		SubtleStyle.Render(help),
	)
}

// renderCountryRow renders one list card as a table row.
func renderCountryRow(c country.Country, selected bool) string {
	row := fmt.Sprintf("%-*s  %*s  %-*s  %-*s",
		colWidthName, truncate(c.Name, colWidthName),
		colWidthPop, country.FormatPopulation(c.Population),
		colWidthRegion, truncate(c.Region, colWidthRegion),
		colWidthCapital, truncate(c.Capital, colWidthCapital),
	)
	if selected {
		return SelectedRowStyle.Render(row)
	}
	return row
}

// RenderCountryDetail renders the detail card. focus is the index of the
// highlighted border button; pass -1 for none.
func RenderCountryDetail(view country.DetailView, focus, width int) string {
	var content strings.Builder

	content.WriteString(SubtleStyle.Render("←  Back"))
	content.WriteString("\n\n")
	content.WriteString(HeaderStyle.Render(view.Country.Name))
	content.WriteString("\n\n")

	writeFact(&content, "Flag", view.Country.Flag)
	for _, f := range view.Facts {
		writeFact(&content, f.Label, f.Value)
	}

	if view.HasBorders() {
		buttons := make([]string, 0, len(view.Borders))
		for i, b := range view.Borders {
			style := ButtonStyle
			if i == focus {
				style = FocusedButtonStyle
			}
			buttons = append(buttons, style.Render(b.Name))
		}
		content.WriteString("\n")
		content.WriteString(LabelStyle.Render("Border Countries:"))
		content.WriteString("\n")
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	boxWidth := width - borderPadding
	if boxWidth < 1 {
		boxWidth = defaultWidth - borderPadding
	}
	return BoxStyle.Width(boxWidth).Render(content.String())
}

// RenderCountryList renders the filtered list as static text for
// non-interactive styled output.
func RenderCountryList(countries []country.Country) string {
	if len(countries) == 0 {
		return InfoStyle.Render("No countries match.")
	}
	rows := make([]string, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, renderCountryRow(c, false))
	}
	header := fmt.Sprintf("%-*s  %*s  %-*s  %-*s",
		colWidthName, "Country",
		colWidthPop, "Population",
		colWidthRegion, "Region",
		colWidthCapital, "Capital",
	)
	return ListHeaderStyle.Render(header) + "\n" + strings.Join(rows, "\n") + "\n"
}

func writeFact(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", factLabelWidth, label+":")))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-len(truncateSuffix)]) + truncateSuffix
}
