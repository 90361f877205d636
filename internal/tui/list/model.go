package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one row. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a scrolling list over items. The selected row is always
// inside the window [offset, offset+height).
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	offset     int
	height     int
	width      int
}

// NewVirtualListModel returns a list showing height rows at a time.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	if height < 1 {
		height = 1
	}
	return &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			m.SetSelected(m.selected + 1)
		case "k":
			m.SetSelected(m.selected - 1)
		case "g":
			m.SetSelected(0)
		case "G":
			m.SetSelected(len(m.items) - 1)
		}
	}
}

// SetItems replaces the items, keeping the selection index where possible.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize changes the viewport.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.scrollToSelection()
}

// SetSelected moves the selection, clamped to the items.
func (m *VirtualListModel[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0 || index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.scrollToSelection()
}

func (m *VirtualListModel[T]) scrollToSelection() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	if maxOffset := len(m.items) - m.height; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the rows inside the window.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := m.offset + m.height
	if end > len(m.items) {
		end = len(m.items)
	}

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// Offset returns the index of the first visible row.
func (m *VirtualListModel[T]) Offset() int {
	return m.offset
}

// Height returns the viewport height in rows.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width in columns.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// SelectedItem returns the selected item, or nil when the list is empty.
func (m *VirtualListModel[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
