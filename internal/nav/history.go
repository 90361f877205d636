// Package nav models the LIST/DETAIL navigation of the browser as a history
// stack. Entries carry a country code only; the record is looked up again
// whenever an entry becomes current.
package nav

// View identifies which of the two views an entry shows.
type View int

const (
	// ViewList is the filtered list of all countries.
	ViewList View = iota
	// ViewDetail is a single country.
	ViewDetail
)

// String implements fmt.Stringer.
func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Entry is one history state. An empty Code is the list view.
type Entry struct {
	Code string
}

// View returns the view this entry restores.
func (e Entry) View() View {
	if e.Code == "" {
		return ViewList
	}
	return ViewDetail
}

// History is a browser-style session history. The zero value is not usable;
// call NewHistory.
type History struct {
	entries []Entry
	cursor  int
}

// NewHistory starts a history at the list view.
func NewHistory() *History {
	return &History{entries: []Entry{{}}}
}

// Current returns the active entry.
func (h *History) Current() Entry {
	return h.entries[h.cursor]
}

// Push makes a detail entry for code current and drops any forward entries.
func (h *History) Push(code string) Entry {
	h.entries = append(h.entries[:h.cursor+1], Entry{Code: code})
	h.cursor++
	return h.Current()
}

// Back moves one entry back. It reports false at the start of history.
func (h *History) Back() (Entry, bool) {
	if !h.CanGoBack() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Forward moves one entry forward. It reports false at the end of history.
func (h *History) Forward() (Entry, bool) {
	if !h.CanGoForward() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool {
	return h.cursor > 0
}

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of entries, including forward ones.
func (h *History) Len() int {
	return len(h.entries)
}
