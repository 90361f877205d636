package tui

// ViewState is the screen a model is currently showing.
type ViewState int

const (
	// ViewStateLoading waits for the dataset.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the filtered country list.
	ViewStateList
	// ViewStateDetail shows one country.
	ViewStateDetail
	// ViewStateQuitting is entered right before tea.Quit.
	ViewStateQuitting
)

// String implements fmt.Stringer.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyBack     = "backspace"
	keyBackAlt  = "["
	keyForward  = "]"
)

// Layout constants.
const (
	defaultWidth         = 100
	defaultHeight        = 30
	minHeight            = 5
	borderPadding        = 2
	listChromeHeight     = 8
	filterInputCharLimit = 64
	filterInputWidth     = 40
)
