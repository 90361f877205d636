// Package listview provides a windowed, keyboard-navigable list for Bubble Tea
// programs. Only the rows inside the viewport are rendered, so re-rendering a
// list of a few hundred countries on every keystroke stays cheap.
package listview
