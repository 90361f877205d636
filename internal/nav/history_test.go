package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_StartsAtList(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, ViewList, h.Current().View())
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanGoBack())
	assert.False(t, h.CanGoForward())

	e, ok := h.Back()
	assert.False(t, ok)
	assert.Equal(t, Entry{}, e)
}

func TestHistory_PushBackForward(t *testing.T) {
	h := NewHistory()

	e := h.Push("FRA")
	assert.Equal(t, ViewDetail, e.View())
	assert.Equal(t, 2, h.Len(), "opening a country pushes exactly one entry")

	h.Push("DEU")
	assert.Equal(t, "DEU", h.Current().Code)

	e, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, "FRA", e.Code)

	e, ok = h.Back()
	assert.True(t, ok)
	assert.Equal(t, ViewList, e.View())

	e, ok = h.Forward()
	assert.True(t, ok)
	assert.Equal(t, "FRA", e.Code)
	assert.True(t, h.CanGoForward())
}

func TestHistory_PushDropsForwardEntries(t *testing.T) {
	h := NewHistory()
	h.Push("FRA")
	h.Push("DEU")
	h.Back()

	h.Push("ESP")

	assert.Equal(t, 3, h.Len())
	assert.False(t, h.CanGoForward())
	_, ok := h.Forward()
	assert.False(t, ok)
	assert.Equal(t, "ESP", h.Current().Code)
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "list", ViewList.String())
	assert.Equal(t, "detail", ViewDetail.String())
	assert.Equal(t, "unknown", View(9).String())
}
