package country

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatPopulation groups thousands, e.g. 66710000 -> "66,710,000".
func FormatPopulation(n int64) string {
	return printer.Sprintf("%d", n)
}

// JoinNames joins names with ", ".
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
