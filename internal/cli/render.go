package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// isValidOutputFormat checks if the provided format is one of the supported output formats.
func isValidOutputFormat(format string) bool {
	switch format {
	case outputTable, outputJSON, outputNDJSON:
		return true
	default:
		return false
	}
}

// RenderCountryList routes a filtered list to the renderer for format. Table
// output is styled on a terminal and plain otherwise.
func RenderCountryList(w io.Writer, format string, plain bool, countries []country.Country) error {
	switch format {
	case outputJSON:
		return writeIndentedJSON(w, countries)
	case outputNDJSON:
		return renderCountriesAsNDJSON(w, countries)
	case outputTable:
		if tui.DetectOutputMode(false, false, plain) == tui.OutputModePlain {
			return renderCountriesAsTable(w, countries)
		}
		_, err := fmt.Fprintln(w, tui.RenderCountryList(countries))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderCountryDetail routes a detail view to the renderer for format.
func RenderCountryDetail(w io.Writer, format string, plain bool, view country.DetailView) error {
	switch format {
	case outputJSON:
		return writeIndentedJSON(w, view)
	case outputNDJSON:
		return writeJSONLine(w, view)
	case outputTable:
		if tui.DetectOutputMode(false, false, plain) == tui.OutputModePlain {
			return renderDetailAsText(w, view)
		}
		_, err := fmt.Fprintln(w, tui.RenderCountryDetail(view, -1, tui.TerminalWidth()))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderCountriesAsTable(w io.Writer, countries []country.Country) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "CODE\tNAME\tPOPULATION\tREGION\tCAPITAL\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t----------\t------\t-------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, c := range countries {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.Alpha3Code, c.Name, country.FormatPopulation(c.Population), c.Region, c.Capital); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d countries\n", len(countries))
	return err
}

func renderDetailAsText(w io.Writer, view country.DetailView) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\n\n", view.Country.Name); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "Flag:\t%s\n", view.Country.Flag); err != nil {
		return fmt.Errorf("writing flag: %w", err)
	}
	for _, f := range view.Facts {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value); err != nil {
			return fmt.Errorf("writing fact %q: %w", f.Label, err)
		}
	}
	if view.HasBorders() {
		names := make([]string, 0, len(view.Borders))
		for _, b := range view.Borders {
			names = append(names, fmt.Sprintf("%s (%s)", b.Name, b.Code))
		}
		if _, err := fmt.Fprintf(tw, "Border Countries:\t%s\n", strings.Join(names, ", ")); err != nil {
			return fmt.Errorf("writing borders: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing detail: %w", err)
	}
	return nil
}

func renderCountriesAsNDJSON(w io.Writer, countries []country.Country) error {
	for _, c := range countries {
		if err := writeJSONLine(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling row: %w", err)
	}
	if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("writing NDJSON line: %w", err)
	}
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
