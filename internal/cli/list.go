package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/countrydex/internal/config"
	"github.com/rshade/countrydex/internal/country"
)

// listParams holds the parameters for the list command.
type listParams struct {
	search string
	region string
	output string
	plain  bool
}

// NewListCmd creates the "list" command that prints the filtered list.
func NewListCmd() *cobra.Command {
	var params listParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries, optionally filtered",
		Long: `Prints every country that matches the search text and region.

The search matches when any word of a country's name starts with the text,
ignoring case. The region must match exactly. An unknown region prints an
empty list.`,
		Example: `  # All countries
  countrydex list

  # Countries with a word starting with "un"
  countrydex list --search un

  # European countries, one JSON object per line
  countrydex list --region Europe --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeList(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.search, "search", "s", "", "word prefix to search country names for")
	cmd.Flags().StringVarP(&params.region, "region", "r", "", "exact region to keep")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format (table, json, ndjson)")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "force plain text table output")

	return cmd
}

func executeList(cmd *cobra.Command, params listParams) error {
	format := config.GetOutputFormat(params.output)
	if !isValidOutputFormat(format) {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	ctx := cmd.Context()
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	countries := cat.Filter(country.Query{Search: params.search, Region: params.region})
	logger.Debug().Ctx(ctx).
		Str("search", params.search).
		Str("region", params.region).
		Int("matches", len(countries)).
		Msg("list filtered")

	return RenderCountryList(cmd.OutOrStdout(), format, params.plain, countries)
}
