package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/countrydex/internal/config"
)

// NewShowCmd creates the "show" command that prints one country's details.
func NewShowCmd() *cobra.Command {
	var (
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "show CODE",
		Short: "Show one country by its alpha-3 code",
		Long: `Prints the detail view of a country: native name, population, region,
sub region, capital, top level domains, currencies, languages and the
border countries found in the dataset.`,
		Example: `  # France and its neighbours
  countrydex show FRA

  # Codes are case-insensitive
  countrydex show deu --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := config.GetOutputFormat(output)
			if !isValidOutputFormat(format) {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			ctx := cmd.Context()
			cat, err := loadCatalog(ctx)
			if err != nil {
				return err
			}

			view, err := cat.Detail(args[0])
			if err != nil {
				return err
			}
			for _, code := range view.MissingBorders {
				logger.Warn().Ctx(ctx).
					Str("country", view.Country.Alpha3Code).
					Str("border", code).
					Msg("border country missing from dataset, skipping")
			}

			return RenderCountryDetail(cmd.OutOrStdout(), format, plain, view)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format (table, json, ndjson)")
	cmd.Flags().BoolVar(&plain, "plain", false, "force plain text output")

	return cmd
}
