package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegionsCmd creates the "regions" command listing the region filter values.
func NewRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions present in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			for _, region := range cat.Regions() {
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), region); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
