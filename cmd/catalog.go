package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/achievements"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect achievement catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the achievements in use (built-in or --catalog)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-18s  %-24s  %-24s  %9s  %s\n", "ID", "Name", "Condition", "Threshold", "Rarity")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, d := range catalog {
			fmt.Fprintf(out, "%-18s  %-24s  %-24s  %9d  %s\n",
				d.ID, truncate(d.Name, 24), d.Condition, d.Threshold, d.Rarity.DisplayName())
		}
		fmt.Fprintf(out, "\n%d achievements\n", len(catalog))
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := achievements.LoadCatalog(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d achievements, valid\n", args[0], len(catalog))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
