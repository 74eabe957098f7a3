package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/importer"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage flashcards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <front> <back>",
	Short: "Create a card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.currentUser(cmd)
		if err != nil {
			return err
		}
		res, err := a.svc.CreateCard(cmd.Context(), u.ID, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created card %s  +%d XP\n", res.Card.ID, res.XP)
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.currentUser(cmd)
		if err != nil {
			return err
		}
		cards, err := a.svc.ListCards(cmd.Context(), u.ID)
		if err != nil {
			return err
		}
		out := a.out
		if len(cards) == 0 {
			fmt.Fprintln(out, "No cards yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-30s  %s\n", "ID", "Front", "Back")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, c := range cards {
			fmt.Fprintf(out, "%-36s  %-30s  %s\n", c.ID, truncate(c.Front, 30), truncate(c.Back, 30))
		}
		fmt.Fprintf(out, "\n%d cards\n", len(cards))
		return nil
	},
}

var cardImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import cards from an .xlsx or .csv file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := importer.DefaultConfig()
		cfg.FilePath = args[0]
		cfg.FrontColumn, _ = cmd.Flags().GetString("front")
		cfg.BackColumn, _ = cmd.Flags().GetString("back")
		cfg.SheetName, _ = cmd.Flags().GetString("sheet")
		cfg.StartRow, _ = cmd.Flags().GetInt("start-row")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.currentUser(cmd)
		if err != nil {
			return err
		}
		res, err := importer.Import(cmd.Context(), a.svc, u.ID, cfg)
		if err != nil {
			return err
		}

		out := a.out
		fmt.Fprintf(out, "Processed %d rows: %d created, %d skipped, %d errors  +%d XP\n",
			res.Processed, res.Created, res.Skipped, len(res.Errors), res.XP)
		for _, e := range res.Errors {
			fmt.Fprintf(out, "  %v\n", e)
		}
		return nil
	},
}

func init() {
	cardImportCmd.Flags().String("front", "A", "Column with the card front")
	cardImportCmd.Flags().String("back", "B", "Column with the card back")
	cardImportCmd.Flags().String("sheet", "", "Sheet name (default: first sheet)")
	cardImportCmd.Flags().Int("start-row", 2, "First data row (1-based)")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardImportCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
