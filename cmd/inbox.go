package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List delivered notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.currentUser(cmd)
		if err != nil {
			return err
		}
		items, err := a.svc.Inbox(cmd.Context(), u.ID, limit)
		if err != nil {
			return err
		}

		out := a.out
		if len(items) == 0 {
			fmt.Fprintln(out, "Inbox is empty.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-11s  %-6s  %s\n", "Time", "Kind", "XP", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, n := range items {
			xp := ""
			if n.BonusXP > 0 {
				xp = fmt.Sprintf("+%d", n.BonusXP)
			}
			fmt.Fprintf(out, "%-16s  %-11s  %-6s  %s %s\n",
				n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Kind, xp, n.Icon, n.Title)
			if n.Body != "" {
				fmt.Fprintf(out, "%-16s  %s\n", "", n.Body)
			}
		}
		return nil
	},
}

func init() {
	inboxCmd.Flags().Int("limit", 20, "Maximum number of notifications")
}
