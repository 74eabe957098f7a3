package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage learners",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.svc.CreateUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %s (%s)\n", u.Name, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		users, err := a.svc.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		out := a.out
		if len(users) == 0 {
			fmt.Fprintln(out, "No users yet. Add one with: flashiz user add <name>")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-20s  %s\n", "ID", "Name", "Joined")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, u := range users {
			fmt.Fprintf(out, "%-36s  %-20s  %s\n", u.ID, u.Name, u.CreatedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
}
