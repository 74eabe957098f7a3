package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/screens/study"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Review your cards and earn XP",
	Long:  "Shows each card's front, reveals the back on Enter and asks for a 1-5 rating. Esc finishes early, Ctrl+C discards the session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		// Unlocks are part of the session summary, so they are not printed
		// while the session screen owns the terminal.
		a, err := openApp(cmd, withoutTerminalNotifications())
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
		if len(cards) == 0 {
			fmt.Fprintln(a.out, "No cards to study. Add some with: flashiz card add <front> <back>")
			return nil
		}
		if limit > 0 && len(cards) > limit {
			cards = cards[:limit]
		}

		model := study.New(cmd.Context(), a.svc, u.ID, cards, nil)
		p := tea.NewProgram(model,
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(a.out),
		)
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("run study session: %w", err)
		}

		m := final.(study.Model)
		if err := m.Err(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, m.Summary())
		return nil
	},
}

func init() {
	studyCmd.Flags().Int("limit", 20, "Maximum number of cards in the session")
}
