package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.currentUser(cmd)
		if err != nil {
			return err
		}
		if check {
			unlocks, err := a.svc.CheckAchievements(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d new achievements\n", len(unlocks))
		}

		ov, err := a.svc.Overview(cmd.Context(), u.ID)
		if err != nil {
			return err
		}

		out := a.out
		for _, ap := range ov.Achievements {
			d := ap.Definition
			name := lipgloss.NewStyle().Foreground(theme.RarityColor(string(d.Rarity))).Bold(true).
				Render(fmt.Sprintf("%s %s", d.Icon, d.Name))

			if ap.Unlocked {
				fmt.Fprintf(out, "%s  %s  %s\n", theme.Unlocked.Render("✓"), name,
					theme.Hint.Render(ap.UnlockedAt.Local().Format("2006-01-02")))
				continue
			}

			fmt.Fprintf(out, "%s  %s  %s\n", theme.Locked.Render("·"), name, theme.Subtitle.Render(d.Rarity.DisplayName()))
			bar := components.NewProgressBar("", ap.Fraction(), true, 40)
			fmt.Fprintf(out, "   %s  %d/%d\n", bar.View(), ap.Current, d.Threshold)
			fmt.Fprintf(out, "   %s\n", theme.Body.Render(ap.Message))
			if ap.EstimatedDays > 0 {
				fmt.Fprintf(out, "   %s\n", theme.Hint.Render(fmt.Sprintf("about %d days at your pace", ap.EstimatedDays)))
			}
		}
		return nil
	},
}

func init() {
	achievementsCmd.Flags().Bool("check", false, "Re-evaluate and grant anything already earned")
}
