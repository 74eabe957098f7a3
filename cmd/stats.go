package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
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
		ov, err := a.svc.Overview(cmd.Context(), u.ID)
		if err != nil {
			return err
		}

		out := a.out
		st := ov.Stats
		fmt.Fprintln(out, theme.Title.Render(u.Name))
		fmt.Fprintln(out, components.NewProgressBar(fmt.Sprintf("Level %d", ov.Level.Level), ov.Level.Fraction(), true, 50).View())
		fmt.Fprintln(out, components.StatLine("Total XP", strconv.Itoa(st.TotalXP)))
		fmt.Fprintln(out, components.StatLine("Next level", fmt.Sprintf("%d XP to go", ov.Level.XPToNext)))
		fmt.Fprintln(out, components.StatLine("Today", fmt.Sprintf("%d / %d XP", ov.EarnedToday, ov.DailyCap)))

		streakText := fmt.Sprintf("%d days (best %d)", ov.EffectiveStreak, st.BestStreak)
		fmt.Fprintln(out, components.StatLine("Streak", streakText))
		if ov.StreakAtRisk {
			fmt.Fprintln(out, theme.Warning.Render("Study today to keep your streak!"))
		}

		fmt.Fprintln(out, components.StatLine("Cards studied", strconv.Itoa(st.CardsStudied)))
		fmt.Fprintln(out, components.StatLine("Cards created", strconv.Itoa(st.CardsCreated)))
		fmt.Fprintln(out, components.StatLine("Perfect in a row", strconv.Itoa(st.PerfectStreak)))
		fmt.Fprintln(out, components.StatLine("Study time", st.TotalStudyTime.Round(time.Minute).String()))

		unlocked := 0
		for _, ap := range ov.Achievements {
			if ap.Unlocked {
				unlocked++
			}
		}
		fmt.Fprintln(out, components.StatLine("Achievements", fmt.Sprintf("%d / %d", unlocked, len(ov.Achievements))))
		return nil
	},
}
