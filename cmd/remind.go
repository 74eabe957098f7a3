package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send streak reminders",
	Long:  "Sends a reminder to every learner whose streak ends today. With --watch, keeps running and sends them daily at --hour UTC.",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		cfg := reminder.DefaultConfig()
		if cmd.Flags().Changed("hour") {
			cfg.Hour, _ = cmd.Flags().GetInt("hour")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sched, err := reminder.New(a.svc, cfg, nil)
		if err != nil {
			return err
		}

		if !watch {
			n, err := sched.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Sent %d reminders\n", n)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()

		fmt.Fprintf(a.out, "Next reminder run at %s. Press Ctrl+C to stop.\n",
			sched.NextRun().Format("2006-01-02 15:04 MST"))
		<-ctx.Done()
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("watch", false, "Keep running and send reminders daily")
	remindCmd.Flags().Int("hour", reminder.DefaultHour, "UTC hour for daily reminders (overrides FLASHIZ_REMINDER_HOUR)")
}
