package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/daemon"
	"github.com/sugarlog-app/sugarlog/internal/domain"
)

func init() {
	statusCmd.Flags().StringVar(&statusUser, "user", "", "User ID (defaults to configured user)")
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "Number of recent logs to show")
	rootCmd.AddCommand(statusCmd)
}

var (
	statusUser  string
	statusLimit int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show streak, level, and recent logs",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	userID := resolveUser(statusUser, d.Config)

	state, err := d.Tracker.Profile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fmt.Println("No logs yet. Run 'sugarlog log <type>' to get started.")
			return nil
		}
		return err
	}

	fmt.Printf("Level %d  •  %d XP  •  streak %d day(s)  •  longest %d\n",
		state.Level, state.XP, state.Streak, state.LongestStreak)
	if !state.LastLoggedAt.IsZero() {
		fmt.Printf("Last logged: %s\n", state.LastLoggedAt.Format("2006-01-02 15:04"))
	}

	logs, err := d.Tracker.Logs(userID, statusLimit)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tGRAMS\tTIME\tDONE\tXP\tLOGGED")
	for _, l := range logs {
		done := ""
		if l.ActionCompleted {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%s\t%d\t%s\n",
			l.ID,
			l.Type,
			l.SugarGrams,
			l.TimeOfDay,
			done,
			l.XPEarned,
			l.LoggedAt.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
