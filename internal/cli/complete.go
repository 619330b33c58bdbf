package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/daemon"
)

func init() {
	completeCmd.Flags().StringVar(&completeUser, "user", "", "User ID (defaults to configured user)")
	rootCmd.AddCommand(completeCmd)
}

var completeUser string

var completeCmd = &cobra.Command{
	Use:   "complete <log-id>",
	Short: "Mark a suggested action as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	out, err := d.Tracker.CompleteAction(resolveUser(completeUser, d.Config), args[0])
	if err != nil {
		return err
	}

	fmt.Println("Nice — action completed.")
	fmt.Printf("  Log XP: %d  (level %d, %d XP total)\n", out.Log.XPEarned, out.State.Level, out.State.XP)
	return nil
}
