package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/daemon"
)

func init() {
	rewardsCmd.Flags().StringVar(&rewardsUser, "user", "", "User ID (defaults to configured user)")
	rewardsCmd.Flags().IntVar(&rewardsLimit, "limit", 20, "Number of rewards to show")
	rootCmd.AddCommand(rewardsCmd)
}

var (
	rewardsUser  string
	rewardsLimit int
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show reward history",
	RunE:  runRewards,
}

func runRewards(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	rewards, err := d.Tracker.Rewards(resolveUser(rewardsUser, d.Config), rewardsLimit)
	if err != nil {
		return err
	}

	if len(rewards) == 0 {
		fmt.Println("No rewards yet. Every log earns one — go log something.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tVALUE\tDESCRIPTION\tGRANTED")
	for _, r := range rewards {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			r.Type,
			r.Value,
			r.Description,
			r.GrantedAt.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
