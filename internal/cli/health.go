package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/daemon"
	"github.com/sugarlog-app/sugarlog/internal/domain"
)

func init() {
	healthCmd.Flags().StringVar(&healthUser, "user", "", "User ID (defaults to configured user)")
	healthCmd.Flags().StringVar(&healthDate, "date", "", "Date (yyyy-mm-dd, defaults to today)")
	healthCmd.Flags().IntVar(&healthSteps, "steps", -1, "Steps for the day")
	healthCmd.Flags().Float64Var(&healthSleep, "sleep", -1, "Hours slept")
	healthCmd.Flags().IntVar(&healthHeartRate, "heart-rate", -1, "Average heart rate")
	rootCmd.AddCommand(healthCmd)
}

var (
	healthUser      string
	healthDate      string
	healthSteps     int
	healthSleep     float64
	healthHeartRate int
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Record daily health metrics",
	Long: `Record the day's health metrics. Stored values are merged into the
context of every log made that day and drive the insight rules.

Example:
  sugarlog health --steps 3500 --sleep 5.5`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	date := healthDate
	if date == "" {
		date = domain.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.ErrInvalidDate
	}

	h := domain.DailyHealth{
		UserID: resolveUser(healthUser, d.Config),
		Date:   date,
	}
	if healthSteps >= 0 {
		h.Steps = &healthSteps
	}
	if healthSleep >= 0 {
		h.SleepHours = &healthSleep
	}
	if healthHeartRate >= 0 {
		h.AvgHeartRate = &healthHeartRate
	}

	if err := d.Tracker.RecordHealth(h); err != nil {
		return err
	}

	fmt.Printf("Health metrics saved for %s\n", date)
	return nil
}
