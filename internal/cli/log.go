package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sugarlog-app/sugarlog/internal/app/engagement"
	"github.com/sugarlog-app/sugarlog/internal/daemon"
	"github.com/sugarlog-app/sugarlog/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logUser, "user", "", "User ID (defaults to configured user)")
	logCmd.Flags().StringVar(&logMethod, "method", "", "Capture method: preset, photo, voice")
	logCmd.Flags().Float64Var(&logGrams, "grams", 0, "Sugar grams (0 = use the preset estimate)")
	logCmd.Flags().StringVar(&logTime, "time", "", "Time of day: morning, afternoon, evening, night")
	logCmd.Flags().IntVar(&logSteps, "steps", -1, "Steps so far today")
	logCmd.Flags().Float64Var(&logSleep, "sleep", -1, "Hours slept last night")
	logCmd.Flags().IntVar(&logHeartRate, "heart-rate", -1, "Average heart rate")
	rootCmd.AddCommand(logCmd)
}

var (
	logUser      string
	logMethod    string
	logGrams     float64
	logTime      string
	logSteps     int
	logSleep     float64
	logHeartRate int
)

var logCmd = &cobra.Command{
	Use:   "log <type>",
	Short: "Log a sugar intake event",
	Long: `Log a sugar intake event and get instant feedback.

Examples:
  sugarlog log chai
  sugarlog log "cold drink" --grams 30
  sugarlog log sweets --steps 3000 --sleep 5.5`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(cliVersion)
	if err != nil {
		return err
	}
	defer d.Close()

	in := engagement.LogInput{
		Type:      args[0],
		Method:    domain.LogMethod(logMethod),
		TimeOfDay: domain.TimeOfDay(logTime),
	}
	if logGrams > 0 {
		in.SugarGrams = &logGrams
	}
	if logSteps >= 0 {
		in.Context.Steps = &logSteps
	}
	if logSleep >= 0 {
		in.Context.SleepHours = &logSleep
	}
	if logHeartRate >= 0 {
		in.Context.HeartRate = &logHeartRate
	}

	out, err := d.Tracker.LogEvent(resolveUser(logUser, d.Config), in)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s (%.0fg sugar, %s)\n", out.Log.Type, out.Log.SugarGrams, out.Log.TimeOfDay)
	fmt.Printf("  +%d XP  (level %d, %d XP total)\n", out.XPEarned, out.State.Level, out.State.XP)
	fmt.Printf("  Streak: %d day(s)\n", out.State.Streak)
	fmt.Printf("  %s\n", out.Reward.Description)
	fmt.Println()
	fmt.Println(out.Insight)
	fmt.Println("Try this:", out.Action)
	fmt.Println()
	fmt.Printf("Mark it done with: sugarlog complete %s\n", out.Log.ID)
	return nil
}
