package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
)

var (
	intervalAgain int
	intervalHard  int
	intervalGood  int
	intervalEasy  int
)

var intervalsCmd = &cobra.Command{
	Use:   "intervals",
	Short: "Show or change the scheduler's interval knobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := deck.settings.IntervalConfig(ctx)
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("again") {
			cfg.AgainMinutes = intervalAgain
			changed = true
		}
		if cmd.Flags().Changed("hard") {
			cfg.HardMinutes = intervalHard
			changed = true
		}
		if cmd.Flags().Changed("good") {
			cfg.GoodDays = intervalGood
			changed = true
		}
		if cmd.Flags().Changed("easy") {
			cfg.EasyDays = intervalEasy
			changed = true
		}
		if changed {
			// Applies to future scheduling only; stored review dates keep
			// whatever configuration produced them.
			if err := deck.settings.SetIntervalConfig(ctx, cfg); err != nil {
				return err
			}
		}

		for _, r := range domain.Ratings() {
			fmt.Printf("%s\t%s\n", r, cfg.Label(r))
		}
		return nil
	},
}

func init() {
	intervalsCmd.Flags().IntVar(&intervalAgain, "again", 0, "minutes until an 'again' item returns")
	intervalsCmd.Flags().IntVar(&intervalHard, "hard", 0, "minutes until a 'hard' item returns")
	intervalsCmd.Flags().IntVar(&intervalGood, "good", 0, "days for the first 'good' interval")
	intervalsCmd.Flags().IntVar(&intervalEasy, "easy", 0, "days for the first 'easy' interval")
	rootCmd.AddCommand(intervalsCmd)
}
