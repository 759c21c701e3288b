package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review statistics and the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		today := time.Now().Format(domain.DateFormat)

		total, err := deck.logs.Total(ctx)
		if err != nil {
			return err
		}
		todayCount, err := deck.logs.CountOn(ctx, today)
		if err != nil {
			return err
		}
		streak, err := deck.logs.Streak(ctx, today)
		if err != nil {
			return err
		}
		unique, err := deck.logs.UniqueItems(ctx)
		if err != nil {
			return err
		}
		avg, err := deck.logs.AvgPerActiveDay(ctx)
		if err != nil {
			return err
		}
		itemCount, err := deck.items.Count(ctx)
		if err != nil {
			return err
		}
		dueCount, err := deck.items.DueCount(ctx, today, nil)
		if err != nil {
			return err
		}
		breakdown, err := deck.logs.RatingBreakdown(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("items: %d (%d due)\n", itemCount, dueCount)
		fmt.Printf("reviews: %d total, %d today, %d distinct items\n", total, todayCount, unique)
		fmt.Printf("streak: %d day(s)\n", streak)
		fmt.Printf("avg per active day: %.1f\n", avg)
		fmt.Print("ratings:")
		for _, r := range domain.Ratings() {
			fmt.Printf(" %s=%d", r, breakdown[r])
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
