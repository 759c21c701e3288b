package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/service/review"
)

var reviewNotebook int64

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session over the due set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var notebookID *int64
		if cmd.Flags().Changed("notebook") {
			notebookID = &reviewNotebook
		}

		session := review.NewSession(deck.db.Conn(), deck.items, deck.logs, deck.settings, deck.log)
		if err := session.Start(ctx, notebookID); err != nil {
			return err
		}
		if session.State() == review.StateComplete {
			fmt.Println("nothing due today")
			return nil
		}

		cfg, err := deck.settings.IntervalConfig(ctx)
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		for session.State() == review.StateReviewing {
			item, err := session.Current()
			if err != nil {
				return err
			}

			fmt.Printf("\n[%d left] %s (%s)\n", session.Remaining(), item.Title, item.Difficulty)
			if item.OCRText != "" {
				fmt.Println(item.OCRText)
			}
			fmt.Print("press enter to reveal... ")
			if _, err := reader.ReadString('\n'); err != nil {
				return err
			}
			if err := session.Reveal(); err != nil {
				return err
			}

			if item.Notes != "" {
				fmt.Println(item.Notes)
			}
			solutions, err := deck.solutions.ByItem(ctx, item.ID)
			if err != nil {
				return err
			}
			for _, sol := range solutions {
				fmt.Printf("\n--- %s (%s) ---\n%s\n", sol.Tier.Label(), sol.Language, sol.Code)
			}

			for {
				rating, err := promptRating(reader, cfg)
				if err != nil {
					return err
				}
				if !rating.IsValid() {
					fmt.Println("unknown rating, try again")
					continue
				}
				if err := session.SubmitRating(ctx, rating); err != nil {
					return err
				}
				break
			}
		}

		fmt.Printf("\nsession complete: %d reviewed\n", session.Summary().Reviewed)
		return nil
	},
}

// promptRating reads one of the four ratings, showing each one's
// scheduling effect next to it.
func promptRating(reader *bufio.Reader, cfg domain.IntervalConfig) (domain.Rating, error) {
	fmt.Println()
	for _, r := range domain.Ratings() {
		fmt.Printf("  %s (%s)", r, cfg.Label(r))
	}
	fmt.Print("\nrating: ")

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return domain.Rating(strings.TrimSpace(input)), nil
}

func init() {
	reviewCmd.Flags().Int64Var(&reviewNotebook, "notebook", 0, "limit to one notebook id")
	rootCmd.AddCommand(reviewCmd)
}
