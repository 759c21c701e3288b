package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
)

var dueNotebook int64

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show items due for review today",
	RunE: func(cmd *cobra.Command, args []string) error {
		today := time.Now().Format(domain.DateFormat)
		var notebookID *int64
		if cmd.Flags().Changed("notebook") {
			notebookID = &dueNotebook
		}

		due, err := deck.items.DueToday(cmd.Context(), today, notebookID)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("nothing due today")
			return nil
		}

		fmt.Printf("%d item(s) due:\n\n", len(due))
		printItems(due)
		return nil
	},
}

func printItems(items []domain.Item) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tDifficulty\tNext Review\tTags")
	for _, item := range items {
		next := "-"
		if item.ReviewState.NextReview != nil {
			next = *item.ReviewState.NextReview
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Difficulty, next, strings.Join(item.Tags, ", "))
	}
	_ = w.Flush()
}

func init() {
	dueCmd.Flags().Int64Var(&dueNotebook, "notebook", 0, "limit to one notebook id")
	rootCmd.AddCommand(dueCmd)
}
