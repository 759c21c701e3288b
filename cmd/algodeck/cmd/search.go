package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

var (
	searchDifficulty string
	searchTag        string
	searchStarred    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search items by title, tags, OCR text and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter store.SearchFilter
		if searchDifficulty != "" {
			d := domain.Difficulty(searchDifficulty)
			filter.Difficulty = &d
		}
		if searchTag != "" {
			filter.Tag = &searchTag
		}
		if cmd.Flags().Changed("starred") {
			filter.Starred = &searchStarred
		}

		items, err := deck.items.Search(cmd.Context(), strings.Join(args, " "), filter)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("no matches")
			return nil
		}
		printItems(items)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchDifficulty, "difficulty", "d", "", "filter by difficulty")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "filter by tag")
	searchCmd.Flags().BoolVar(&searchStarred, "starred", false, "only priority items")
	rootCmd.AddCommand(searchCmd)
}
