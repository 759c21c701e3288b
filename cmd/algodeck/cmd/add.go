package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
)

var (
	addDifficulty string
	addTags       []string
	addNotes      string
	addScreenshot string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Capture a new problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		item, err := domain.NewItem(args[0], domain.Difficulty(addDifficulty), addTags)
		if err != nil {
			return err
		}
		item.Notes = addNotes

		if addScreenshot != "" {
			stored, err := deck.shots.Import(addScreenshot)
			if err != nil {
				return fmt.Errorf("import screenshot: %w", err)
			}
			item.ScreenshotPath = stored
			// Empty extraction is "no text found", not a failure.
			item.OCRText = deck.extract.ExtractText(ctx, stored)
		}

		id, err := deck.items.Create(ctx, item)
		if err != nil {
			return err
		}
		fmt.Printf("added item %d: %s\n", id, item.Title)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDifficulty, "difficulty", "d", "Medium", "Easy, Medium or Hard")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tags (repeatable)")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "free-form notes")
	addCmd.Flags().StringVarP(&addScreenshot, "screenshot", "s", "", "image file to copy into the deck and OCR")
	rootCmd.AddCommand(addCmd)
}
