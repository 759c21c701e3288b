package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

var tagRemove bool

var tagCmd = &cobra.Command{
	Use:   "tag <id> <tag>...",
	Short: "Add or remove tags on an item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		item, err := deck.items.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var tags []string
		if tagRemove {
			tags = make([]string, 0, len(item.Tags))
			for _, t := range item.Tags {
				if !containsTag(args[1:], t) {
					tags = append(tags, t)
				}
			}
		} else {
			tags = item.Tags
			for _, t := range args[1:] {
				if !item.HasTag(t) {
					tags = append(tags, t)
				}
			}
			tags = domain.NormalizeTags(tags)
		}

		if err := deck.items.Update(ctx, id, store.ItemUpdate{Tags: &tags}); err != nil {
			return err
		}
		fmt.Printf("item %d tags: %s\n", id, strings.Join(tags, ", "))
		return nil
	},
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func init() {
	tagCmd.Flags().BoolVarP(&tagRemove, "remove", "r", false, "remove the tags instead of adding them")
	rootCmd.AddCommand(tagCmd)
}
