package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		items, err := deck.items.GetAll(ctx)
		if err != nil {
			return err
		}
		if listLimit > 0 {
			items, err = deck.items.GetRecent(ctx, listLimit)
			if err != nil {
				return err
			}
		}
		if len(items) == 0 {
			fmt.Println("no items yet")
			return nil
		}
		printItems(items)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item with its solutions and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		if err := deck.items.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted item %d\n", id)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "only the most recent N items")
	rootCmd.AddCommand(listCmd, deleteCmd)
}
