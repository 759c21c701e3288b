package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/domain"
)

var notebookColor string

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Manage notebooks",
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks with their item counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		notebooks, err := deck.notebooks.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(notebooks) == 0 {
			fmt.Println("no notebooks yet")
			return nil
		}
		for _, nb := range notebooks {
			count, err := deck.notebooks.ItemCount(ctx, nb.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\t%s\t%d item(s)\n", nb.ID, nb.Name, nb.Color, count)
		}
		return nil
	},
}

var notebookAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := domain.NewNotebook(args[0], notebookColor)
		if err != nil {
			return err
		}
		id, err := deck.notebooks.Create(cmd.Context(), nb)
		if err != nil {
			return err
		}
		fmt.Printf("created notebook %d: %s\n", id, nb.Name)
		return nil
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notebook, unassigning its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notebook id %q", args[0])
		}
		if err := deck.notebooks.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted notebook %d\n", id)
		return nil
	},
}

func init() {
	notebookAddCmd.Flags().StringVar(&notebookColor, "color", "", "display color, e.g. #a985ff")
	notebookCmd.AddCommand(notebookListCmd, notebookAddCmd, notebookDeleteCmd)
	rootCmd.AddCommand(notebookCmd)
}
