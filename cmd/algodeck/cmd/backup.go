package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import the whole deck",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write a JSON backup bundle",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := filepath.Join(deck.cfg.Data.Dir, "exports")
		if len(args) == 1 {
			dir = args[0]
		}
		path, err := deck.backup.ExportFile(cmd.Context(), dir)
		if err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the deck with a backup bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := deck.backup.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(stats)
		return nil
	},
}

var backupMarkdownCmd = &cobra.Command{
	Use:   "markdown [dir]",
	Short: "Export items as markdown files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := filepath.Join(deck.cfg.Data.Dir, "exports", "markdown")
		if len(args) == 1 {
			dir = args[0]
		}
		out, err := deck.backup.ExportMarkdown(cmd.Context(), dir, nil)
		if err != nil {
			return err
		}
		fmt.Println("wrote markdown to", out)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd, backupImportCmd, backupMarkdownCmd)
	rootCmd.AddCommand(backupCmd)
}
