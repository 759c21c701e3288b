// Package cmd wires the thin command-line surface over the deck's
// services. Commands hold no logic of their own; each one calls into a
// store or service and prints the result.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/algodeck/internal/config"
	"github.com/phrazzld/algodeck/internal/platform/logger"
	"github.com/phrazzld/algodeck/internal/platform/notify"
	"github.com/phrazzld/algodeck/internal/platform/ocr"
	"github.com/phrazzld/algodeck/internal/platform/sqlite"
	"github.com/phrazzld/algodeck/internal/service/backup"
)

// app holds everything a command needs, assembled once before any
// subcommand runs.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	db        *sqlite.DB
	items     *sqlite.ItemStore
	solutions *sqlite.SolutionStore
	notebooks *sqlite.NotebookStore
	logs      *sqlite.RevisionLogStore
	settings  *sqlite.SettingsStore
	backup    *backup.Service
	shots     *ocr.Importer
	extract   ocr.TextExtractor
	reminders notify.ReminderScheduler
}

var deck *app

var rootCmd = &cobra.Command{
	Use:   "algodeck",
	Short: "Spaced-repetition flashcards for coding-interview practice",
	Long: `AlgoDeck tracks coding-interview problems as flashcards and schedules
reviews with the SM-2 spaced repetition algorithm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		log := logger.Setup(cfg.Log.Level)

		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		db, err := sqlite.Open(cfg.DatabasePath(), log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		items := sqlite.NewItemStore(db.Conn(), db.Index(), log)
		solutions := sqlite.NewSolutionStore(db.Conn(), log)
		notebooks := sqlite.NewNotebookStore(db.Conn(), log)
		logs := sqlite.NewRevisionLogStore(db.Conn(), log)

		deck = &app{
			cfg:       cfg,
			log:       log,
			db:        db,
			items:     items,
			solutions: solutions,
			notebooks: notebooks,
			logs:      logs,
			settings:  sqlite.NewSettingsStore(db.Conn(), log),
			backup: backup.NewService(items, solutions, notebooks, logs,
				sqlite.NewRestorer(db.Conn(), db.Index(), log), log),
			shots:     ocr.NewImporter(cfg.ScreenshotDir(), log),
			extract:   ocr.Noop{},
			reminders: notify.NewLogScheduler(log),
		}

		// Reminder scheduling is best effort; a failure never blocks the
		// command that triggered it.
		ctx := cmd.Context()
		if cfg.Reminder.Enabled {
			if err := deck.reminders.ScheduleDaily(ctx, notify.Schedule{Hour: cfg.Reminder.Hour}); err != nil {
				log.Warn("schedule daily reminder", slog.String("error", err.Error()))
			}
		} else if err := deck.reminders.Cancel(ctx); err != nil {
			log.Warn("cancel daily reminder", slog.String("error", err.Error()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deck != nil && deck.db != nil {
			_ = deck.db.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
