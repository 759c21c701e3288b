package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

// Restorer implements store.Restorer: one transaction that wipes every
// table and replays a snapshot with its original ids.
type Restorer struct {
	db     *sql.DB
	index  *SearchIndex
	logger *slog.Logger
}

// NewRestorer creates the SQLite implementation of store.Restorer.
// index may be nil when the FTS extension is unavailable.
func NewRestorer(db *sql.DB, index *SearchIndex, logger *slog.Logger) *Restorer {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Restorer{
		db:     db,
		index:  index,
		logger: logger.With(slog.String("component", "restorer")),
	}
}

var _ store.Restorer = (*Restorer)(nil)

// ReplaceAll implements store.Restorer.ReplaceAll. Children are cleared
// before parents and inserted after them so foreign keys hold at every
// point inside the transaction.
func (r *Restorer) ReplaceAll(ctx context.Context, snap store.Snapshot) error {
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, table := range []string{"revision_logs", "solutions", "items", "notebooks"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, nb := range snap.Notebooks {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO notebooks (id, name, color, created_at)
				VALUES (?, ?, ?, ?)`,
				nb.ID, nb.Name, nb.Color, nb.CreatedAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("insert notebook %d: %w", nb.ID, err)
			}
		}

		for _, item := range snap.Items {
			tags, err := json.Marshal(domain.NormalizeTags(item.Tags))
			if err != nil {
				return fmt.Errorf("marshal tags for item %d: %w", item.ID, err)
			}
			var lastReviewed any
			if item.ReviewState.LastReviewed != nil {
				lastReviewed = item.ReviewState.LastReviewed.Format(time.RFC3339)
			}
			var nextReview any
			if item.ReviewState.NextReview != nil {
				nextReview = *item.ReviewState.NextReview
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO items (id, title, difficulty, tags, screenshot_path,
					ocr_text, notes, priority, notebook_id, created_at,
					last_reviewed, next_review_date, interval, ease_factor, repetition)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.ID, item.Title, string(item.Difficulty), string(tags),
				item.ScreenshotPath, item.OCRText, item.Notes,
				boolToInt(item.Priority), item.NotebookID,
				item.CreatedAt.Format(time.RFC3339), lastReviewed, nextReview,
				item.ReviewState.Interval, item.ReviewState.EaseFactor,
				item.ReviewState.Repetition)
			if err != nil {
				return fmt.Errorf("insert item %d: %w", item.ID, err)
			}
		}

		for _, sol := range snap.Solutions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO solutions (id, item_id, tier, language, code,
					explanation, time_complexity, space_complexity, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sol.ID, sol.ItemID, string(sol.Tier), sol.Language, sol.Code,
				sol.Explanation, sol.TimeComplexity, sol.SpaceComplexity,
				sol.CreatedAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("insert solution %d: %w", sol.ID, err)
			}
		}

		for _, rev := range snap.Revisions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO revision_logs (id, item_id, rating, timestamp)
				VALUES (?, ?, ?, ?)`,
				rev.ID, rev.ItemID, string(rev.Rating),
				rev.Timestamp.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("insert revision log %d: %w", rev.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return store.NewStoreError("snapshot", "replace_all", "transaction failed", err)
	}

	if r.index != nil {
		if err := r.index.Rebuild(ctx); err != nil {
			r.logger.Warn("search index rebuild failed after restore",
				slog.String("error", err.Error()))
		}
	}

	r.logger.Info("snapshot restored",
		slog.Int("notebooks", len(snap.Notebooks)),
		slog.Int("items", len(snap.Items)),
		slog.Int("solutions", len(snap.Solutions)),
		slog.Int("revisions", len(snap.Revisions)))
	return nil
}
