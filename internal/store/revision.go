package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
)

// DayCount pairs a calendar day (domain.DateFormat) with its review count.
type DayCount struct {
	Day   string
	Count int
}

// RevisionLogStore defines the interface for the append-only rating
// history and its derived statistics. Entries are only inserted or
// bulk-deleted, never updated.
type RevisionLogStore interface {
	// Log appends one rating event and returns its id.
	Log(ctx context.Context, itemID int64, rating domain.Rating, at time.Time) (int64, error)

	// ByItem returns the item's log entries, newest first.
	ByItem(ctx context.Context, itemID int64) ([]domain.RevisionLogEntry, error)

	// GetAll returns every log entry, newest first, for export.
	GetAll(ctx context.Context) ([]domain.RevisionLogEntry, error)

	// Total returns the number of reviews ever logged.
	Total(ctx context.Context) (int, error)

	// CountOn returns the number of reviews on the given calendar day.
	CountOn(ctx context.Context, day string) (int, error)

	// Streak returns the length of the run of consecutive days with at
	// least one review, walking backward day-by-day from today (today
	// counts only if it already has an entry). A single missing day
	// terminates the streak; there are no grace days.
	Streak(ctx context.Context, today string) (int, error)

	// PerDay returns per-day counts for the trailing window of the given
	// number of days, oldest first. Days without reviews are omitted.
	PerDay(ctx context.Context, today string, days int) ([]DayCount, error)

	// RatingBreakdown returns the total count per rating.
	RatingBreakdown(ctx context.Context) (map[domain.Rating]int, error)

	// UniqueItems returns the number of distinct items ever reviewed.
	UniqueItems(ctx context.Context) (int, error)

	// AvgPerActiveDay returns the mean review count over days that had at
	// least one review, rounded to one decimal.
	AvgPerActiveDay(ctx context.Context) (float64, error)

	// DeleteAll removes every log entry.
	DeleteAll(ctx context.Context) error

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) RevisionLogStore
}
