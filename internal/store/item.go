package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
)

// ItemUpdate is a sparse patch over an item's mutable fields. Every field
// carries an explicit present/absent marker: a nil pointer leaves the
// column untouched. Notebook and NextReview additionally distinguish
// "set to NULL" from "set to a value" via their sql.Null wrappers.
type ItemUpdate struct {
	Title          *string
	Difficulty     *domain.Difficulty
	Tags           *[]string
	ScreenshotPath *string
	OCRText        *string
	Notes          *string
	Priority       *bool
	Notebook       *sql.NullInt64

	// Scheduling fields, written by the review flow.
	LastReviewed *time.Time
	NextReview   *sql.NullString
	Interval     *float64
	EaseFactor   *float64
	Repetition   *int
}

// IsZero reports whether the patch carries no fields at all. Stores treat
// such a patch as a no-op.
func (u ItemUpdate) IsZero() bool {
	return u.Title == nil &&
		u.Difficulty == nil &&
		u.Tags == nil &&
		u.ScreenshotPath == nil &&
		u.OCRText == nil &&
		u.Notes == nil &&
		u.Priority == nil &&
		u.Notebook == nil &&
		u.LastReviewed == nil &&
		u.NextReview == nil &&
		u.Interval == nil &&
		u.EaseFactor == nil &&
		u.Repetition == nil
}

// ReviewStateUpdate builds the patch that persists a scheduler result.
func ReviewStateUpdate(state domain.ReviewState) ItemUpdate {
	u := ItemUpdate{
		Interval:   &state.Interval,
		EaseFactor: &state.EaseFactor,
		Repetition: &state.Repetition,
	}
	if state.LastReviewed != nil {
		u.LastReviewed = state.LastReviewed
	}
	next := sql.NullString{}
	if state.NextReview != nil {
		next = sql.NullString{String: *state.NextReview, Valid: true}
	}
	u.NextReview = &next
	return u
}

// SearchFilter holds the AND-ed predicates applied alongside a text query.
type SearchFilter struct {
	Difficulty *domain.Difficulty
	Tag        *string
	Notebook   *int64
	Starred    *bool
}

// ItemStore defines the interface for item persistence, including the
// due-set queries that drive review sessions.
type ItemStore interface {
	// Create inserts the item with default scheduling state and returns
	// the new id. Returns a validation error wrapped in ErrInvalidEntity
	// if the item fails domain validation.
	Create(ctx context.Context, item *domain.Item) (int64, error)

	// GetByID retrieves an item by id.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// GetAll returns every item, newest first.
	GetAll(ctx context.Context) ([]domain.Item, error)

	// GetRecent returns the most recently captured items.
	GetRecent(ctx context.Context, limit int) ([]domain.Item, error)

	// Count returns the total number of items.
	Count(ctx context.Context) (int, error)

	// Update patches only the fields present in the update. A zero patch
	// is a no-op. Returns ErrItemNotFound if the id is absent.
	Update(ctx context.Context, id int64, update ItemUpdate) error

	// Delete removes the item together with its solutions and revision
	// log entries in a single transaction. A partial cascade must never
	// be observable. Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id int64) error

	// DueToday returns every item whose next review date is unset (due
	// immediately) or on/before today, ordered by next review date
	// ascending with unscheduled items first, optionally scoped to one
	// notebook. today is a domain.DateFormat date.
	DueToday(ctx context.Context, today string, notebookID *int64) ([]domain.Item, error)

	// DueCount returns the size of the due set without loading it.
	DueCount(ctx context.Context, today string, notebookID *int64) (int, error)

	// AllTags returns the distinct union of all items' tag sets,
	// case-sensitive, sorted.
	AllTags(ctx context.Context) ([]string, error)

	// Search runs a ranked full-text query over title, tags, OCR text and
	// notes when the search index is available, and transparently
	// degrades to a substring scan over the same fields otherwise. An
	// empty or whitespace-only query matches everything; filters still
	// apply.
	Search(ctx context.Context, query string, filter SearchFilter) ([]domain.Item, error)

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) ItemStore
}
