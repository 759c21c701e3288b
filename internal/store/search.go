package store

import (
	"context"

	"github.com/phrazzld/algodeck/internal/domain"
)

// SearchIndex is the token-based inverted index over item text fields.
// The index is an optimization, not a correctness requirement: when the
// engine's full-text extension is missing the implementation reports
// Available() == false and ItemStore.Search scans instead.
type SearchIndex interface {
	// Available reports whether the full-text engine was usable at
	// startup. The flag is process-wide and probed once at
	// initialization; a query-time failure downgrades only that query.
	Available() bool

	// Search runs a ranked query. Exact ranking order is not part of the
	// contract; presence in the result set is.
	Search(ctx context.Context, query string, filter SearchFilter) ([]domain.Item, error)

	// Rebuild repopulates the index from the primary store. Must be
	// invoked after any bulk load, since trigger-based sync may not cover
	// bulk-inserted rows on every load path.
	Rebuild(ctx context.Context) error
}
