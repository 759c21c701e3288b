package store

import (
	"context"

	"github.com/phrazzld/algodeck/internal/domain"
)

// Snapshot is the full persistent state of the deck, used by backup
// import. IDs carry over verbatim so that cross-references between the
// four collections survive a round trip.
type Snapshot struct {
	Notebooks []domain.Notebook
	Items     []domain.Item
	Solutions []domain.Solution
	Revisions []domain.RevisionLogEntry
}

// Restorer replaces the entire persistent state with a snapshot.
type Restorer interface {
	// ReplaceAll atomically clears every table and inserts the snapshot,
	// preserving the snapshot's ids. On error the previous state survives
	// untouched.
	ReplaceAll(ctx context.Context, snap Snapshot) error
}
