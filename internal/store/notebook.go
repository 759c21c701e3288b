package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/algodeck/internal/domain"
)

// NotebookUpdate is a sparse patch over a notebook's mutable fields.
type NotebookUpdate struct {
	Name  *string
	Color *string
}

// IsZero reports whether the patch carries no fields.
func (u NotebookUpdate) IsZero() bool {
	return u.Name == nil && u.Color == nil
}

// NotebookStore defines the interface for notebook persistence.
type NotebookStore interface {
	// Create inserts the notebook and returns the new id.
	Create(ctx context.Context, nb *domain.Notebook) (int64, error)

	// GetByID retrieves a notebook by id.
	// Returns ErrNotebookNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Notebook, error)

	// GetAll returns all notebooks ordered by name.
	GetAll(ctx context.Context) ([]domain.Notebook, error)

	// Update patches only the fields present in the update. A zero patch
	// is a no-op. Returns ErrNotebookNotFound if the id is absent.
	Update(ctx context.Context, id int64, update NotebookUpdate) error

	// Delete removes the notebook. Its items are unassigned, never
	// deleted. Returns ErrNotebookNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// ItemCount returns the number of items assigned to the notebook.
	ItemCount(ctx context.Context, id int64) (int, error)

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) NotebookStore
}
