package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/algodeck/internal/domain"
)

// SolutionUpdate is a sparse patch over a solution's mutable fields.
// Nil pointers leave the column untouched.
type SolutionUpdate struct {
	Tier            *domain.SolutionTier
	Language        *string
	Code            *string
	Explanation     *string
	TimeComplexity  *string
	SpaceComplexity *string
}

// IsZero reports whether the patch carries no fields.
func (u SolutionUpdate) IsZero() bool {
	return u.Tier == nil &&
		u.Language == nil &&
		u.Code == nil &&
		u.Explanation == nil &&
		u.TimeComplexity == nil &&
		u.SpaceComplexity == nil
}

// SolutionStore defines the interface for solution persistence. Solutions
// belong to exactly one item and are cascade-deleted with it.
type SolutionStore interface {
	// Create inserts the solution and returns the new id. Returns a
	// validation error wrapped in ErrInvalidEntity for an unknown tier.
	Create(ctx context.Context, sol *domain.Solution) (int64, error)

	// GetByID retrieves a solution by id.
	// Returns ErrSolutionNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Solution, error)

	// ByItem returns the item's solutions ordered by tier progression
	// (brute, optimized, best) and then by creation time.
	ByItem(ctx context.Context, itemID int64) ([]domain.Solution, error)

	// GetAll returns every solution, for export.
	GetAll(ctx context.Context) ([]domain.Solution, error)

	// Update patches only the fields present in the update. A zero patch
	// is a no-op. Returns ErrSolutionNotFound if the id is absent.
	Update(ctx context.Context, id int64, update SolutionUpdate) error

	// Delete removes a single solution.
	// Returns ErrSolutionNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a store bound to the given transaction.
	WithTx(tx *sql.Tx) SolutionStore
}
