package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

const solutionColumns = `id, item_id, tier, language, code, explanation,
	time_complexity, space_complexity, created_at`

// SolutionStore implements store.SolutionStore on SQLite.
type SolutionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSolutionStore creates the SQLite implementation of store.SolutionStore.
func NewSolutionStore(db store.DBTX, logger *slog.Logger) *SolutionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SolutionStore{
		db:     db,
		logger: logger.With(slog.String("component", "solution_store")),
	}
}

var _ store.SolutionStore = (*SolutionStore)(nil)

// WithTx returns a SolutionStore bound to the given transaction.
func (s *SolutionStore) WithTx(tx *sql.Tx) store.SolutionStore {
	return &SolutionStore{db: tx, logger: s.logger}
}

// Create implements store.SolutionStore.Create.
func (s *SolutionStore) Create(ctx context.Context, sol *domain.Solution) (int64, error) {
	if err := sol.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if sol.CreatedAt.IsZero() {
		sol.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO solutions (item_id, tier, language, code, explanation,
			time_complexity, space_complexity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sol.ItemID, string(sol.Tier), sol.Language, sol.Code, sol.Explanation,
		sol.TimeComplexity, sol.SpaceComplexity, sol.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, store.NewStoreError("solution", "create", "insert failed", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.NewStoreError("solution", "create", "read insert id", err)
	}
	sol.ID = id
	return id, nil
}

// GetByID implements store.SolutionStore.GetByID.
func (s *SolutionStore) GetByID(ctx context.Context, id int64) (*domain.Solution, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+solutionColumns+` FROM solutions WHERE id = ?`, id)
	sol, err := scanSolution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSolutionNotFound
		}
		return nil, store.NewStoreError("solution", "get", "scan failed", err)
	}
	return sol, nil
}

// ByItem implements store.SolutionStore.ByItem. The tier CASE keeps the
// brute → optimized → best progression order independent of the tier
// strings' lexical order.
func (s *SolutionStore) ByItem(ctx context.Context, itemID int64) ([]domain.Solution, error) {
	return s.querySolutions(ctx, `
		SELECT `+solutionColumns+` FROM solutions WHERE item_id = ?
		ORDER BY CASE tier
			WHEN 'brute' THEN 0
			WHEN 'optimized' THEN 1
			WHEN 'best' THEN 2
			ELSE 3 END,
		created_at ASC, id ASC`, itemID)
}

// GetAll implements store.SolutionStore.GetAll.
func (s *SolutionStore) GetAll(ctx context.Context) ([]domain.Solution, error) {
	return s.querySolutions(ctx,
		`SELECT `+solutionColumns+` FROM solutions ORDER BY id ASC`)
}

// Update implements store.SolutionStore.Update.
func (s *SolutionStore) Update(ctx context.Context, id int64, update store.SolutionUpdate) error {
	if update.IsZero() {
		return nil
	}

	var (
		fields []string
		args   []any
	)
	set := func(column string, value any) {
		fields = append(fields, column+" = ?")
		args = append(args, value)
	}

	if update.Tier != nil {
		if !update.Tier.IsValid() {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidTier)
		}
		set("tier", string(*update.Tier))
	}
	if update.Language != nil {
		set("language", *update.Language)
	}
	if update.Code != nil {
		set("code", *update.Code)
	}
	if update.Explanation != nil {
		set("explanation", *update.Explanation)
	}
	if update.TimeComplexity != nil {
		set("time_complexity", *update.TimeComplexity)
	}
	if update.SpaceComplexity != nil {
		set("space_complexity", *update.SpaceComplexity)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE solutions SET `+strings.Join(fields, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return store.NewStoreError("solution", "update", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("solution", "update", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrSolutionNotFound
	}
	return nil
}

// Delete implements store.SolutionStore.Delete.
func (s *SolutionStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM solutions WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("solution", "delete", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("solution", "delete", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrSolutionNotFound
	}
	return nil
}

func (s *SolutionStore) querySolutions(ctx context.Context, query string, args ...any) ([]domain.Solution, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("solution", "query", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var sols []domain.Solution
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, store.NewStoreError("solution", "query", "scan failed", err)
		}
		sols = append(sols, *sol)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("solution", "query", "iterate rows", err)
	}
	return sols, nil
}

func scanSolution(row rowScanner) (*domain.Solution, error) {
	var (
		sol       domain.Solution
		tier      string
		createdAt string
	)
	err := row.Scan(
		&sol.ID, &sol.ItemID, &tier, &sol.Language, &sol.Code,
		&sol.Explanation, &sol.TimeComplexity, &sol.SpaceComplexity, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	sol.Tier = domain.SolutionTier(tier)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sol.CreatedAt = t
	}
	return &sol, nil
}
