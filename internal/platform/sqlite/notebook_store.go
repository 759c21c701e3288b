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

// NotebookStore implements store.NotebookStore on SQLite.
type NotebookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNotebookStore creates the SQLite implementation of store.NotebookStore.
func NewNotebookStore(db store.DBTX, logger *slog.Logger) *NotebookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotebookStore{
		db:     db,
		logger: logger.With(slog.String("component", "notebook_store")),
	}
}

var _ store.NotebookStore = (*NotebookStore)(nil)

// WithTx returns a NotebookStore bound to the given transaction.
func (s *NotebookStore) WithTx(tx *sql.Tx) store.NotebookStore {
	return &NotebookStore{db: tx, logger: s.logger}
}

// Create implements store.NotebookStore.Create.
func (s *NotebookStore) Create(ctx context.Context, nb *domain.Notebook) (int64, error) {
	if err := nb.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if nb.Color == "" {
		nb.Color = domain.DefaultNotebookColor
	}
	if nb.CreatedAt.IsZero() {
		nb.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notebooks (name, color, created_at) VALUES (?, ?, ?)`,
		nb.Name, nb.Color, nb.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, store.NewStoreError("notebook", "create", "insert failed", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.NewStoreError("notebook", "create", "read insert id", err)
	}
	nb.ID = id
	return id, nil
}

// GetByID implements store.NotebookStore.GetByID.
func (s *NotebookStore) GetByID(ctx context.Context, id int64) (*domain.Notebook, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM notebooks WHERE id = ?`, id)
	nb, err := scanNotebook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotebookNotFound
		}
		return nil, store.NewStoreError("notebook", "get", "scan failed", err)
	}
	return nb, nil
}

// GetAll implements store.NotebookStore.GetAll.
func (s *NotebookStore) GetAll(ctx context.Context) ([]domain.Notebook, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM notebooks ORDER BY name ASC`)
	if err != nil {
		return nil, store.NewStoreError("notebook", "query", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var nbs []domain.Notebook
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, store.NewStoreError("notebook", "query", "scan failed", err)
		}
		nbs = append(nbs, *nb)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("notebook", "query", "iterate rows", err)
	}
	return nbs, nil
}

// Update implements store.NotebookStore.Update.
func (s *NotebookStore) Update(ctx context.Context, id int64, update store.NotebookUpdate) error {
	if update.IsZero() {
		return nil
	}

	var (
		fields []string
		args   []any
	)
	if update.Name != nil {
		if *update.Name == "" {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrNotebookNameEmpty)
		}
		fields = append(fields, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Color != nil {
		fields = append(fields, "color = ?")
		args = append(args, *update.Color)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE notebooks SET `+strings.Join(fields, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return store.NewStoreError("notebook", "update", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("notebook", "update", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrNotebookNotFound
	}
	return nil
}

// Delete implements store.NotebookStore.Delete. Items referencing the
// notebook are unassigned through the ON DELETE SET NULL constraint, never
// deleted.
func (s *NotebookStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notebooks WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("notebook", "delete", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("notebook", "delete", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrNotebookNotFound
	}
	return nil
}

// ItemCount implements store.NotebookStore.ItemCount.
func (s *NotebookStore) ItemCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE notebook_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, store.NewStoreError("notebook", "item_count", "query failed", err)
	}
	return n, nil
}

func scanNotebook(row rowScanner) (*domain.Notebook, error) {
	var (
		nb        domain.Notebook
		createdAt string
	)
	if err := row.Scan(&nb.ID, &nb.Name, &nb.Color, &createdAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		nb.CreatedAt = t
	}
	return &nb, nil
}
