package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/algodeck/internal/domain"
)

// newTestDB opens a migrated database in a per-test temp directory. A
// real file rather than :memory: so the connection pool sees one shared
// database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "algodeck_test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestItemStore(t *testing.T, db *DB) *ItemStore {
	t.Helper()
	return NewItemStore(db.Conn(), db.Index(), nil)
}

// mustCreateItem inserts an item with sensible defaults and returns it
// with its assigned id.
func mustCreateItem(t *testing.T, s *ItemStore, title string, tags ...string) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(title, domain.DifficultyMedium, tags)
	require.NoError(t, err)
	_, err = s.Create(context.Background(), item)
	require.NoError(t, err)
	return item
}

// day renders a date offset in days from a fixed base, in the canonical
// review-date form.
func day(base time.Time, offset int) string {
	return base.AddDate(0, 0, offset).Format(domain.DateFormat)
}
