package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

// ftsSchema is the shadow index over the items' text fields plus the
// triggers that keep it transactionally in step with the primary table.
// Because the triggers fire inside the same statement transaction as the
// item write, index and content can never diverge on the row-by-row path.
const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
	title, tags, ocr_text, notes,
	content='items', content_rowid='id',
	tokenize='unicode61'
);

CREATE TRIGGER IF NOT EXISTS items_fts_ai AFTER INSERT ON items BEGIN
	INSERT INTO items_fts(rowid, title, tags, ocr_text, notes)
	VALUES (new.id, new.title, new.tags, new.ocr_text, new.notes);
END;

CREATE TRIGGER IF NOT EXISTS items_fts_ad AFTER DELETE ON items BEGIN
	INSERT INTO items_fts(items_fts, rowid, title, tags, ocr_text, notes)
	VALUES ('delete', old.id, old.title, old.tags, old.ocr_text, old.notes);
END;

CREATE TRIGGER IF NOT EXISTS items_fts_au AFTER UPDATE ON items BEGIN
	INSERT INTO items_fts(items_fts, rowid, title, tags, ocr_text, notes)
	VALUES ('delete', old.id, old.title, old.tags, old.ocr_text, old.notes);
	INSERT INTO items_fts(rowid, title, tags, ocr_text, notes)
	VALUES (new.id, new.title, new.tags, new.ocr_text, new.notes);
END;
`

// SearchIndex implements store.SearchIndex on an FTS5 virtual table.
type SearchIndex struct {
	db        *sql.DB
	available bool
	logger    *slog.Logger
}

var _ store.SearchIndex = (*SearchIndex)(nil)

// newSearchIndex probes the full-text engine by creating the shadow table
// and its sync triggers. The probe runs exactly once per process; a build
// without FTS5 leaves the index permanently unavailable and every search
// takes the substring path instead. That outcome is a capability, not an
// error, so it is logged and swallowed.
func newSearchIndex(db *sql.DB, logger *slog.Logger) *SearchIndex {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &SearchIndex{
		db:     db,
		logger: logger.With(slog.String("component", "search_index")),
	}

	if _, err := db.Exec(ftsSchema); err != nil {
		idx.logger.Warn("full-text engine unavailable, search will use substring scans",
			slog.String("error", err.Error()))
		return idx
	}

	idx.available = true
	return idx
}

// Available implements store.SearchIndex.Available.
func (idx *SearchIndex) Available() bool {
	return idx.available
}

// Search implements store.SearchIndex.Search, ranking by bm25. The error
// return includes malformed-MATCH failures; the caller downgrades those
// to a substring scan for this query only.
func (idx *SearchIndex) Search(ctx context.Context, query string, filter store.SearchFilter) ([]domain.Item, error) {
	if !idx.available {
		return nil, fmt.Errorf("search index unavailable")
	}

	match := buildMatchQuery(query)
	if match == "" {
		return nil, fmt.Errorf("empty match query")
	}

	cols := make([]string, 0, 16)
	for _, c := range strings.Split(itemColumns, ",") {
		cols = append(cols, "i."+strings.TrimSpace(c))
	}
	q := `SELECT ` + strings.Join(cols, ", ") + `
		FROM items_fts f
		JOIN items i ON i.id = f.rowid
		WHERE items_fts MATCH ?`
	args := []any{match}

	where, filterArgs := filterClauses(filter, "i.")
	q += where + ` ORDER BY bm25(items_fts)`
	args = append(args, filterArgs...)

	rows, err := idx.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fts query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectItems(rows)
}

// Rebuild implements store.SearchIndex.Rebuild using the FTS5 rebuild
// command, repopulating the whole index from the content table. Required
// after bulk loads such as backup import, where rows may bypass the
// triggers depending on the load path.
func (idx *SearchIndex) Rebuild(ctx context.Context) error {
	if !idx.available {
		return nil
	}
	if _, err := idx.db.ExecContext(ctx,
		`INSERT INTO items_fts(items_fts) VALUES ('rebuild')`); err != nil {
		return store.NewStoreError("search_index", "rebuild", "exec failed", err)
	}
	idx.logger.Debug("search index rebuilt")
	return nil
}

// buildMatchQuery sanitizes free text into an FTS5 MATCH expression:
// whitespace-split tokens, each quoted and marked as a prefix term, so
// "binary" matches both "binary search" and "binarysearch". Returns ""
// for input with no usable tokens.
func buildMatchQuery(query string) string {
	var terms []string
	for _, token := range strings.Fields(query) {
		token = strings.ReplaceAll(token, `"`, ``)
		if token == "" {
			continue
		}
		terms = append(terms, `"`+token+`"*`)
	}
	return strings.Join(terms, " ")
}
