package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

const itemColumns = `id, title, difficulty, tags, screenshot_path, ocr_text, notes,
	priority, notebook_id, created_at, last_reviewed, next_review_date,
	interval, ease_factor, repetition`

// ItemStore implements store.ItemStore on SQLite.
type ItemStore struct {
	db     store.DBTX
	index  *SearchIndex
	logger *slog.Logger
}

// NewItemStore creates the SQLite implementation of store.ItemStore.
// index may be nil, in which case every search is a substring scan.
func NewItemStore(db store.DBTX, index *SearchIndex, logger *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemStore{
		db:     db,
		index:  index,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

var _ store.ItemStore = (*ItemStore)(nil)

// WithTx returns an ItemStore bound to the given transaction.
func (s *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &ItemStore{db: tx, index: s.index, logger: s.logger}
}

// Create implements store.ItemStore.Create.
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	tags, err := json.Marshal(domain.NormalizeTags(item.Tags))
	if err != nil {
		return 0, store.NewStoreError("item", "create", "marshal tags", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (title, difficulty, tags, screenshot_path, ocr_text, notes,
			priority, notebook_id, created_at, interval, ease_factor, repetition)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, 0)`,
		item.Title, string(item.Difficulty), string(tags), item.ScreenshotPath,
		item.OCRText, item.Notes, boolToInt(item.Priority), item.NotebookID,
		item.CreatedAt.Format(time.RFC3339), domain.DefaultEaseFactor,
	)
	if err != nil {
		return 0, store.NewStoreError("item", "create", "insert failed", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.NewStoreError("item", "create", "read insert id", err)
	}
	item.ID = id
	item.ReviewState = domain.NewReviewState()

	s.logger.Debug("item created", slog.Int64("item_id", id))
	return id, nil
}

// GetByID implements store.ItemStore.GetByID.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, store.NewStoreError("item", "get", "scan failed", err)
	}
	return item, nil
}

// GetAll implements store.ItemStore.GetAll.
func (s *ItemStore) GetAll(ctx context.Context) ([]domain.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC`)
}

// GetRecent implements store.ItemStore.GetRecent.
func (s *ItemStore) GetRecent(ctx context.Context, limit int) ([]domain.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// Count implements store.ItemStore.Count.
func (s *ItemStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, store.NewStoreError("item", "count", "query failed", err)
	}
	return n, nil
}

// Update implements store.ItemStore.Update. Only the fields present in
// the patch are written; a zero patch is a no-op.
func (s *ItemStore) Update(ctx context.Context, id int64, update store.ItemUpdate) error {
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

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Difficulty != nil {
		if !update.Difficulty.IsValid() {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidDifficulty)
		}
		set("difficulty", string(*update.Difficulty))
	}
	if update.Tags != nil {
		tags, err := json.Marshal(domain.NormalizeTags(*update.Tags))
		if err != nil {
			return store.NewStoreError("item", "update", "marshal tags", err)
		}
		set("tags", string(tags))
	}
	if update.ScreenshotPath != nil {
		set("screenshot_path", *update.ScreenshotPath)
	}
	if update.OCRText != nil {
		set("ocr_text", *update.OCRText)
	}
	if update.Notes != nil {
		set("notes", *update.Notes)
	}
	if update.Priority != nil {
		set("priority", boolToInt(*update.Priority))
	}
	if update.Notebook != nil {
		set("notebook_id", *update.Notebook)
	}
	if update.LastReviewed != nil {
		set("last_reviewed", update.LastReviewed.Format(time.RFC3339))
	}
	if update.NextReview != nil {
		set("next_review_date", *update.NextReview)
	}
	if update.Interval != nil {
		set("interval", *update.Interval)
	}
	if update.EaseFactor != nil {
		set("ease_factor", *update.EaseFactor)
	}
	if update.Repetition != nil {
		set("repetition", *update.Repetition)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(fields, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return store.NewStoreError("item", "update", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("item", "update", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

// Delete implements store.ItemStore.Delete. The solutions and revision
// log children fall with the item via ON DELETE CASCADE; a single DELETE
// statement is atomic in SQLite, cascades included, so there is no window
// in which an orphan is observable.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return store.NewStoreError("item", "delete", "exec failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("item", "delete", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrItemNotFound
	}
	s.logger.Debug("item deleted", slog.Int64("item_id", id))
	return nil
}

// DueToday implements store.ItemStore.DueToday. SQLite sorts NULLs first
// on ascending order, which is exactly the "never scheduled is most
// overdue" ordering the due set wants.
func (s *ItemStore) DueToday(ctx context.Context, today string, notebookID *int64) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE (next_review_date IS NULL OR next_review_date <= ?)`
	args := []any{today}
	if notebookID != nil {
		query += ` AND notebook_id = ?`
		args = append(args, *notebookID)
	}
	query += ` ORDER BY next_review_date ASC, id ASC`
	return s.queryItems(ctx, query, args...)
}

// DueCount implements store.ItemStore.DueCount.
func (s *ItemStore) DueCount(ctx context.Context, today string, notebookID *int64) (int, error) {
	query := `SELECT COUNT(*) FROM items
		WHERE (next_review_date IS NULL OR next_review_date <= ?)`
	args := []any{today}
	if notebookID != nil {
		query += ` AND notebook_id = ?`
		args = append(args, *notebookID)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, store.NewStoreError("item", "due_count", "query failed", err)
	}
	return n, nil
}

// AllTags implements store.ItemStore.AllTags. Tag sets are stored as JSON
// per row, so the union is computed here rather than in SQL.
func (s *ItemStore) AllTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tags FROM items`)
	if err != nil {
		return nil, store.NewStoreError("item", "all_tags", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	set := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, store.NewStoreError("item", "all_tags", "scan failed", err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			continue
		}
		for _, t := range tags {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("item", "all_tags", "iterate rows", err)
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// Search implements store.ItemStore.Search. An empty query returns
// everything the filters allow. When the index is available the query
// goes through FTS5; an index miss or query-parse failure downgrades that
// single query to the substring scan, never the whole process.
func (s *ItemStore) Search(ctx context.Context, query string, filter store.SearchFilter) ([]domain.Item, error) {
	if strings.TrimSpace(query) == "" {
		where, args := filterClauses(filter, "")
		q := `SELECT ` + itemColumns + ` FROM items WHERE 1=1` + where +
			` ORDER BY created_at DESC, id DESC`
		return s.queryItems(ctx, q, args...)
	}

	if s.index != nil && s.index.Available() {
		items, err := s.index.Search(ctx, query, filter)
		if err == nil {
			return items, nil
		}
		s.logger.Debug("full-text query downgraded to substring scan",
			slog.String("query", query),
			slog.String("error", err.Error()))
	}

	return s.substringScan(ctx, query, filter)
}

// substringScan is the always-available fallback: each whitespace token
// must appear as a substring of at least one of the four text fields.
func (s *ItemStore) substringScan(ctx context.Context, query string, filter store.SearchFilter) ([]domain.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any
	for _, token := range strings.Fields(query) {
		q += ` AND (title LIKE ? ESCAPE '\' OR ocr_text LIKE ? ESCAPE '\'` +
			` OR notes LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`
		like := "%" + escapeLike(token) + "%"
		args = append(args, like, like, like, like)
	}
	where, filterArgs := filterClauses(filter, "")
	q += where + ` ORDER BY created_at DESC, id DESC`
	args = append(args, filterArgs...)
	return s.queryItems(ctx, q, args...)
}

func (s *ItemStore) queryItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("item", "query", "query failed", err)
	}
	defer func() { _ = rows.Close() }()
	return collectItems(rows)
}

// filterClauses renders the AND-ed filter predicates shared by the FTS
// path, the substring scan, and the empty-query listing. prefix
// qualifies column names when the query joins tables.
func filterClauses(filter store.SearchFilter, prefix string) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	if filter.Difficulty != nil {
		sb.WriteString(` AND ` + prefix + `difficulty = ?`)
		args = append(args, string(*filter.Difficulty))
	}
	if filter.Tag != nil {
		// Tags are stored as a JSON array of strings, so an exact member
		// match is a substring match on the quoted form.
		sb.WriteString(` AND ` + prefix + `tags LIKE ? ESCAPE '\'`)
		args = append(args, `%"`+escapeLike(*filter.Tag)+`"%`)
	}
	if filter.Notebook != nil {
		sb.WriteString(` AND ` + prefix + `notebook_id = ?`)
		args = append(args, *filter.Notebook)
	}
	if filter.Starred != nil {
		sb.WriteString(` AND ` + prefix + `priority = ?`)
		args = append(args, boolToInt(*filter.Starred))
	}
	return sb.String(), args
}

// escapeLike neutralizes LIKE wildcards so user text matches literally.
// Every LIKE clause taking an escaped pattern must carry ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		item         domain.Item
		difficulty   string
		tagsJSON     string
		priority     int
		notebook     sql.NullInt64
		createdAt    string
		lastReviewed sql.NullString
		nextReview   sql.NullString
	)

	err := row.Scan(
		&item.ID, &item.Title, &difficulty, &tagsJSON, &item.ScreenshotPath,
		&item.OCRText, &item.Notes, &priority, &notebook, &createdAt,
		&lastReviewed, &nextReview,
		&item.ReviewState.Interval, &item.ReviewState.EaseFactor, &item.ReviewState.Repetition,
	)
	if err != nil {
		return nil, err
	}

	item.Difficulty = domain.Difficulty(difficulty)
	item.Priority = priority != 0
	if notebook.Valid {
		item.NotebookID = &notebook.Int64
	}
	if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
		item.Tags = nil
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		item.CreatedAt = t
	}
	if lastReviewed.Valid {
		if t, err := time.Parse(time.RFC3339, lastReviewed.String); err == nil {
			item.ReviewState.LastReviewed = &t
		}
	}
	if nextReview.Valid {
		item.ReviewState.NextReview = &nextReview.String
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, store.NewStoreError("item", "query", "scan failed", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("item", "query", "iterate rows", err)
	}
	return items, nil
}
