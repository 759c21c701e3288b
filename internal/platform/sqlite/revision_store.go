package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

// RevisionLogStore implements store.RevisionLogStore on SQLite. The table
// is append-only: nothing here issues an UPDATE.
type RevisionLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRevisionLogStore creates the SQLite implementation of
// store.RevisionLogStore.
func NewRevisionLogStore(db store.DBTX, logger *slog.Logger) *RevisionLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RevisionLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "revision_log_store")),
	}
}

var _ store.RevisionLogStore = (*RevisionLogStore)(nil)

// WithTx returns a RevisionLogStore bound to the given transaction.
func (s *RevisionLogStore) WithTx(tx *sql.Tx) store.RevisionLogStore {
	return &RevisionLogStore{db: tx, logger: s.logger}
}

// Log implements store.RevisionLogStore.Log.
func (s *RevisionLogStore) Log(ctx context.Context, itemID int64, rating domain.Rating, at time.Time) (int64, error) {
	if !rating.IsValid() {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidRating)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO revision_logs (item_id, rating, timestamp) VALUES (?, ?, ?)`,
		itemID, string(rating), at.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, store.NewStoreError("revision_log", "log", "insert failed", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.NewStoreError("revision_log", "log", "read insert id", err)
	}
	return id, nil
}

// ByItem implements store.RevisionLogStore.ByItem.
func (s *RevisionLogStore) ByItem(ctx context.Context, itemID int64) ([]domain.RevisionLogEntry, error) {
	return s.queryEntries(ctx, `
		SELECT id, item_id, rating, timestamp FROM revision_logs
		WHERE item_id = ? ORDER BY timestamp DESC, id DESC`, itemID)
}

// GetAll implements store.RevisionLogStore.GetAll.
func (s *RevisionLogStore) GetAll(ctx context.Context) ([]domain.RevisionLogEntry, error) {
	return s.queryEntries(ctx, `
		SELECT id, item_id, rating, timestamp FROM revision_logs
		ORDER BY timestamp DESC, id DESC`)
}

// Total implements store.RevisionLogStore.Total.
func (s *RevisionLogStore) Total(ctx context.Context) (int, error) {
	return s.scanCount(ctx, `SELECT COUNT(*) FROM revision_logs`)
}

// CountOn implements store.RevisionLogStore.CountOn.
func (s *RevisionLogStore) CountOn(ctx context.Context, day string) (int, error) {
	return s.scanCount(ctx,
		`SELECT COUNT(*) FROM revision_logs WHERE DATE(timestamp) = ?`, day)
}

// Streak implements store.RevisionLogStore.Streak: collect the distinct
// review days newest first, then walk backward from today one day at a
// time until the first gap.
func (s *RevisionLogStore) Streak(ctx context.Context, today string) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT DATE(timestamp) AS day FROM revision_logs ORDER BY day DESC`)
	if err != nil {
		return 0, store.NewStoreError("revision_log", "streak", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	start, err := time.Parse(domain.DateFormat, today)
	if err != nil {
		return 0, store.NewStoreError("revision_log", "streak", "parse today", err)
	}

	streak := 0
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, store.NewStoreError("revision_log", "streak", "scan failed", err)
		}
		expected := start.AddDate(0, 0, -streak).Format(domain.DateFormat)
		if day != expected {
			break
		}
		streak++
	}
	if err := rows.Err(); err != nil {
		return 0, store.NewStoreError("revision_log", "streak", "iterate rows", err)
	}
	return streak, nil
}

// PerDay implements store.RevisionLogStore.PerDay for a trailing window
// ending at today. Days without reviews are omitted from the result.
func (s *RevisionLogStore) PerDay(ctx context.Context, today string, days int) ([]store.DayCount, error) {
	end, err := time.Parse(domain.DateFormat, today)
	if err != nil {
		return nil, store.NewStoreError("revision_log", "per_day", "parse today", err)
	}
	since := end.AddDate(0, 0, -(days - 1)).Format(domain.DateFormat)

	rows, err := s.db.QueryContext(ctx, `
		SELECT DATE(timestamp) AS day, COUNT(*) AS count FROM revision_logs
		WHERE DATE(timestamp) >= ? AND DATE(timestamp) <= ?
		GROUP BY day ORDER BY day ASC`, since, today)
	if err != nil {
		return nil, store.NewStoreError("revision_log", "per_day", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []store.DayCount
	for rows.Next() {
		var dc store.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, store.NewStoreError("revision_log", "per_day", "scan failed", err)
		}
		out = append(out, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("revision_log", "per_day", "iterate rows", err)
	}
	return out, nil
}

// RatingBreakdown implements store.RevisionLogStore.RatingBreakdown.
func (s *RevisionLogStore) RatingBreakdown(ctx context.Context) (map[domain.Rating]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM revision_logs GROUP BY rating`)
	if err != nil {
		return nil, store.NewStoreError("revision_log", "breakdown", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[domain.Rating]int)
	for rows.Next() {
		var (
			rating string
			count  int
		)
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, store.NewStoreError("revision_log", "breakdown", "scan failed", err)
		}
		out[domain.Rating(rating)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("revision_log", "breakdown", "iterate rows", err)
	}
	return out, nil
}

// UniqueItems implements store.RevisionLogStore.UniqueItems.
func (s *RevisionLogStore) UniqueItems(ctx context.Context) (int, error) {
	return s.scanCount(ctx, `SELECT COUNT(DISTINCT item_id) FROM revision_logs`)
}

// AvgPerActiveDay implements store.RevisionLogStore.AvgPerActiveDay,
// rounded to one decimal.
func (s *RevisionLogStore) AvgPerActiveDay(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT AVG(cnt) FROM (
			SELECT COUNT(*) AS cnt FROM revision_logs GROUP BY DATE(timestamp)
		)`).Scan(&avg)
	if err != nil {
		return 0, store.NewStoreError("revision_log", "avg_per_day", "query failed", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return math.Round(avg.Float64*10) / 10, nil
}

// DeleteAll implements store.RevisionLogStore.DeleteAll.
func (s *RevisionLogStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM revision_logs`); err != nil {
		return store.NewStoreError("revision_log", "delete_all", "exec failed", err)
	}
	return nil
}

func (s *RevisionLogStore) queryEntries(ctx context.Context, query string, args ...any) ([]domain.RevisionLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("revision_log", "query", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.RevisionLogEntry
	for rows.Next() {
		var (
			e      domain.RevisionLogEntry
			rating string
			ts     string
		)
		if err := rows.Scan(&e.ID, &e.ItemID, &rating, &ts); err != nil {
			return nil, store.NewStoreError("revision_log", "query", "scan failed", err)
		}
		e.Rating = domain.Rating(rating)
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("revision_log", "query", "iterate rows", err)
	}
	return entries, nil
}

func (s *RevisionLogStore) scanCount(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, store.NewStoreError("revision_log", "count", "query failed", err)
	}
	return n, nil
}
