package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

func TestRevisionLogStore_LogAndByItem(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	logs := NewRevisionLogStore(db.Conn(), nil)
	ctx := context.Background()

	item := mustCreateItem(t, items, "Valid Parentheses")

	first := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)
	_, err := logs.Log(ctx, item.ID, domain.RatingAgain, first)
	require.NoError(t, err)
	_, err = logs.Log(ctx, item.ID, domain.RatingGood, second)
	require.NoError(t, err)

	entries, err := logs.ByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, domain.RatingGood, entries[0].Rating)
	assert.True(t, second.Equal(entries[0].Timestamp))
	assert.Equal(t, domain.RatingAgain, entries[1].Rating)
}

func TestRevisionLogStore_LogRejectsUnknownRating(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	logs := NewRevisionLogStore(db.Conn(), nil)

	_, err := logs.Log(context.Background(), 1, "brilliant", time.Now())
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestRevisionLogStore_Streak(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	today := base.Format(domain.DateFormat)

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{name: "no reviews", offsets: nil, want: 0},
		{name: "only today", offsets: []int{0}, want: 1},
		{name: "gap breaks streak", offsets: []int{0, -1, -2, -4}, want: 3},
		{name: "today missing", offsets: []int{-1, -2}, want: 0},
		{name: "unbroken week", offsets: []int{0, -1, -2, -3, -4, -5, -6}, want: 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := newTestDB(t)
			items := newTestItemStore(t, db)
			logs := NewRevisionLogStore(db.Conn(), nil)
			ctx := context.Background()

			item := mustCreateItem(t, items, "streak fodder")
			for _, off := range tt.offsets {
				_, err := logs.Log(ctx, item.ID, domain.RatingGood, base.AddDate(0, 0, off))
				require.NoError(t, err)
			}

			got, err := logs.Streak(ctx, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRevisionLogStore_Aggregates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	logs := NewRevisionLogStore(db.Conn(), nil)
	ctx := context.Background()

	a := mustCreateItem(t, items, "item a")
	b := mustCreateItem(t, items, "item b")

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	today := base.Format(domain.DateFormat)

	// Three reviews today, one two days ago.
	for _, l := range []struct {
		itemID int64
		rating domain.Rating
		at     time.Time
	}{
		{a.ID, domain.RatingGood, base},
		{a.ID, domain.RatingAgain, base.Add(time.Hour)},
		{b.ID, domain.RatingEasy, base.Add(2 * time.Hour)},
		{b.ID, domain.RatingGood, base.AddDate(0, 0, -2)},
	} {
		_, err := logs.Log(ctx, l.itemID, l.rating, l.at)
		require.NoError(t, err)
	}

	total, err := logs.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	todayCount, err := logs.CountOn(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 3, todayCount)

	unique, err := logs.UniqueItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unique)

	breakdown, err := logs.RatingBreakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Rating]int{
		domain.RatingGood:  2,
		domain.RatingAgain: 1,
		domain.RatingEasy:  1,
	}, breakdown)

	// Two active days with 3 and 1 reviews: mean 2.0.
	avg, err := logs.AvgPerActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, avg)

	perDay, err := logs.PerDay(ctx, today, 7)
	require.NoError(t, err)
	require.Len(t, perDay, 2)
	assert.Equal(t, store.DayCount{Day: day(base, -2), Count: 1}, perDay[0])
	assert.Equal(t, store.DayCount{Day: today, Count: 3}, perDay[1])

	// A window too narrow to reach the older day.
	perDay, err = logs.PerDay(ctx, today, 2)
	require.NoError(t, err)
	require.Len(t, perDay, 1)
	assert.Equal(t, today, perDay[0].Day)
}

func TestRevisionLogStore_AvgPerActiveDayEmpty(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	logs := NewRevisionLogStore(db.Conn(), nil)

	avg, err := logs.AvgPerActiveDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestRevisionLogStore_DeleteAll(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	logs := NewRevisionLogStore(db.Conn(), nil)
	ctx := context.Background()

	item := mustCreateItem(t, items, "doomed history")
	_, err := logs.Log(ctx, item.ID, domain.RatingGood, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, logs.DeleteAll(ctx))

	total, err := logs.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
