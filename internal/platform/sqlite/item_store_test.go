package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

func TestItemStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	item, err := domain.NewItem("Two Sum", domain.DifficultyEasy, []string{"array", "hashmap"})
	require.NoError(t, err)
	item.Notes = "classic warm-up"

	id, err := items.Create(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)

	got, err := items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", got.Title)
	assert.Equal(t, domain.DifficultyEasy, got.Difficulty)
	assert.Equal(t, []string{"array", "hashmap"}, got.Tags)
	assert.Equal(t, "classic warm-up", got.Notes)

	// New items start unscheduled with default ease.
	assert.Equal(t, 0, got.ReviewState.Repetition)
	assert.Equal(t, 0.0, got.ReviewState.Interval)
	assert.Equal(t, domain.DefaultEaseFactor, got.ReviewState.EaseFactor)
	assert.Nil(t, got.ReviewState.LastReviewed)
	assert.Nil(t, got.ReviewState.NextReview)
}

func TestItemStore_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	_, err := items.Create(ctx, &domain.Item{Title: "", Difficulty: domain.DifficultyEasy})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrItemTitleEmpty)

	_, err = items.Create(ctx, &domain.Item{Title: "x", Difficulty: "impossible"})
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestItemStore_GetByIDNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)

	_, err := items.GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestItemStore_Update(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	item := mustCreateItem(t, items, "Rotate Array", "array")

	title := "Rotate Array II"
	notes := "watch the modulo"
	priority := true
	err := items.Update(ctx, item.ID, store.ItemUpdate{
		Title:    &title,
		Notes:    &notes,
		Priority: &priority,
	})
	require.NoError(t, err)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rotate Array II", got.Title)
	assert.Equal(t, "watch the modulo", got.Notes)
	assert.True(t, got.Priority)
	// Untouched fields survive.
	assert.Equal(t, []string{"array"}, got.Tags)
}

func TestItemStore_UpdateNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)

	title := "ghost"
	err := items.Update(context.Background(), 999, store.ItemUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemStore_UpdateEmptyPatchIsNoOp(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)

	// Even for a missing id: nothing to write means nothing to check.
	err := items.Update(context.Background(), 999, store.ItemUpdate{})
	assert.NoError(t, err)
}

func TestItemStore_UpdateReviewState(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	item := mustCreateItem(t, items, "LRU Cache")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	next := "2026-03-14"
	state := domain.ReviewState{
		Repetition:   1,
		Interval:     4,
		EaseFactor:   2.36,
		LastReviewed: &now,
		NextReview:   &next,
	}
	require.NoError(t, items.Update(ctx, item.ID, store.ReviewStateUpdate(state)))

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewState.Repetition)
	assert.Equal(t, 4.0, got.ReviewState.Interval)
	assert.Equal(t, 2.36, got.ReviewState.EaseFactor)
	require.NotNil(t, got.ReviewState.LastReviewed)
	assert.True(t, now.Equal(*got.ReviewState.LastReviewed))
	require.NotNil(t, got.ReviewState.NextReview)
	assert.Equal(t, next, *got.ReviewState.NextReview)
}

func TestItemStore_UpdateNotebookAssignment(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	notebooks := NewNotebookStore(db.Conn(), nil)
	ctx := context.Background()

	nb, err := domain.NewNotebook("Graphs", "")
	require.NoError(t, err)
	nbID, err := notebooks.Create(ctx, nb)
	require.NoError(t, err)

	item := mustCreateItem(t, items, "Course Schedule")

	assign := sql.NullInt64{Int64: nbID, Valid: true}
	require.NoError(t, items.Update(ctx, item.ID, store.ItemUpdate{Notebook: &assign}))
	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NotebookID)
	assert.Equal(t, nbID, *got.NotebookID)

	// An explicit invalid NullInt64 clears the assignment.
	unassign := sql.NullInt64{}
	require.NoError(t, items.Update(ctx, item.ID, store.ItemUpdate{Notebook: &unassign}))
	got, err = items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NotebookID)
}

func TestItemStore_DeleteCascades(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	solutions := NewSolutionStore(db.Conn(), nil)
	logs := NewRevisionLogStore(db.Conn(), nil)
	ctx := context.Background()

	item := mustCreateItem(t, items, "Merge Intervals")
	keeper := mustCreateItem(t, items, "Insert Interval")

	_, err := solutions.Create(ctx, &domain.Solution{
		ItemID: item.ID, Tier: domain.TierBrute, Language: "go", Code: "// O(n^2)",
	})
	require.NoError(t, err)
	_, err = solutions.Create(ctx, &domain.Solution{
		ItemID: keeper.ID, Tier: domain.TierBest, Language: "go", Code: "// sort first",
	})
	require.NoError(t, err)
	_, err = logs.Log(ctx, item.ID, domain.RatingGood, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, item.ID))

	_, err = items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	// No orphans: the deleted item's children are gone, the other item's
	// solutions are untouched.
	orphans, err := solutions.ByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
	kept, err := solutions.ByItem(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	entries, err := logs.ByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestItemStore_DeleteNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)

	err := items.Delete(context.Background(), 777)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemStore_DueToday(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	today := "2026-03-10"
	overdue := mustCreateItem(t, items, "overdue")
	dueNow := mustCreateItem(t, items, "due today")
	future := mustCreateItem(t, items, "future")
	unscheduled := mustCreateItem(t, items, "never reviewed")

	setNext := func(id int64, date string) {
		next := sql.NullString{String: date, Valid: true}
		require.NoError(t, items.Update(ctx, id, store.ItemUpdate{NextReview: &next}))
	}
	setNext(overdue.ID, "2026-03-08")
	setNext(dueNow.ID, today)
	setNext(future.ID, "2026-03-15")

	due, err := items.DueToday(ctx, today, nil)
	require.NoError(t, err)
	require.Len(t, due, 3)

	// Never-scheduled first, then by ascending review date.
	assert.Equal(t, unscheduled.ID, due[0].ID)
	assert.Equal(t, overdue.ID, due[1].ID)
	assert.Equal(t, dueNow.ID, due[2].ID)

	n, err := items.DueCount(ctx, today, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestItemStore_DueTodayNotebookScope(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	notebooks := NewNotebookStore(db.Conn(), nil)
	ctx := context.Background()

	nb, err := domain.NewNotebook("DP", "")
	require.NoError(t, err)
	nbID, err := notebooks.Create(ctx, nb)
	require.NoError(t, err)

	inside := mustCreateItem(t, items, "Coin Change")
	mustCreateItem(t, items, "Word Break")

	assign := sql.NullInt64{Int64: nbID, Valid: true}
	require.NoError(t, items.Update(ctx, inside.ID, store.ItemUpdate{Notebook: &assign}))

	due, err := items.DueToday(ctx, "2026-03-10", &nbID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, inside.ID, due[0].ID)
}

func TestItemStore_AllTags(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)

	mustCreateItem(t, items, "a", "graph", "bfs")
	mustCreateItem(t, items, "b", "bfs", "queue")
	mustCreateItem(t, items, "c")

	tags, err := items.AllTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bfs", "graph", "queue"}, tags)
}

func TestItemStore_GetRecentAndCount(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		item, err := domain.NewItem(title, domain.DifficultyMedium, nil)
		require.NoError(t, err)
		item.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err = items.Create(ctx, item)
		require.NoError(t, err)
	}

	n, err := items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recent, err := items.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)
}
