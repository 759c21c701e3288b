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

func TestRestorer_ReplaceAll(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	notebooks := NewNotebookStore(db.Conn(), nil)
	solutions := NewSolutionStore(db.Conn(), nil)
	logs := NewRevisionLogStore(db.Conn(), nil)
	restorer := NewRestorer(db.Conn(), db.Index(), nil)
	ctx := context.Background()

	// Pre-existing state that the restore must wipe.
	mustCreateItem(t, items, "stale item")

	created := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	reviewed := created.AddDate(0, 0, 30)
	next := "2026-02-20"
	nbID := int64(7)

	snap := store.Snapshot{
		Notebooks: []domain.Notebook{
			{ID: 7, Name: "Restored", Color: "#123456", CreatedAt: created},
		},
		Items: []domain.Item{
			{
				ID:         42,
				Title:      "Word Ladder",
				Difficulty: domain.DifficultyHard,
				Tags:       []string{"bfs", "graph"},
				NotebookID: &nbID,
				CreatedAt:  created,
				ReviewState: domain.ReviewState{
					Repetition:   3,
					Interval:     9,
					EaseFactor:   2.42,
					LastReviewed: &reviewed,
					NextReview:   &next,
				},
			},
		},
		Solutions: []domain.Solution{
			{ID: 5, ItemID: 42, Tier: domain.TierBest, Language: "go", CreatedAt: created},
		},
		Revisions: []domain.RevisionLogEntry{
			{ID: 9, ItemID: 42, Rating: domain.RatingGood, Timestamp: reviewed},
		},
	}

	require.NoError(t, restorer.ReplaceAll(ctx, snap))

	all, err := items.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// IDs and scheduling state carry over verbatim.
	got := all[0]
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Word Ladder", got.Title)
	require.NotNil(t, got.NotebookID)
	assert.Equal(t, int64(7), *got.NotebookID)
	assert.Equal(t, 3, got.ReviewState.Repetition)
	assert.Equal(t, 2.42, got.ReviewState.EaseFactor)
	require.NotNil(t, got.ReviewState.NextReview)
	assert.Equal(t, next, *got.ReviewState.NextReview)

	nb, err := notebooks.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Restored", nb.Name)

	sols, err := solutions.ByItem(ctx, 42)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.Equal(t, int64(5), sols[0].ID)

	entries, err := logs.ByItem(ctx, 42)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(9), entries[0].ID)

	// The restored content is searchable.
	found, err := items.Search(ctx, "ladder", store.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(42), found[0].ID)
}

func TestRestorer_FailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	restorer := NewRestorer(db.Conn(), db.Index(), nil)
	ctx := context.Background()

	survivor := mustCreateItem(t, items, "survivor")

	// A solution pointing at a missing item violates its foreign key,
	// rolling back the whole restore.
	snap := store.Snapshot{
		Items: []domain.Item{
			{ID: 1, Title: "ok", Difficulty: domain.DifficultyEasy, CreatedAt: time.Now().UTC()},
		},
		Solutions: []domain.Solution{
			{ID: 1, ItemID: 9999, Tier: domain.TierBrute, CreatedAt: time.Now().UTC()},
		},
	}

	err := restorer.ReplaceAll(ctx, snap)
	require.Error(t, err)

	got, err := items.GetByID(ctx, survivor.ID)
	require.NoError(t, err)
	assert.Equal(t, "survivor", got.Title)

	n, err := items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRestorer_EmptySnapshotClearsEverything(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	items := newTestItemStore(t, db)
	restorer := NewRestorer(db.Conn(), db.Index(), nil)
	ctx := context.Background()

	mustCreateItem(t, items, "about to vanish")

	require.NoError(t, restorer.ReplaceAll(ctx, store.Snapshot{}))

	n, err := items.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
