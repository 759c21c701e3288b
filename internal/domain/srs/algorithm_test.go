package srs

import (
	"testing"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed midday clock so minute-scale advances never cross a date boundary.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newState() domain.ReviewState {
	return domain.NewReviewState()
}

func TestComputeNextRejectsUnknownRating(t *testing.T) {
	t.Parallel()

	_, err := ComputeNext(domain.Rating("perfect"), newState(), domain.DefaultIntervalConfig(), testNow)
	require.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestComputeNextIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()
	state := domain.ReviewState{Repetition: 3, Interval: 6, EaseFactor: 2.2}

	first, err := ComputeNext(domain.RatingGood, state, cfg, testNow)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ComputeNext(domain.RatingGood, state, cfg, testNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeNextFailingRatings(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()

	testCases := []struct {
		name         string
		rating       domain.Rating
		state        domain.ReviewState
		wantInterval float64
	}{
		{
			name:         "again resets repetition and schedules configured minutes ahead",
			rating:       domain.RatingAgain,
			state:        domain.ReviewState{Repetition: 2, Interval: 2, EaseFactor: 2.5},
			wantInterval: 1.0 / 1440,
		},
		{
			name:         "again resets even a long streak",
			rating:       domain.RatingAgain,
			state:        domain.ReviewState{Repetition: 9, Interval: 120, EaseFactor: 2.5},
			wantInterval: 1.0 / 1440,
		},
		{
			name:         "hard is algorithmically failing but takes its own minute knob",
			rating:       domain.RatingHard,
			state:        domain.ReviewState{Repetition: 4, Interval: 15, EaseFactor: 2.1},
			wantInterval: 10.0 / 1440,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next, err := ComputeNext(tc.rating, tc.state, cfg, testNow)
			require.NoError(t, err)

			assert.Equal(t, 0, next.Repetition, "failing rating must reset repetition")
			assert.InDelta(t, tc.wantInterval, next.Interval, 1e-9)
			assert.Equal(t, tc.state.EaseFactor, next.EaseFactor, "ease factor unchanged on failure")

			// A sub-day interval resolves to the immediate future: the
			// stored date stays on today's calendar day.
			require.NotNil(t, next.NextReview)
			assert.Equal(t, testNow.Format(domain.DateFormat), *next.NextReview)
		})
	}
}

func TestComputeNextPassingProgression(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()

	// Scenario A: a fresh item rated good.
	first, err := ComputeNext(domain.RatingGood, newState(), cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repetition)
	assert.Equal(t, float64(cfg.GoodDays), first.Interval)
	assert.InDelta(t, 2.36, first.EaseFactor, 1e-9)
	require.NotNil(t, first.NextReview)
	assert.Equal(t, testNow.AddDate(0, 0, 1).Format(domain.DateFormat), *first.NextReview)
	require.NotNil(t, first.LastReviewed)
	assert.True(t, first.LastReviewed.Equal(testNow))

	// Scenario B: the same item rated good again doubles the knob.
	second, err := ComputeNext(domain.RatingGood, first, cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Repetition)
	assert.Equal(t, float64(2*cfg.GoodDays), second.Interval)

	// From the third success on, the interval grows by the ease factor.
	third, err := ComputeNext(domain.RatingGood, second, cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 3, third.Repetition)
	assert.Equal(t, 4.0, third.Interval, "round(2 * 2.22)")
}

func TestComputeNextEasyUsesEasyKnob(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()

	first, err := ComputeNext(domain.RatingEasy, newState(), cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repetition)
	assert.Equal(t, float64(cfg.EasyDays), first.Interval)
	assert.InDelta(t, 2.6, first.EaseFactor, 1e-9)

	second, err := ComputeNext(domain.RatingEasy, first, cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, float64(2*cfg.EasyDays), second.Interval)
}

func TestComputeNextEaseFactorFloor(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()

	for _, rating := range domain.Ratings() {
		state := domain.ReviewState{Repetition: 5, Interval: 10, EaseFactor: domain.MinEaseFactor}
		next, err := ComputeNext(rating, state, cfg, testNow)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.EaseFactor, domain.MinEaseFactor,
			"rating %q drove ease factor below the floor", rating)
	}
}

func TestComputeNextConfigChangePropagation(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()

	before, err := ComputeNext(domain.RatingEasy, newState(), cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 4.0, before.Interval)

	// Tuning the knob changes only subsequent computations. The state
	// produced under the old configuration is a value and stays as-is.
	cfg.EasyDays = 7
	after, err := ComputeNext(domain.RatingEasy, newState(), cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 7.0, after.Interval)
	assert.Equal(t, 4.0, before.Interval)
}

func TestComputeNextMultiDayDateAdvance(t *testing.T) {
	t.Parallel()

	cfg := domain.DefaultIntervalConfig()
	state := domain.ReviewState{Repetition: 2, Interval: 10, EaseFactor: 2.5}

	next, err := ComputeNext(domain.RatingGood, state, cfg, testNow)
	require.NoError(t, err)
	assert.Equal(t, 25.0, next.Interval)
	require.NotNil(t, next.NextReview)
	assert.Equal(t, testNow.AddDate(0, 0, 25).Format(domain.DateFormat), *next.NextReview)
}
