// Package srs implements the spaced-repetition scheduling engine, an SM-2
// variant with configurable sub-day (again/hard) and multi-day (good/easy)
// intervals. ComputeNext is a pure function: for a fixed rating, state,
// configuration, and clock reading it always produces the same output and
// performs no I/O.
package srs

import (
	"math"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
)

const minutesPerDay = 1440

// qualityFor maps the four discrete ratings onto the classical SM-2
// 0–5 quality scale. "hard" maps to quality 2 and therefore lands in the
// failing (quality < 3) branch even though the UI treats it as a near-pass
// with its own short interval; that dual nature is deliberate and must not
// be reclassified.
func qualityFor(r domain.Rating) int {
	switch r {
	case domain.RatingAgain:
		return 0
	case domain.RatingHard:
		return 2
	case domain.RatingGood:
		return 3
	case domain.RatingEasy:
		return 5
	default:
		return -1
	}
}

// ComputeNext applies one rating to an item's scheduling state and returns
// the new state. The configuration snapshot is passed in explicitly; there
// is no hidden global.
//
// Failing ratings (again, hard) reset the repetition count and take their
// interval directly from the configured minute knob, stored as a
// fractional day so that two consecutive "again" ratings on the same day
// both resolve to the immediate future instead of compounding. The ease
// factor is left untouched on failure and otherwise follows the classical
// SM-2 update, floored at domain.MinEaseFactor.
func ComputeNext(
	rating domain.Rating,
	state domain.ReviewState,
	cfg domain.IntervalConfig,
	now time.Time,
) (domain.ReviewState, error) {
	quality := qualityFor(rating)
	if quality < 0 {
		return domain.ReviewState{}, domain.ErrInvalidRating
	}

	next := state

	if quality < 3 {
		// Failing branch: reset repetition, schedule minutes ahead.
		next.Repetition = 0
		minutes := cfg.AgainMinutes
		if rating == domain.RatingHard {
			minutes = cfg.HardMinutes
		}
		next.Interval = float64(minutes) / minutesPerDay
	} else {
		next.Repetition = state.Repetition + 1

		days := cfg.GoodDays
		if quality >= 5 {
			days = cfg.EasyDays
		}

		switch next.Repetition {
		case 1:
			next.Interval = float64(days)
		case 2:
			next.Interval = float64(2 * days)
		default:
			next.Interval = math.Round(state.Interval * state.EaseFactor)
		}

		q := float64(quality)
		ease := state.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if ease < domain.MinEaseFactor {
			ease = domain.MinEaseFactor
		}
		// Keep the stored factor to two decimals.
		next.EaseFactor = math.Round(ease*100) / 100
	}

	reviewed := now
	next.LastReviewed = &reviewed
	date := nextReviewDate(next.Interval, now)
	next.NextReview = &date

	return next, nil
}

// nextReviewDate advances the clock by the computed interval and serializes
// the result as a calendar date. Sub-day intervals advance by rounded
// minutes, everything else by rounded whole days. The interval itself stays
// fractional in the stored state; only the clock advance is rounded.
func nextReviewDate(interval float64, now time.Time) string {
	var at time.Time
	if interval < 1 {
		at = now.Add(time.Duration(math.Round(interval*minutesPerDay)) * time.Minute)
	} else {
		at = now.AddDate(0, 0, int(math.Round(interval)))
	}
	return at.Format(domain.DateFormat)
}
