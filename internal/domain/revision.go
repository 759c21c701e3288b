package domain

import "time"

// Rating is the user's judgment of a review.
type Rating string

// Possible rating values.
const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// IsValid reports whether r is a known rating.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// Ratings lists all valid ratings in ascending quality order.
func Ratings() []Rating {
	return []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}
}

// RevisionLogEntry is one immutable rating event. Entries are only ever
// inserted or bulk-deleted, never updated.
type RevisionLogEntry struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Rating    Rating    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
