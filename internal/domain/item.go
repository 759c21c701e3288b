package domain

import (
	"time"
)

// DateFormat is the canonical calendar-date form used for review dates.
// Review dates carry no time component.
const DateFormat = "2006-01-02"

// Difficulty classifies how hard a problem is.
type Difficulty string

// Possible difficulty values.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ReviewState holds the per-item spaced-repetition scheduling fields.
// It is embedded in Item but conceptually separable: the scheduler reads
// and produces ReviewState values without touching the rest of the item.
type ReviewState struct {
	// Repetition counts consecutive successful reviews. A failing rating
	// resets it to zero.
	Repetition int `json:"repetition"`

	// Interval is the current review interval in days. It may be
	// fractional to represent sub-day intervals after a failing rating.
	Interval float64 `json:"interval"`

	// EaseFactor controls interval growth; never below MinEaseFactor.
	EaseFactor float64 `json:"ease_factor"`

	// LastReviewed is the time of the most recent review, nil if the item
	// has never been reviewed.
	LastReviewed *time.Time `json:"last_reviewed"`

	// NextReview is the scheduled review date in DateFormat form.
	// Nil means due immediately (never scheduled).
	NextReview *string `json:"next_review_date"`
}

// Default scheduling values for new items.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// NewReviewState returns the scheduling state assigned to a freshly
// created item: never reviewed, due immediately.
func NewReviewState() ReviewState {
	return ReviewState{
		Repetition: 0,
		Interval:   0,
		EaseFactor: DefaultEaseFactor,
	}
}

// Item is a captured coding-interview problem: the flashcard the user
// reviews. Tags preserve insertion order for display but are treated as a
// set for matching.
type Item struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Difficulty     Difficulty  `json:"difficulty"`
	Tags           []string    `json:"tags"`
	ScreenshotPath string      `json:"screenshot_path"`
	OCRText        string      `json:"ocr_text"`
	Notes          string      `json:"notes"`
	Priority       bool        `json:"priority"`
	NotebookID     *int64      `json:"notebook_id"`
	CreatedAt      time.Time   `json:"created_at"`
	ReviewState    ReviewState `json:"review_state"`
}

// NewItem creates an item with default scheduling state. Returns an error
// if validation fails.
func NewItem(title string, difficulty Difficulty, tags []string) (*Item, error) {
	item := &Item{
		Title:       title,
		Difficulty:  difficulty,
		Tags:        NormalizeTags(tags),
		CreatedAt:   time.Now().UTC(),
		ReviewState: NewReviewState(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.Title == "" {
		return ErrItemTitleEmpty
	}

	if !i.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	return nil
}

// HasTag reports whether the item carries the given tag. Comparison is
// case-sensitive, matching the set semantics of the tag store.
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags strips empty entries and duplicates while preserving the
// first-seen order of the remaining tags.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
