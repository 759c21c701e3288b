// Package backup serializes the whole deck to a portable JSON bundle and
// restores it with a transactional replace-all import. A markdown export
// renders items and their solutions for reading outside the app.
package backup

import (
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
)

// BundleVersion is the current bundle format version.
const BundleVersion = 1

// Bundle is the portable backup payload. The four collections are flat
// row records keyed by their original ids so references survive a round
// trip. Notebooks are optional for bundles written before they existed.
type Bundle struct {
	Version    int               `json:"version"`
	ID         string            `json:"id"`
	ExportedAt string            `json:"exported_at"`
	Items      *[]ItemRecord     `json:"items"`
	Solutions  *[]SolutionRecord `json:"solutions"`
	Revisions  *[]RevisionRecord `json:"revision_logs"`
	Notebooks  []NotebookRecord  `json:"notebooks,omitempty"`
}

// ItemRecord is one item row in bundle form.
type ItemRecord struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"            validate:"required"`
	Difficulty     string   `json:"difficulty"       validate:"oneof=Easy Medium Hard"`
	Tags           []string `json:"tags"`
	ScreenshotPath string   `json:"screenshot_path"`
	OCRText        string   `json:"ocr_text"`
	Notes          string   `json:"notes"`
	Priority       bool     `json:"priority"`
	NotebookID     *int64   `json:"notebook_id"`
	CreatedAt      string   `json:"created_at"`
	LastReviewed   *string  `json:"last_reviewed"`
	NextReview     *string  `json:"next_review_date"`
	Interval       float64  `json:"interval"`
	EaseFactor     float64  `json:"ease_factor"`
	Repetition     int      `json:"repetition"`
}

// SolutionRecord is one solution row in bundle form.
type SolutionRecord struct {
	ID              int64  `json:"id"`
	ItemID          int64  `json:"item_id"`
	Tier            string `json:"tier"             validate:"oneof=brute optimized best"`
	Language        string `json:"language"`
	Code            string `json:"code"`
	Explanation     string `json:"explanation"`
	TimeComplexity  string `json:"time_complexity"`
	SpaceComplexity string `json:"space_complexity"`
	CreatedAt       string `json:"created_at"`
}

// RevisionRecord is one revision log row in bundle form.
type RevisionRecord struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"item_id"`
	Rating    string `json:"rating"    validate:"oneof=again hard good easy"`
	Timestamp string `json:"timestamp"`
}

// NotebookRecord is one notebook row in bundle form.
type NotebookRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"  validate:"required"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

func itemRecord(item domain.Item) ItemRecord {
	rec := ItemRecord{
		ID:             item.ID,
		Title:          item.Title,
		Difficulty:     string(item.Difficulty),
		Tags:           item.Tags,
		ScreenshotPath: item.ScreenshotPath,
		OCRText:        item.OCRText,
		Notes:          item.Notes,
		Priority:       item.Priority,
		NotebookID:     item.NotebookID,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		NextReview:     item.ReviewState.NextReview,
		Interval:       item.ReviewState.Interval,
		EaseFactor:     item.ReviewState.EaseFactor,
		Repetition:     item.ReviewState.Repetition,
	}
	if item.ReviewState.LastReviewed != nil {
		s := item.ReviewState.LastReviewed.Format(time.RFC3339)
		rec.LastReviewed = &s
	}
	return rec
}

func (r ItemRecord) toDomain() domain.Item {
	item := domain.Item{
		ID:             r.ID,
		Title:          r.Title,
		Difficulty:     domain.Difficulty(r.Difficulty),
		Tags:           domain.NormalizeTags(r.Tags),
		ScreenshotPath: r.ScreenshotPath,
		OCRText:        r.OCRText,
		Notes:          r.Notes,
		Priority:       r.Priority,
		NotebookID:     r.NotebookID,
		CreatedAt:      parseTime(r.CreatedAt),
		ReviewState: domain.ReviewState{
			Repetition: r.Repetition,
			Interval:   r.Interval,
			EaseFactor: r.EaseFactor,
			NextReview: r.NextReview,
		},
	}
	if item.ReviewState.EaseFactor == 0 {
		item.ReviewState.EaseFactor = domain.DefaultEaseFactor
	}
	if r.LastReviewed != nil {
		if t, err := time.Parse(time.RFC3339, *r.LastReviewed); err == nil {
			item.ReviewState.LastReviewed = &t
		}
	}
	return item
}

func solutionRecord(sol domain.Solution) SolutionRecord {
	return SolutionRecord{
		ID:              sol.ID,
		ItemID:          sol.ItemID,
		Tier:            string(sol.Tier),
		Language:        sol.Language,
		Code:            sol.Code,
		Explanation:     sol.Explanation,
		TimeComplexity:  sol.TimeComplexity,
		SpaceComplexity: sol.SpaceComplexity,
		CreatedAt:       sol.CreatedAt.Format(time.RFC3339),
	}
}

func (r SolutionRecord) toDomain() domain.Solution {
	return domain.Solution{
		ID:              r.ID,
		ItemID:          r.ItemID,
		Tier:            domain.SolutionTier(r.Tier),
		Language:        r.Language,
		Code:            r.Code,
		Explanation:     r.Explanation,
		TimeComplexity:  r.TimeComplexity,
		SpaceComplexity: r.SpaceComplexity,
		CreatedAt:       parseTime(r.CreatedAt),
	}
}

func revisionRecord(entry domain.RevisionLogEntry) RevisionRecord {
	return RevisionRecord{
		ID:        entry.ID,
		ItemID:    entry.ItemID,
		Rating:    string(entry.Rating),
		Timestamp: entry.Timestamp.Format(time.RFC3339),
	}
}

func (r RevisionRecord) toDomain() domain.RevisionLogEntry {
	return domain.RevisionLogEntry{
		ID:        r.ID,
		ItemID:    r.ItemID,
		Rating:    domain.Rating(r.Rating),
		Timestamp: parseTime(r.Timestamp),
	}
}

func notebookRecord(nb domain.Notebook) NotebookRecord {
	return NotebookRecord{
		ID:        nb.ID,
		Name:      nb.Name,
		Color:     nb.Color,
		CreatedAt: nb.CreatedAt.Format(time.RFC3339),
	}
}

func (r NotebookRecord) toDomain() domain.Notebook {
	return domain.Notebook{
		ID:        r.ID,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: parseTime(r.CreatedAt),
	}
}

// parseTime reads an RFC3339 timestamp, falling back to the current time
// for records that predate timestamping.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now().UTC()
}
