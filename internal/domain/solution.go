package domain

import "time"

// SolutionTier classifies a solution's approach. Tiers form an ordered
// progression from brute force toward the best known approach, not a flat
// set of categories.
type SolutionTier string

// Possible tier values, in progression order.
const (
	TierBrute     SolutionTier = "brute"
	TierOptimized SolutionTier = "optimized"
	TierBest      SolutionTier = "best"
)

// IsValid reports whether t is a known tier.
func (t SolutionTier) IsValid() bool {
	switch t {
	case TierBrute, TierOptimized, TierBest:
		return true
	default:
		return false
	}
}

// Order returns the tier's position in the brute → optimized → best
// progression, for sorting. Unknown tiers sort last.
func (t SolutionTier) Order() int {
	switch t {
	case TierBrute:
		return 0
	case TierOptimized:
		return 1
	case TierBest:
		return 2
	default:
		return 3
	}
}

// Label returns the display name for the tier.
func (t SolutionTier) Label() string {
	switch t {
	case TierBrute:
		return "Brute Force"
	case TierOptimized:
		return "Optimized"
	case TierBest:
		return "Best"
	default:
		return string(t)
	}
}

// Solution is one approach to an item's problem. An item may hold several
// solutions per tier, ordered by creation time. Complexity strings are
// free text and never parsed.
type Solution struct {
	ID              int64        `json:"id"`
	ItemID          int64        `json:"item_id"`
	Tier            SolutionTier `json:"tier"`
	Language        string       `json:"language"`
	Code            string       `json:"code"`
	Explanation     string       `json:"explanation"`
	TimeComplexity  string       `json:"time_complexity"`
	SpaceComplexity string       `json:"space_complexity"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Validate checks if the Solution has valid data.
func (s *Solution) Validate() error {
	if !s.Tier.IsValid() {
		return ErrInvalidTier
	}
	return nil
}
