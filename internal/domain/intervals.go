package domain

import "fmt"

// IntervalConfig is the singleton record of the four user-tunable
// rating→interval knobs. Again and Hard are expressed in minutes, Good
// and Easy in days. It is loaded once at startup, cached in memory, and
// persisted on every change; the scheduler consults the current snapshot
// on every rating submission.
type IntervalConfig struct {
	AgainMinutes int `json:"again"`
	HardMinutes  int `json:"hard"`
	GoodDays     int `json:"good"`
	EasyDays     int `json:"easy"`
}

// DefaultIntervalConfig returns the first-run defaults: 1 minute, 10
// minutes, 1 day, 4 days.
func DefaultIntervalConfig() IntervalConfig {
	return IntervalConfig{
		AgainMinutes: 1,
		HardMinutes:  10,
		GoodDays:     1,
		EasyDays:     4,
	}
}

// Validate checks that every knob is positive.
func (c IntervalConfig) Validate() error {
	if c.AgainMinutes <= 0 || c.HardMinutes <= 0 || c.GoodDays <= 0 || c.EasyDays <= 0 {
		return ErrInvalidIntervalConfig
	}
	return nil
}

// Label formats the knob for the given rating for display on rating
// buttons: sub-60-minute values render as "Nm", 60 and above as "Nh",
// day values as "Nd".
func (c IntervalConfig) Label(r Rating) string {
	switch r {
	case RatingAgain, RatingHard:
		m := c.AgainMinutes
		if r == RatingHard {
			m = c.HardMinutes
		}
		if m < 60 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dh", (m+30)/60)
	case RatingGood:
		return fmt.Sprintf("%dd", c.GoodDays)
	case RatingEasy:
		return fmt.Sprintf("%dd", c.EasyDays)
	default:
		return ""
	}
}
