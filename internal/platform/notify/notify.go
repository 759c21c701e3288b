// Package notify defines the daily review-reminder boundary. Scheduling
// is fire-and-forget and fully independent of review logic; a missing or
// failing scheduler never affects the deck.
package notify

import (
	"context"
	"log/slog"
)

// Schedule describes a recurring daily reminder.
type Schedule struct {
	// Hour and Minute are the local wall-clock time the reminder fires,
	// every day.
	Hour   int
	Minute int
}

// ReminderScheduler registers or clears the daily reminder.
type ReminderScheduler interface {
	// ScheduleDaily arranges a recurring reminder at the given time,
	// replacing any previous schedule.
	ScheduleDaily(ctx context.Context, s Schedule) error

	// Cancel removes the reminder, if any.
	Cancel(ctx context.Context) error
}

// LogScheduler is the default scheduler on platforms without a native
// notification service: it records the request and does nothing else.
type LogScheduler struct {
	logger *slog.Logger
}

// NewLogScheduler creates a scheduler that only logs.
func NewLogScheduler(logger *slog.Logger) *LogScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogScheduler{logger: logger.With(slog.String("component", "reminder"))}
}

var _ ReminderScheduler = (*LogScheduler)(nil)

// ScheduleDaily implements ReminderScheduler.ScheduleDaily.
func (s *LogScheduler) ScheduleDaily(_ context.Context, sched Schedule) error {
	s.logger.Info("daily reminder scheduled",
		slog.Int("hour", sched.Hour),
		slog.Int("minute", sched.Minute))
	return nil
}

// Cancel implements ReminderScheduler.Cancel. Cancelling is routine (it
// runs whenever reminders are configured off), so it logs at debug.
func (s *LogScheduler) Cancel(_ context.Context) error {
	s.logger.Debug("daily reminder cancelled")
	return nil
}
