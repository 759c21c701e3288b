// Package review drives a review session: a fixed queue of due items
// walked front to back, one reveal-then-rate cycle per item. Ratings feed
// the scheduler and are persisted atomically with their log entry.
package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/domain/srs"
	"github.com/phrazzld/algodeck/internal/platform/logger"
	"github.com/phrazzld/algodeck/internal/store"
)

// State identifies where the session is in its lifecycle.
type State int

// Session states.
const (
	// StateIdle means no session has been started.
	StateIdle State = iota
	// StateReviewing means a queue is loaded and a current item exists.
	StateReviewing
	// StateComplete means the queue has been exhausted.
	StateComplete
)

// String returns the state's display name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReviewing:
		return "reviewing"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Summary reports what a finished session accomplished.
type Summary struct {
	Reviewed int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOnComplete registers a callback fired once when the session
// transitions to complete with at least the empty summary.
func WithOnComplete(fn func(Summary)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// Session is the review state machine. It is not safe for concurrent use;
// a session belongs to one caller at a time.
type Session struct {
	db       *sql.DB
	items    store.ItemStore
	logs     store.RevisionLogStore
	settings store.SettingsStore
	logger   *slog.Logger

	now        func() time.Time
	onComplete func(Summary)

	state    State
	queue    []domain.Item
	position int
	revealed bool
	reviewed int
}

// NewSession creates a review session over the given stores. The db handle
// is used to bind the state update and the log append into one
// transaction.
func NewSession(
	db *sql.DB,
	items store.ItemStore,
	logs store.RevisionLogStore,
	settings store.SettingsStore,
	log *slog.Logger,
	opts ...Option,
) *Session {
	if db == nil {
		panic("db cannot be nil")
	}
	if items == nil {
		panic("items cannot be nil")
	}
	if logs == nil {
		panic("logs cannot be nil")
	}
	if settings == nil {
		panic("settings cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Session{
		db:       db,
		items:    items,
		logs:     logs,
		settings: settings,
		logger:   log.With(slog.String("component", "review_session")),
		now:      time.Now,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Start loads the due set and begins reviewing, optionally scoped to one
// notebook. Allowed from idle or complete; a running session must finish
// first. An empty due set completes immediately.
func (s *Session) Start(ctx context.Context, notebookID *int64) error {
	if s.state == StateReviewing {
		return ErrSessionActive
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	today := s.now().Format(domain.DateFormat)
	queue, err := s.items.DueToday(ctx, today, notebookID)
	if err != nil {
		return &ServiceError{Operation: "start", Message: "load due items", Err: err}
	}

	s.queue = queue
	s.position = 0
	s.revealed = false
	s.reviewed = 0

	if len(queue) == 0 {
		log.Debug("no items due, session complete immediately")
		s.complete()
		return nil
	}

	s.state = StateReviewing
	log.Debug("review session started",
		slog.Int("queue_size", len(queue)),
		slog.String("today", today))
	return nil
}

// Current returns the item under review.
func (s *Session) Current() (*domain.Item, error) {
	if s.state != StateReviewing {
		return nil, ErrNotInSession
	}
	return &s.queue[s.position], nil
}

// Remaining returns the number of items left in the queue, the current
// one included.
func (s *Session) Remaining() int {
	if s.state != StateReviewing {
		return 0
	}
	return len(s.queue) - s.position
}

// AnswerRevealed reports whether the current item's answer side is
// showing.
func (s *Session) AnswerRevealed() bool {
	return s.revealed
}

// Reveal flips the current item to its answer side. Revealing is a
// one-way transition; use FlipBack to return to the question side.
func (s *Session) Reveal() error {
	if s.state != StateReviewing {
		return ErrNotInSession
	}
	if s.revealed {
		return ErrAnswerRevealed
	}
	s.revealed = true
	return nil
}

// FlipBack returns the current item to its question side without
// affecting the queue.
func (s *Session) FlipBack() error {
	if s.state != StateReviewing {
		return ErrNotInSession
	}
	if !s.revealed {
		return ErrAnswerHidden
	}
	s.revealed = false
	return nil
}

// SubmitRating scores the current item, persists the new scheduling state
// together with its log entry, and advances the queue. The answer must be
// revealed first. A failing rating schedules a future session; it never
// requeues the item within this one.
func (s *Session) SubmitRating(ctx context.Context, rating domain.Rating) error {
	if s.state != StateReviewing {
		return ErrNotInSession
	}
	if !s.revealed {
		return ErrAnswerHidden
	}
	if !rating.IsValid() {
		return domain.ErrInvalidRating
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	item := &s.queue[s.position]

	cfg, err := s.settings.IntervalConfig(ctx)
	if err != nil {
		return &ServiceError{Operation: "submit_rating", Message: "load interval config", Err: err}
	}

	now := s.now()
	next, err := srs.ComputeNext(rating, item.ReviewState, cfg, now)
	if err != nil {
		return &ServiceError{Operation: "submit_rating", Message: "compute schedule", Err: err}
	}

	// State first, log second: a crash in between loses only the log
	// entry, never records a rating whose state write failed.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.items.WithTx(tx).Update(ctx, item.ID, store.ReviewStateUpdate(next)); err != nil {
			return fmt.Errorf("persist review state: %w", err)
		}
		if _, err := s.logs.WithTx(tx).Log(ctx, item.ID, rating, now); err != nil {
			return fmt.Errorf("append revision log: %w", err)
		}
		return nil
	})
	if err != nil {
		return &ServiceError{Operation: "submit_rating", Message: "persist rating", Err: err}
	}

	item.ReviewState = next
	s.reviewed++
	s.revealed = false

	log.Debug("rating submitted",
		slog.Int64("item_id", item.ID),
		slog.String("rating", string(rating)),
		slog.Int("repetition", next.Repetition))

	if s.position == len(s.queue)-1 {
		s.complete()
		return nil
	}
	s.position++
	return nil
}

// Summary returns the session's running totals. Meaningful once the
// session is complete but safe to call at any point.
func (s *Session) Summary() Summary {
	return Summary{Reviewed: s.reviewed}
}

func (s *Session) complete() {
	s.state = StateComplete
	s.logger.Info("review session complete", slog.Int("reviewed", s.reviewed))
	if s.onComplete != nil {
		s.onComplete(Summary{Reviewed: s.reviewed})
	}
}
