// Package scheduler runs the per-user daily expiry alert loop.
//
// Every user with an email address gets one long-lived task that wakes at
// that user's configured wall-clock time, consults the notification gate and
// dispatches at most one alert email per day. Tasks are independent: one
// user's bad config or storage failure never touches the others.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/domain"
	"github.com/expiryguard/backend/internal/gate"
	"github.com/expiryguard/backend/internal/logger"
)

// AlertSource computes the items qualifying for an alert (the 3-day window).
type AlertSource interface {
	AlertItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)
}

// Config carries the dispatcher's own fallback alert time, applied when a
// stored per-user config is out of range. Historically 20:11 and distinct
// from the 06:00 signup default.
type Config struct {
	FallbackHour   int
	FallbackMinute int
}

type Scheduler struct {
	users  domain.UserRepository
	alerts AlertSource
	gate   gate.Store
	mailer domain.Mailer
	cfg    Config
	now    func() time.Time

	mu      sync.Mutex
	tasks   map[uuid.UUID]struct{}
	taskCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(users domain.UserRepository, alerts AlertSource, gateStore gate.Store, mailer domain.Mailer, cfg Config) *Scheduler {
	return &Scheduler{
		users:  users,
		alerts: alerts,
		gate:   gateStore,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
		tasks:  make(map[uuid.UUID]struct{}),
	}
}

// Start spawns one scheduling task per user with an email address. Calling
// it again is safe: users that already have a running task are skipped, so
// enabling notifications twice never doubles the task set.
func (s *Scheduler) Start(ctx context.Context) error {
	users, err := s.users.ListWithEmail(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		s.taskCtx, s.cancel = context.WithCancel(context.Background())
	}
	ctx = s.taskCtx

	started := 0
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		if _, running := s.tasks[user.ID]; running {
			continue
		}
		s.tasks[user.ID] = struct{}{}
		s.wg.Add(1)
		go s.runUser(ctx, user.ID, user.Email)
		started++
	}
	logger.Info("Alert scheduler started", "new_tasks", started, "total_tasks", len(s.tasks))
	return nil
}

// Stop unblocks every sleeping task and waits for them to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// TaskCount reports the number of live per-user tasks.
func (s *Scheduler) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// RunAllOnce performs a single dispatch pass over all users, the same
// qualification logic the daily tasks apply. Failures are per-user: they are
// logged and the pass continues.
func (s *Scheduler) RunAllOnce(ctx context.Context) error {
	users, err := s.users.ListWithEmail(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		if _, err := s.DispatchUser(ctx, user.ID, user.Email); err != nil {
			logger.Error("alert dispatch failed", "user_id", user.ID, "error", err)
		}
	}
	return nil
}

// DispatchUser sends one alert email to the user if any items qualify and
// returns how many did.
func (s *Scheduler) DispatchUser(ctx context.Context, userID uuid.UUID, email string) (int, error) {
	items, err := s.alerts.AlertItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	if err := s.mailer.SendExpiryAlert(ctx, email, items); err != nil {
		// delivery failure is logged and ignored, never retried
		logger.Error("alert email failed", "user_id", userID, "error", err)
	}
	return len(items), nil
}

func (s *Scheduler) runUser(ctx context.Context, userID uuid.UUID, email string) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scheduler task panicked", "user_id", userID, "panic", r)
		}
		s.mu.Lock()
		delete(s.tasks, userID)
		s.mu.Unlock()
	}()

	for {
		hour, minute := s.userAlertTime(ctx, userID)
		next := nextRun(s.now(), hour, minute)
		logger.Info("scheduler sleeping", "user_id", userID, "next_run", next)

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.tick(ctx, userID, email)
	}
}

// tick is one wake of a user's task: consult the gate, then dispatch.
func (s *Scheduler) tick(ctx context.Context, userID uuid.UUID, email string) {
	enabled, err := s.gate.Enabled(ctx)
	if err != nil {
		logger.Error("failed to read notification gate, skipping cycle", "user_id", userID, "error", err)
		return
	}
	if !enabled {
		logger.Info("notifications are off, skipping alert cycle", "user_id", userID)
		return
	}

	count, err := s.DispatchUser(ctx, userID, email)
	if err != nil {
		logger.Error("failed to compute alerts", "user_id", userID, "error", err)
		return
	}
	if count > 0 {
		logger.Info("sent daily expiry alerts", "user_id", userID, "items", count)
	}
}

// userAlertTime reads the user's stored config for this cycle, falling back
// to the dispatcher constant when the record is unreadable or out of range.
func (s *Scheduler) userAlertTime(ctx context.Context, userID uuid.UUID) (int, int) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Error("failed to read schedule config, using fallback time", "user_id", userID, "error", err)
		return s.cfg.FallbackHour, s.cfg.FallbackMinute
	}
	if user.NotificationHour < 0 || user.NotificationHour > 23 ||
		user.NotificationMinute < 0 || user.NotificationMinute > 59 {
		return s.cfg.FallbackHour, s.cfg.FallbackMinute
	}
	return user.NotificationHour, user.NotificationMinute
}

// nextRun computes the next occurrence of hh:mm strictly after now, rolling
// to the next calendar day when today's slot has already passed or is now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
