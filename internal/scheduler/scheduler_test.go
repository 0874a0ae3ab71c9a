package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/domain"
)

type fakeUsers struct {
	users []domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, errors.New("not found")
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, errors.New("not found")
}

func (f *fakeUsers) ListWithEmail(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Email != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateNotificationTime(ctx context.Context, id uuid.UUID, hour, minute int) error {
	return nil
}

type fakeAlerts struct {
	items map[uuid.UUID][]domain.InventoryItem
	err   error
}

func (f *fakeAlerts) AlertItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[userID], nil
}

type fakeGate struct {
	on  bool
	err error
}

func (f *fakeGate) Enable(ctx context.Context) error  { f.on = true; return nil }
func (f *fakeGate) Disable(ctx context.Context) error { f.on = false; return nil }
func (f *fakeGate) Enabled(ctx context.Context) (bool, error) {
	return f.on, f.err
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []string
}

func (f *fakeMailer) SendExpiryAlert(ctx context.Context, to string, items []domain.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, to)
	return nil
}

func (f *fakeMailer) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func TestNextRun(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   time.Time
	}{
		{
			name: "later today",
			hour: 20, minute: 11,
			want: time.Date(2026, 3, 15, 20, 11, 0, 0, time.UTC),
		},
		{
			name: "already passed rolls to tomorrow",
			hour: 6, minute: 0,
			want: time.Date(2026, 3, 16, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly now rolls to tomorrow",
			hour: 10, minute: 30,
			want: time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRun(base, tt.hour, tt.minute)
			if !got.Equal(tt.want) {
				t.Errorf("nextRun(%d:%02d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestStartIsIdempotent(t *testing.T) {
	users := &fakeUsers{users: []domain.User{
		{ID: uuid.New(), Email: "a@example.com", NotificationHour: 6},
		{ID: uuid.New(), Email: "b@example.com", NotificationHour: 7},
		{ID: uuid.New(), Email: ""}, // no email, never scheduled
	}}
	s := New(users, &fakeAlerts{}, &fakeGate{}, &fakeMailer{}, Config{FallbackHour: 20, FallbackMinute: 11})
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if got := s.TaskCount(); got != 2 {
		t.Errorf("TaskCount = %d, want 2", got)
	}
}

func TestStopTerminatesTasks(t *testing.T) {
	users := &fakeUsers{users: []domain.User{
		{ID: uuid.New(), Email: "a@example.com", NotificationHour: 6},
	}}
	s := New(users, &fakeAlerts{}, &fakeGate{}, &fakeMailer{}, Config{FallbackHour: 20, FallbackMinute: 11})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()

	if got := s.TaskCount(); got != 0 {
		t.Errorf("TaskCount after Stop = %d, want 0", got)
	}
}

func TestTickSkipsWhenGateOff(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{users: []domain.User{{ID: id, Email: "a@example.com"}}}
	alerts := &fakeAlerts{items: map[uuid.UUID][]domain.InventoryItem{
		id: {{ID: uuid.New(), ProductName: "Milk", ExpiryDate: "01/01/2026"}},
	}}
	mailer := &fakeMailer{}
	s := New(users, alerts, &fakeGate{on: false}, mailer, Config{FallbackHour: 20, FallbackMinute: 11})

	s.tick(context.Background(), id, "a@example.com")

	if mailer.sendCount() != 0 {
		t.Errorf("mailer called %d times with gate off, want 0", mailer.sendCount())
	}
}

func TestTickDispatchesWhenGateOn(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{users: []domain.User{{ID: id, Email: "a@example.com"}}}
	alerts := &fakeAlerts{items: map[uuid.UUID][]domain.InventoryItem{
		id: {{ID: uuid.New(), ProductName: "Milk", ExpiryDate: "01/01/2026"}},
	}}
	mailer := &fakeMailer{}
	s := New(users, alerts, &fakeGate{on: true}, mailer, Config{FallbackHour: 20, FallbackMinute: 11})

	s.tick(context.Background(), id, "a@example.com")

	if mailer.sendCount() != 1 {
		t.Errorf("mailer called %d times with gate on, want 1", mailer.sendCount())
	}
}

func TestDispatchUserNoQualifyingItems(t *testing.T) {
	id := uuid.New()
	mailer := &fakeMailer{}
	s := New(&fakeUsers{}, &fakeAlerts{}, &fakeGate{on: true}, mailer, Config{})

	count, err := s.DispatchUser(context.Background(), id, "a@example.com")
	if err != nil {
		t.Fatalf("DispatchUser: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if mailer.sendCount() != 0 {
		t.Errorf("mailer called with nothing qualifying")
	}
}

func TestRunAllOnceIsolatesFailures(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	users := &fakeUsers{users: []domain.User{
		{ID: a, Email: "a@example.com"},
		{ID: b, Email: "b@example.com"},
	}}
	alerts := &fakeAlerts{items: map[uuid.UUID][]domain.InventoryItem{
		b: {{ID: uuid.New(), ProductName: "Yogurt", ExpiryDate: "01/01/2026"}},
	}}
	mailer := &fakeMailer{}
	s := New(users, alerts, &fakeGate{on: true}, mailer, Config{})

	if err := s.RunAllOnce(context.Background()); err != nil {
		t.Fatalf("RunAllOnce: %v", err)
	}
	if mailer.sendCount() != 1 {
		t.Errorf("mailer called %d times, want 1", mailer.sendCount())
	}
	if mailer.sends[0] != "b@example.com" {
		t.Errorf("alert sent to %q, want b@example.com", mailer.sends[0])
	}
}

func TestUserAlertTimeFallsBack(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{users: []domain.User{
		{ID: id, Email: "a@example.com", NotificationHour: 99, NotificationMinute: 0},
	}}
	s := New(users, &fakeAlerts{}, &fakeGate{}, &fakeMailer{}, Config{FallbackHour: 20, FallbackMinute: 11})

	hour, minute := s.userAlertTime(context.Background(), id)
	if hour != 20 || minute != 11 {
		t.Errorf("userAlertTime = %d:%02d, want 20:11", hour, minute)
	}

	hour, minute = s.userAlertTime(context.Background(), uuid.New())
	if hour != 20 || minute != 11 {
		t.Errorf("userAlertTime for unknown user = %d:%02d, want 20:11", hour, minute)
	}
}
