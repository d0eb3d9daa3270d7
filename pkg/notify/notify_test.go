package notify

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()
	s, err := storage.New("sqlite", filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

type fakeSender struct {
	sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, n *storage.Notification) error {
	f.Lock()
	defer f.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n.ID)
	return nil
}

func (f *fakeSender) count() int {
	f.Lock()
	defer f.Unlock()
	return len(f.sent)
}

var start = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func TestSchedule(t *testing.T) {
	ctx := context.Background()
	sch := NewScheduler(newStore(t))
	sch.now = func() time.Time { return start }

	n, err := sch.Schedule(ctx, "u1", Message{Title: "Daily idea", Body: "Open the app", Trigger: Trigger{After: time.Hour}})
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), n.SendAt)
	assert.Equal(t, storage.NotificationPending, n.State)

	at := start.Add(30 * time.Minute)
	_, err = sch.Schedule(ctx, "u1", Message{Title: "At", Trigger: Trigger{At: at, After: 5 * time.Hour}})
	require.NoError(t, err)
	_, err = sch.Schedule(ctx, "u2", Message{Body: "other user"})
	require.NoError(t, err)

	pending, err := sch.Pending(ctx, "u1", 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "At", pending[0].Title)

	tests := []Message{
		{},
		{Title: "x", Trigger: Trigger{After: -time.Second}},
		{Title: "x", Trigger: Trigger{Every: time.Second}},
	}
	for _, m := range tests {
		_, err := sch.Schedule(ctx, "u1", m)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	sch := NewScheduler(newStore(t))

	n, err := sch.Send(ctx, "u1", "Hi", "there")
	require.NoError(t, err)

	assert.ErrorIs(t, sch.Cancel(ctx, "u2", n.ID), storage.ErrNotFound)
	require.NoError(t, sch.Cancel(ctx, "u1", n.ID))
	assert.ErrorIs(t, sch.Cancel(ctx, "u1", n.ID), ErrInvalid)

	pending, err := sch.Pending(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	sch := NewScheduler(store)
	sch.now = func() time.Time { return start }
	sender := &fakeSender{}
	d := NewDispatcher(store, sender, &Config{})
	now := start
	d.now = func() time.Time { return now }

	once, err := sch.Send(ctx, "u1", "Now", "")
	require.NoError(t, err)
	later, err := sch.Schedule(ctx, "u1", Message{Title: "Later", Trigger: Trigger{After: time.Hour}})
	require.NoError(t, err)
	daily, err := sch.Schedule(ctx, "u1", Message{Title: "Daily", Trigger: Trigger{Every: 24 * time.Hour}})
	require.NoError(t, err)

	sent, err := d.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	got, err := store.GetNotification(ctx, once.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.NotificationSent, got.State)
	require.NotNil(t, got.SentAt)

	got, err = store.GetNotification(ctx, daily.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.NotificationPending, got.State)
	assert.True(t, got.SendAt.Equal(start.Add(24*time.Hour)), "send at %s", got.SendAt)

	got, err = store.GetNotification(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.NotificationPending, got.State)

	// Nothing else is due yet.
	sent, err = d.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	now = start.Add(2 * time.Hour)
	sent, err = d.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 3, sender.count())
}

func TestDispatchFailures(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	sch := NewScheduler(store)
	sch.now = func() time.Time { return start }
	sender := &fakeSender{err: errors.New("boom")}
	d := NewDispatcher(store, sender, &Config{MaxAttempts: 2})
	now := start
	d.now = func() time.Time { return now }

	n, err := sch.Send(ctx, "u1", "Retry", "")
	require.NoError(t, err)

	_, err = d.Dispatch(ctx)
	require.NoError(t, err)
	got, err := store.GetNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.NotificationPending, got.State)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "boom", got.Error)
	assert.True(t, got.SendAt.After(now))

	now = got.SendAt
	_, err = d.Dispatch(ctx)
	require.NoError(t, err)
	got, err = store.GetNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.NotificationFailed, got.State)
	assert.Equal(t, 2, got.Attempts)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name  string
		at    time.Time
		every time.Duration
		want  time.Time
	}{
		{"next in future", start.Add(-time.Minute), time.Hour, start.Add(59 * time.Minute)},
		{"missed some", start.Add(-150 * time.Minute), time.Hour, start.Add(30 * time.Minute)},
		{"on the boundary", start.Add(-2 * time.Hour), time.Hour, start.Add(time.Hour)},
		{"years behind", start.AddDate(-30, 0, 0), time.Minute, start.Add(time.Minute)},
		{"too old to measure", time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute, start.Add(time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextOccurrence(tt.at, tt.every, start)
			if !got.Equal(tt.want) {
				t.Fatalf("nextOccurrence() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestDispatchAncientRepeat(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	n := &storage.Notification{
		UserID: "u1",
		Title:  "Practice",
		SendAt: time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC),
		Every:  time.Minute,
		State:  storage.NotificationPending,
	}
	require.NoError(t, store.SetNotification(ctx, n))

	sender := &fakeSender{}
	d := NewDispatcher(store, sender, &Config{})
	d.now = func() time.Time { return start }
	sent, err := d.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	got, err := store.GetNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.SendAt.Equal(start.Add(time.Minute)), got.SendAt)
	assert.Equal(t, storage.NotificationPending, got.State)
}

func TestRunStops(t *testing.T) {
	store := newStore(t)
	sender := &fakeSender{}
	d := NewDispatcher(store, sender, &Config{Interval: 10 * time.Millisecond})
	_, err := NewScheduler(store).Send(context.Background(), "u1", "Hi", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	require.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run didn't stop")
	}
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("log", "", "", false)
	require.NoError(t, err)
	require.NoError(t, s.Send(context.Background(), &storage.Notification{UserID: "u1", Title: "t"}))

	_, err = NewSender("telegram", "missing-chat", "", false)
	assert.Error(t, err)
	_, err = NewSender("pigeon", "", "", false)
	assert.Error(t, err)
}
