package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"isms-assistant/internal/model"
	"isms-assistant/internal/session"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func TestAcquireCreatesAndPersists(t *testing.T) {
	m := session.NewManager(&mockLogger{}, session.Config{})

	id := m.NewSessionID()
	s, release := m.Acquire(id)
	if s.ID != id {
		t.Fatalf("session ID = %q, want %q", s.ID, id)
	}
	s.AppendHistory(model.RoleUser, "hello", m.HistoryLimit())
	release()

	s2, release2 := m.Acquire(id)
	defer release2()
	if len(s2.History) != 1 || s2.History[0].Text != "hello" {
		t.Errorf("session state not persisted across acquires: %+v", s2.History)
	}
}

func TestAcquireSerializesSameSession(t *testing.T) {
	m := session.NewManager(&mockLogger{}, session.Config{})
	id := m.NewSessionID()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s, release := m.Acquire(id)
				s.AppendHistory(model.RoleUser, "turn", 0)
				release()
			}
		}()
	}
	wg.Wait()

	s, release := m.Acquire(id)
	defer release()
	if len(s.History) != workers*perWorker {
		t.Errorf("history length = %d, want %d", len(s.History), workers*perWorker)
	}
}

func TestSessionExpiry(t *testing.T) {
	m := session.NewManager(&mockLogger{}, session.Config{TTL: 20 * time.Millisecond})
	id := m.NewSessionID()

	s, release := m.Acquire(id)
	s.AppendHistory(model.RoleUser, "hello", 0)
	release()

	time.Sleep(60 * time.Millisecond)

	s2, release2 := m.Acquire(id)
	defer release2()
	if len(s2.History) != 0 {
		t.Errorf("expired session kept history: %+v", s2.History)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	m := session.NewManager(&mockLogger{}, session.Config{})
	a, b := m.NewSessionID(), m.NewSessionID()
	if a == b || a == "" {
		t.Errorf("IDs not unique: %q, %q", a, b)
	}
}
