package jobs

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingSweeper struct {
	mu      sync.Mutex
	calls   int
	deleted int64
}

func (s *countingSweeper) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	deleted := s.deleted
	s.deleted = 0 // nothing left to delete on subsequent runs
	return deleted, nil
}

func (s *countingSweeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSweepRunsAndStopsOnCancel(t *testing.T) {
	sweeper := &countingSweeper{deleted: 3}
	ctx, cancel := context.WithCancel(context.Background())

	StartNotificationSweep(ctx, sweeper, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := sweeper.count()
	time.Sleep(50 * time.Millisecond)

	if sweeper.count() != after {
		t.Errorf("sweep kept running after cancel: %d -> %d", after, sweeper.count())
	}
}
