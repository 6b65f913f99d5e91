package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunsSequentiallyWithInterval(t *testing.T) {
	q := New(20*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	var mu sync.Mutex
	var order []int
	var timestamps []time.Time

	for i := 0; i < 3; i++ {
		i := i
		q.Enqueue(func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
			return nil
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := len(order) == 3
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 {
		t.Fatalf("expected 3 tasks run, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("expected sequential order, got %v", order)
		}
	}
	if timestamps[1].Sub(timestamps[0]) < 15*time.Millisecond {
		t.Fatalf("expected inter-task delay to be honored")
	}
}

func TestFailingTaskDoesNotHaltQueue(t *testing.T) {
	q := New(time.Millisecond, func(err error) {})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	var mu sync.Mutex
	ran := 0

	q.Enqueue(func(ctx context.Context) error { return errors.New("boom") })
	q.Enqueue(func(ctx context.Context) error {
		mu.Lock()
		ran++
		mu.Unlock()
		return nil
	})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := ran == 1
		mu.Unlock()
		if done {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected second task to run despite first task's error")
}

func TestPerTaskDelayOverride(t *testing.T) {
	q := New(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	done := make(chan struct{})
	q.EnqueueDelay(func(ctx context.Context) error { return nil }, time.Millisecond)
	q.EnqueueDelay(func(ctx context.Context) error { close(done); return nil }, time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected per-task delay override to be honored instead of the hour-long default")
	}
}
