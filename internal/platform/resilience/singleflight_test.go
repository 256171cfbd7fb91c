package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	shared := make([]bool, callers)
	values := make([]any, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err, wasShared := g.Do("slate:2024-03-10", func() (any, error) {
				executions.Add(1)
				<-release
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			values[idx] = val
			shared[idx] = wasShared
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("unexpected executions: got=%d want=1", got)
	}
	leaderCount := 0
	for i := 0; i < callers; i++ {
		if values[i] != 42 {
			t.Fatalf("caller %d value: got=%v want=42", i, values[i])
		}
		if !shared[i] {
			leaderCount++
		}
	}
	if leaderCount != 1 {
		t.Fatalf("unexpected leader count: got=%d want=1", leaderCount)
	}
}

func TestSingleFlight_ErrorSharedAndKeyReleased(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	wantErr := errors.New("load failed")

	_, err, _ := g.Do("k", func() (any, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("unexpected error: got=%v want=%v", err, wantErr)
	}

	// A later call with the same key runs fresh.
	val, err, shared := g.Do("k", func() (any, error) { return "ok", nil })
	if err != nil || val != "ok" || shared {
		t.Fatalf("retry after error: val=%v err=%v shared=%t", val, err, shared)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	a, _, _ := g.Do("a", func() (any, error) { return "a", nil })
	b, _, _ := g.Do("b", func() (any, error) { return "b", nil })
	if a != "a" || b != "b" {
		t.Fatalf("unexpected values: a=%v b=%v", a, b)
	}
}
