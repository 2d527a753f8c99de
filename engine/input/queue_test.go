package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/google/go-cmp/cmp"
)

func TestQueue_DrainPreservesOrder(t *testing.T) {
	q := NewQueue()
	want := []Event{
		PointerDown{Button: common.ButtonPrimary, X: 1, Y: 2},
		PointerMove{X: 3, Y: 4},
		PointerUp{Button: common.ButtonPrimary, X: 3, Y: 4},
		Wheel{Delta: -1},
	}
	for _, e := range want {
		q.Push(e)
	}
	q.Push(nil)

	if diff := cmp.Diff(want, q.Drain()); diff != "" {
		t.Errorf("Drain() mismatch (-want +got):\n%s", diff)
	}
	if got := q.Drain(); got != nil {
		t.Errorf("second Drain() = %v, want nil", got)
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(KeyDown{Key: g*1000 + i})
			}
		}(g)
	}
	wg.Wait()

	events := q.Drain()
	if len(events) != 800 {
		t.Fatalf("Drain() returned %d events, want 800", len(events))
	}

	// Each producer's events keep their relative order.
	last := map[int]int{}
	for _, e := range events {
		k := e.(KeyDown).Key
		g, i := k/1000, k%1000
		if prev, ok := last[g]; ok && i <= prev {
			t.Fatalf("producer %d out of order: %d after %d", g, i, prev)
		}
		last[g] = i
	}
	if len(last) != 8 {
		t.Errorf("saw %d producers, want 8", len(last))
	}
}
