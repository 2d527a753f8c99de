package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestSignal_FiresInSubscriptionOrder(t *testing.T) {
	s := NewSignal[int]("test")
	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })

	s.Fire(1)

	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSignal_PanicIsolation(t *testing.T) {
	s := NewSignal[string]("test")
	var got []string
	s.Subscribe(func(v string) { got = append(got, "before:"+v) })
	s.Subscribe(func(string) { panic("boom") })
	s.Subscribe(func(v string) { got = append(got, "after:"+v) })

	s.Fire("x")

	if diff := cmp.Diff([]string{"before:x", "after:x"}, got); diff != "" {
		t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestSignal_UnsubscribeDuringFire(t *testing.T) {
	s := NewSignal[Empty]("test")
	calls := 0
	var second uuid.UUID
	s.Subscribe(func(Empty) {
		calls++
		s.Unsubscribe(second)
	})
	second = s.Subscribe(func(Empty) { calls++ })

	s.Fire(Empty{})
	if calls != 2 {
		t.Errorf("first fire calls = %d, want 2 (snapshot semantics)", calls)
	}

	calls = 0
	s.Fire(Empty{})
	if calls != 1 {
		t.Errorf("second fire calls = %d, want 1", calls)
	}
}

func TestSignal_Registry(t *testing.T) {
	s := NewSignal[int]("test")
	if id := s.Subscribe(nil); id != uuid.Nil {
		t.Errorf("Subscribe(nil) = %v, want uuid.Nil", id)
	}

	a := s.Subscribe(func(int) {})
	b := s.Subscribe(func(int) {})
	if a == b {
		t.Fatal("two subscriptions share a handle")
	}
	if got := s.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if !s.Has(a) {
		t.Error("Has(a) = false, want true")
	}
	if !s.Unsubscribe(a) {
		t.Error("Unsubscribe(a) = false, want true")
	}
	if s.Unsubscribe(a) {
		t.Error("second Unsubscribe(a) = true, want false")
	}
	if s.Has(a) {
		t.Error("Has(a) after unsubscribe = true, want false")
	}

	s.Clear()
	if got := s.Count(); got != 0 {
		t.Errorf("Count() after Clear = %d, want 0", got)
	}
}
