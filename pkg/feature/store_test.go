package feature

import (
	"reflect"
	"testing"
)

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore[widget]()

	var seen []State[widget]
	cancel := store.Subscribe(func(s State[widget]) {
		seen = append(seen, s)
	})

	store.Dispatch(StartAction[widget]())
	store.Dispatch(SuccessAction(&widget{ID: "w1"}))

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].Loading {
		t.Fatalf("first notification should be loading")
	}
	if seen[1].Data == nil || seen[1].Data.ID != "w1" {
		t.Fatalf("second notification should carry data")
	}

	cancel()
	store.Dispatch(ResetAction[widget]())
	if len(seen) != 2 {
		t.Fatalf("cancelled subscriber must not be notified")
	}
}

func TestStoreStartsIdle(t *testing.T) {
	store := NewStore[widget]()
	if !reflect.DeepEqual(store.State(), State[widget]{}) {
		t.Fatalf("expected initial state, got %+v", store.State())
	}
}

func TestDispatchAfterCloseStillMutates(t *testing.T) {
	store := NewStore[widget]()

	notified := false
	store.Subscribe(func(State[widget]) { notified = true })

	store.Close()
	store.Dispatch(SuccessAction(&widget{ID: "late"}))

	if notified {
		t.Fatalf("closed store must not notify")
	}
	if store.State().Data == nil || store.State().Data.ID != "late" {
		t.Fatalf("dispatch after close should still apply, got %+v", store.State())
	}
}

func TestSubscribeAfterCloseIsInert(t *testing.T) {
	store := NewStore[widget]()
	store.Close()

	called := false
	cancel := store.Subscribe(func(State[widget]) { called = true })
	store.Dispatch(StartAction[widget]())
	cancel()

	if called {
		t.Fatalf("subscription on closed store must not fire")
	}
}
