package feature

import "sync"

// Store holds the current state of one feature module and applies dispatched
// actions through Reduce. It plays the role a state provider plays in a UI
// tree: created empty on mount, discarded on unmount, no persistence.
type Store[T any] struct {
	mu      sync.Mutex
	state   State[T]
	subs    map[int]func(State[T])
	nextSub int
	closed  bool
}

// NewStore creates a store in the initial (idle) state.
func NewStore[T any]() *Store[T] {
	return &Store[T]{subs: make(map[int]func(State[T]))}
}

// State returns the current state.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and notifies subscribers with the new state.
// Dispatching after Close still mutates the state; mirroring the hosting
// framework, an unmounted provider does not cancel in-flight work.
func (s *Store[T]) Dispatch(a Action[T]) State[T] {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Subscribe registers fn to be called on every state change. The returned
// function cancels the subscription.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close drops all subscribers. It corresponds to provider unmount.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[int]func(State[T]))
}
