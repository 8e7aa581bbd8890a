// Package feature provides the client-side building blocks of a feature
// module: a reducer-driven state container, a REST resource client, and a
// controller that brackets client calls with state transitions.
package feature

import "encoding/json"

// State is the loading/error/data triple every feature module tracks. The
// lifecycle phase is encoded implicitly: idle (nothing set), loading,
// success (Data set) and error (Err set).
type State[T any] struct {
	Loading bool
	Err     error
	Data    *T
}

// ActionType identifies a state transition.
type ActionType string

const (
	FetchStart   ActionType = "FETCH_START"
	FetchSuccess ActionType = "FETCH_SUCCESS"
	FetchError   ActionType = "FETCH_ERROR"
	Update       ActionType = "UPDATE"
	Reset        ActionType = "RESET"
)

// Action is a dispatched state transition. Payload accompanies FetchSuccess,
// Err accompanies FetchError, and Partial accompanies Update.
type Action[T any] struct {
	Type    ActionType
	Payload *T
	Err     error
	Partial map[string]any
}

// StartAction begins a fetch.
func StartAction[T any]() Action[T] {
	return Action[T]{Type: FetchStart}
}

// SuccessAction completes a fetch with the given payload.
func SuccessAction[T any](payload *T) Action[T] {
	return Action[T]{Type: FetchSuccess, Payload: payload}
}

// ErrorAction completes a fetch with an error.
func ErrorAction[T any](err error) Action[T] {
	return Action[T]{Type: FetchError, Err: err}
}

// UpdateAction shallow-merges the partial payload into the current data.
func UpdateAction[T any](partial map[string]any) Action[T] {
	return Action[T]{Type: Update, Partial: partial}
}

// ResetAction returns the module to its initial state.
func ResetAction[T any]() Action[T] {
	return Action[T]{Type: Reset}
}

// Reduce maps (state, action) to the next state. It is pure: inputs are
// never mutated.
//
// Transitions: FetchStart sets Loading and clears Err; FetchSuccess and
// FetchError clear Loading and record payload or error; Update shallow-merges
// into existing data and is a no-op while Data is nil; Reset returns the
// initial state from anywhere.
func Reduce[T any](s State[T], a Action[T]) State[T] {
	switch a.Type {
	case FetchStart:
		return State[T]{Loading: true, Err: nil, Data: s.Data}
	case FetchSuccess:
		return State[T]{Loading: false, Err: nil, Data: a.Payload}
	case FetchError:
		return State[T]{Loading: false, Err: a.Err, Data: s.Data}
	case Update:
		if s.Data == nil {
			return s
		}
		merged, err := shallowMerge(s.Data, a.Partial)
		if err != nil {
			return s
		}
		return State[T]{Loading: s.Loading, Err: s.Err, Data: merged}
	case Reset:
		return State[T]{}
	}
	return s
}

// shallowMerge overlays the partial map onto data field by field, one level
// deep. The merge goes through JSON so partial keys follow the same names the
// wire format uses.
func shallowMerge[T any](data *T, partial map[string]any) (*T, error) {
	base, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range partial {
		fields[k] = v
	}

	combined, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(combined, out); err != nil {
		return nil, err
	}
	return out, nil
}
