package dag

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"sync"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/errors"
)

// State carries values between pipeline nodes.
type State struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewState returns an empty State.
func NewState() *State {
	return &State{data: make(map[string]any)}
}

// NewModelState returns a State holding m under ModelPort.
func NewModelState(m *conversation.Model) *State {
	s := NewState()
	Write(s, ModelPort, m)
	return s
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Keys returns the stored keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data))
}

// Port names a State key together with the type stored under it.
type Port[T any] struct {
	Key string
}

// ModelPort holds the conversation model the detector nodes annotate.
var ModelPort = Port[*conversation.Model]{Key: "model"}

// Read returns the value under port. A missing key or a value of another
// type is an internal error: nodes only read what the caller seeded.
func Read[T any](state *State, port Port[T]) (T, error) {
	var zero T
	raw, ok := state.Get(port.Key)
	if !ok {
		return zero, stateError(fmt.Sprintf("pipeline state has no %q", port.Key), port.Key)
	}
	val, ok := raw.(T)
	if !ok {
		return zero, stateError(fmt.Sprintf("pipeline state %q holds %T, want %T", port.Key, raw, zero), port.Key)
	}
	return val, nil
}

// Write stores value under port.
func Write[T any](state *State, port Port[T], value T) {
	state.Set(port.Key, value)
}

func stateError(msg, key string) *errors.AppError {
	return errors.New(errors.ErrCodeInternal, msg, http.StatusInternalServerError).WithDetail("key", key)
}
