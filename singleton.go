package preferenceroom

import (
	"sync"
	"sync/atomic"
)

// Singleton is a one-time initialization slot for a generated component.
// The first call to Init constructs and stores the value; every later call
// returns the stored value without invoking its constructor. Accessing the
// value before Init fails with a NotInitializedError.
//
// A Singleton is safe for concurrent use. Concurrent first calls to Init
// construct the value exactly once. Get and MustGet never block: while the
// constructor runs the slot reports NotInitializedError. The constructor
// must not call Init on its own slot, which blocks forever like a recursive
// sync.Once.
type Singleton[T any] struct {
	name string

	mu    sync.Mutex
	value atomic.Pointer[T]
}

// NewSingleton returns an empty slot for the named component.
func NewSingleton[T any](name string) *Singleton[T] {
	return &Singleton[T]{name: name}
}

// Name returns the component name the slot was created for.
func (s *Singleton[T]) Name() string {
	return s.name
}

// Init stores the value returned by newFn unless the slot is already set,
// and returns the stored value.
func (s *Singleton[T]) Init(newFn func() T) T {
	if v := s.value.Load(); v != nil {
		return *v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.value.Load(); v != nil {
		return *v
	}
	v := newFn()
	s.value.Store(&v)
	return v
}

// Get returns the stored value, or a NotInitializedError if Init was
// never called or has not returned yet.
func (s *Singleton[T]) Get() (T, error) {
	v := s.value.Load()
	if v == nil {
		var zero T
		return zero, NewNotInitializedError(s.name)
	}
	return *v, nil
}

// MustGet is like Get but panics if the slot is not initialized.
func (s *Singleton[T]) MustGet() T {
	v, err := s.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Initialized reports whether Init has stored a value.
func (s *Singleton[T]) Initialized() bool {
	return s.value.Load() != nil
}
