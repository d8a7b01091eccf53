package ecs

import "reflect"

// Singleton gives systems direct access to a component that belongs to no
// entity, such as session state or configuration.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(storage)
	if s.ptr == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		s.ptr = AddSingleton(storage, value)
	}
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.ptr, _ = s.storage.singleton(reflect.TypeFor[T]()).(*T)
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
