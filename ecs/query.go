package ecs

import (
	"iter"
	"reflect"
)

// Query iterates every entity carrying a T. Queries hold no cache; the pool
// is resolved lazily so a query may be created before the first spawn.
type Query[T any] struct {
	storage *Storage
	pool    *pool[T]
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it for Query fields
// of registered systems.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.pool = nil
}

func (q *Query[T]) resolve() *pool[T] {
	if q.pool == nil && q.storage != nil {
		if p, ok := q.storage.pools[reflect.TypeFor[T]()]; ok {
			q.pool = p.(*pool[T])
		}
	}
	return q.pool
}

// Iter yields each entity and a pointer to its T in slot order.
func (q *Query[T]) Iter() iter.Seq2[EntityId, *T] {
	if q.storage == nil {
		panic("Query.Iter() called before Query.Init()")
	}
	return func(yield func(EntityId, *T) bool) {
		p := q.resolve()
		if p == nil {
			return
		}
		for id, c := range p.all() {
			if !yield(id, c) {
				return
			}
		}
	}
}

// Values yields only the components.
func (q *Query[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, c := range q.Iter() {
			if !yield(c) {
				return
			}
		}
	}
}

// Len is the number of entities with a T.
func (q *Query[T]) Len() int {
	if p := q.resolve(); p != nil {
		return p.live()
	}
	return 0
}
