package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

type slotRef struct {
	typ  reflect.Type
	slot int
}

// Storage holds entities, their components and the singleton components.
type Storage struct {
	registry   *ComponentRegistry
	pools      map[reflect.Type]componentPool
	entities   *intmap.Map[EntityId, []slotRef]
	singletons map[reflect.Type]any
	lastId     EntityId
}

// NewStorage creates an empty storage for the component types in registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		pools:      make(map[reflect.Type]componentPool),
		entities:   intmap.New[EntityId, []slotRef](256),
		singletons: make(map[reflect.Type]any),
	}
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func (s *Storage) poolFor(t reflect.Type) componentPool {
	if p, ok := s.pools[t]; ok {
		return p
	}
	factory := s.registry.factory(t)
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	p := factory()
	s.pools[t] = p
	return p
}

// Spawn creates an entity carrying the given components, at most one per type.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	s.lastId++
	id := s.lastId
	refs := make([]slotRef, 0, len(components))
	for _, c := range components {
		t := componentType(c)
		if slices.ContainsFunc(refs, func(r slotRef) bool { return r.typ == t }) {
			panic("duplicate component type " + t.String())
		}
		refs = append(refs, slotRef{typ: t, slot: s.poolFor(t).insert(id, c)})
	}
	s.entities.Put(id, refs)
	return id
}

// Delete removes the entity and all of its components. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	refs, ok := s.entities.Get(id)
	if !ok {
		return
	}
	for _, r := range refs {
		s.pools[r.typ].remove(r.slot)
	}
	s.entities.Del(id)
}

func (s *Storage) Alive(id EntityId) bool {
	return s.entities.Has(id)
}

// Len is the number of live entities.
func (s *Storage) Len() int {
	return s.entities.Len()
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	refs, ok := s.entities.Get(id)
	if !ok {
		return nil
	}
	for _, r := range refs {
		if r.typ == t {
			return s.pools[t].get(r.slot)
		}
	}
	return nil
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// ComponentReader is anything that can look up components by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}

// AddSingleton stores value as the singleton of type T, replacing any
// previous one, and returns a pointer to the stored copy.
func AddSingleton[T any](s *Storage, value T) *T {
	ptr := new(T)
	*ptr = value
	s.singletons[reflect.TypeFor[T]()] = ptr
	return ptr
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// StorageStats summarises a Storage for diagnostics.
type StorageStats struct {
	EntityCount    int
	ComponentCount int
	SingletonCount int
	Pools          []PoolStats
	SingletonTypes []string
}

type PoolStats struct {
	Type     string
	Live     int
	Capacity int
}

// CollectStats walks the pools and singletons. Pools are sorted by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:    s.entities.Len(),
		SingletonCount: len(s.singletons),
	}
	for t, p := range s.pools {
		stats.Pools = append(stats.Pools, PoolStats{
			Type:     t.String(),
			Live:     p.live(),
			Capacity: p.capacity(),
		})
		stats.ComponentCount += p.live()
	}
	slices.SortFunc(stats.Pools, func(a, b PoolStats) int {
		if a.Type < b.Type {
			return -1
		}
		if a.Type > b.Type {
			return 1
		}
		return 0
	})
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
