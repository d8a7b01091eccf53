package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry lists the component types a Storage may hold. Each
// Storage owns its registry so independent worlds never share pools.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentPool
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentPool),
	}
}

// RegisterComponent registers T with r. Components must be registered
// before the first Spawn that uses them.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentPool {
		return &pool[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentPool {
	return r.factories[t]
}

// componentPool is the type-erased view of a pool used by Storage.
type componentPool interface {
	insert(owner EntityId, item any) int
	remove(slot int)
	get(slot int) any
	live() int
	capacity() int
}

const poolBlockSize = 64

// pool keeps components of one type in fixed blocks so pointers handed out
// stay valid while the pool grows.
type pool[T any] struct {
	blocks [][poolBlockSize]T
	owners [][poolBlockSize]EntityId
	filled [][poolBlockSize]bool
	free   []int
	next   int
	count  int
}

func (p *pool[T]) insert(owner EntityId, item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var slot int
	if n := len(p.free); n > 0 {
		slot = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		slot = p.next
		p.next++
		if slot/poolBlockSize >= len(p.blocks) {
			p.blocks = append(p.blocks, [poolBlockSize]T{})
			p.owners = append(p.owners, [poolBlockSize]EntityId{})
			p.filled = append(p.filled, [poolBlockSize]bool{})
		}
	}

	b, i := slot/poolBlockSize, slot%poolBlockSize
	p.blocks[b][i] = value
	p.owners[b][i] = owner
	p.filled[b][i] = true
	p.count++
	return slot
}

func (p *pool[T]) has(slot int) bool {
	if slot < 0 || slot >= p.next {
		return false
	}
	return p.filled[slot/poolBlockSize][slot%poolBlockSize]
}

func (p *pool[T]) remove(slot int) {
	if !p.has(slot) {
		return
	}
	b, i := slot/poolBlockSize, slot%poolBlockSize
	var zero T
	p.blocks[b][i] = zero
	p.owners[b][i] = NoEntity
	p.filled[b][i] = false
	p.free = append(p.free, slot)
	p.count--
}

func (p *pool[T]) get(slot int) any {
	return p.at(slot)
}

func (p *pool[T]) at(slot int) *T {
	if !p.has(slot) {
		return nil
	}
	return &p.blocks[slot/poolBlockSize][slot%poolBlockSize]
}

func (p *pool[T]) live() int     { return p.count }
func (p *pool[T]) capacity() int { return len(p.blocks) * poolBlockSize }

// all yields every live component with its owner in slot order.
func (p *pool[T]) all() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for slot := 0; slot < p.next; slot++ {
			b, i := slot/poolBlockSize, slot%poolBlockSize
			if !p.filled[b][i] {
				continue
			}
			if !yield(p.owners[b][i], &p.blocks[b][i]) {
				return
			}
		}
	}
}
