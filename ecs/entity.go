package ecs

// EntityId identifies an entity for the lifetime of a Storage. Ids are
// handed out sequentially and never reused, so a stale id simply misses.
type EntityId uint64

// NoEntity is never assigned to a spawned entity.
const NoEntity EntityId = 0
