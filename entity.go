package ecscore

import (
	"strconv"
	"strings"
)

// Entity is a lightweight, ergonomic handle over an EntityID and the
// World it lives in. All state still lives in World; Entity is just a
// convenient method receiver.
type Entity struct {
	id    EntityID
	world *World
}

// Handle wraps id with w for ergonomic method calls.
func Handle(w *World, id EntityID) Entity {
	return Entity{id: id, world: w}
}

// ID returns the underlying EntityID.
func (e Entity) ID() EntityID {
	return e.id
}

// Valid reports whether the entity is currently known to its world.
func (e Entity) Valid() bool {
	return e.world.Alive(e.id)
}

// AddComponent adds components to the entity immediately.
func (e Entity) AddComponent(components ...ComponentID) {
	e.world.Add(e.id, components...)
}

// RemoveComponent removes components from the entity immediately.
func (e Entity) RemoveComponent(components ...ComponentID) {
	e.world.Remove(e.id, components...)
}

// Has reports whether the entity carries every one of components.
func (e Entity) Has(components ...ComponentID) bool {
	return e.world.Has(e.id, components...)
}

// Components returns the entity's own component list (not counting
// any prefab chain), for debug/introspection use.
func (e Entity) Components() []ComponentID {
	row, src := e.world.locate(e.id)
	return e.world.registry.Components(rowType(row, src))
}

// ComponentsAsString renders the entity's component ids for logging.
func (e Entity) ComponentsAsString() string {
	ids := e.Components()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// Destroy deletes the entity from its world.
func (e Entity) Destroy() {
	e.world.Delete(e.id)
}
