/*
Package ecscore implements the core of an Entity-Component-System
runtime: entity identity, archetype-oriented column storage, staged
(deferred) mutation during iteration, and lifecycle notifications.

Core Concepts:

  - Entity: an opaque, monotonically allocated identifier.
  - Component: a fixed-size value type, itself identified by an entity.
  - Type: a canonical, sorted, duplicate-free set of component ids,
    interned behind a stable TypeID.
  - Table: the archetype backing storage for every entity sharing one
    TypeID; one dense column per component plus a row-0 entity column.
  - Stage: a per-iteration overlay that diverts structural writes away
    from the tables currently being scanned, merged back at a
    well-defined quiescent point.

Basic Usage:

	world := ecscore.NewWorld()
	position := ecscore.NewComponent[Position](world, "Position")
	velocity := ecscore.NewComponent[Velocity](world, "Velocity")

	e := world.New(position.ComponentID(), velocity.ComponentID())
	position.Set(world, e, Position{X: 1, Y: 2})

	q := ecscore.NewQuery().And(position.ComponentID(), velocity.ComponentID())
	cursor := ecscore.NewCursor(world, q)
	for cursor.Next() {
		entity := cursor.CurrentEntity()
		pos := position.MustGet(world, entity)
		vel := velocity.MustGet(world, entity)
		pos.X += vel.X
		pos.Y += vel.Y
		position.Set(world, entity, pos)
	}

ecscore is the storage and mutation engine underneath a larger ECS
library; scheduling, query compilation, and the public façade are
external collaborators layered on top of it.
*/
package ecscore
