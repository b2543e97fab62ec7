package ecscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityHandleValidAndDestroy(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	id := w.New(position.ComponentID())
	e := Handle(w, id)

	assert.True(t, e.Valid())
	assert.True(t, e.Has(position.ComponentID()))

	e.Destroy()
	assert.False(t, e.Valid())
}

func TestEntityAddRemoveComponent(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	velocity := NewComponent[testVelocity](w, "Velocity")
	e := Handle(w, w.New(position.ComponentID()))

	e.AddComponent(velocity.ComponentID())
	assert.True(t, e.Has(velocity.ComponentID()))

	e.RemoveComponent(position.ComponentID())
	assert.False(t, e.Has(position.ComponentID()))
}

func TestEntityComponentsAsString(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	e := Handle(w, w.New(position.ComponentID()))

	assert.NotEmpty(t, e.ComponentsAsString())
}
