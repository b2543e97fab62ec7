package ecscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorIteratesMatchingEntitiesOnly(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	velocity := NewComponent[testVelocity](w, "Velocity")

	both := map[EntityID]bool{}
	for i := 0; i < 3; i++ {
		both[w.New(position.ComponentID(), velocity.ComponentID())] = true
	}
	for i := 0; i < 2; i++ {
		w.New(position.ComponentID())
	}

	q := NewQuery().And(position.ComponentID(), velocity.ComponentID())
	cursor := NewCursor(w, q)

	seen := map[EntityID]bool{}
	for cursor.Next() {
		seen[cursor.CurrentEntity()] = true
	}

	assert.Equal(t, both, seen)
}

func TestCursorTotalMatched(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	for i := 0; i < 7; i++ {
		w.New(position.ComponentID())
	}

	q := NewQuery().And(position.ComponentID())
	cursor := NewCursor(w, q)
	assert.Equal(t, 7, cursor.TotalMatched())
}

func TestCursorDeferredDeleteStillVisibleDuringIteration(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	ids := make([]EntityID, 0, 3)
	for i := 0; i < 3; i++ {
		ids = append(ids, w.New(position.ComponentID()))
	}

	q := NewQuery().And(position.ComponentID())
	cursor := NewCursor(w, q)

	visits := 0
	for cursor.Next() {
		visits++
		if cursor.CurrentEntity() == ids[0] {
			w.Delete(ids[0])
		}
	}
	assert.Equal(t, 3, visits, "mid-cycle delete must not shrink the cycle still in progress")
	assert.False(t, w.Alive(ids[0]), "deleted entity must be gone once the cursor's cycle has merged")
}
