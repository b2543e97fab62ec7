package ecscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPosition struct {
	X, Y float64
}

type testVelocity struct {
	X, Y float64
}

func TestNewWorldBootstrapsBuiltins(t *testing.T) {
	w := NewWorld()
	id, ok := w.ComponentByName("ComponentDecl")
	require.True(t, ok)
	assert.Equal(t, componentDeclID, id)

	id, ok = w.ComponentByName("Name")
	require.True(t, ok)
	assert.Equal(t, nameComponentID, id)

	assert.True(t, w.Alive(componentDeclID))
	assert.True(t, w.Alive(nameComponentID))
}

func TestRegisterComponentIsIdempotentByName(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	again := NewComponent[testPosition](w, "Position")
	assert.Equal(t, position.ComponentID(), again.ComponentID())
}

func TestNewEntityHasExactlyRequestedComponents(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	velocity := NewComponent[testVelocity](w, "Velocity")

	e := w.New(position.ComponentID(), velocity.ComponentID())
	assert.True(t, w.Has(e, position.ComponentID(), velocity.ComponentID()))
	assert.False(t, w.Has(e, componentDeclID))
}

func TestSetAndGetRoundTrip(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	e := w.New(position.ComponentID())

	position.Set(w, e, testPosition{X: 1, Y: 2})
	got, ok := position.Get(w, e)
	require.True(t, ok)
	assert.Equal(t, testPosition{X: 1, Y: 2}, got)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	velocity := NewComponent[testVelocity](w, "Velocity")

	e := w.New(position.ComponentID())
	w.Add(e, velocity.ComponentID())
	assert.True(t, w.Has(e, position.ComponentID(), velocity.ComponentID()))

	w.Remove(e, position.ComponentID())
	assert.False(t, w.Has(e, position.ComponentID()))
	assert.True(t, w.Has(e, velocity.ComponentID()))
}

func TestDeleteRemovesEntityImmediatelyOutsideIteration(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	e := w.New(position.ComponentID())

	w.Delete(e)
	assert.False(t, w.Alive(e))
}

func TestCloneWithoutValueZeroesStorage(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	src := w.New(position.ComponentID())
	position.Set(w, src, testPosition{X: 5, Y: 6})

	clone := w.Clone(src, false)
	got, ok := position.Get(w, clone)
	require.True(t, ok)
	assert.Equal(t, testPosition{}, got)
}

func TestCloneWithValueCopiesStorage(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	src := w.New(position.ComponentID())
	position.Set(w, src, testPosition{X: 5, Y: 6})

	var dispatched []EntityID
	w.RegisterObserver(&ObserverDescriptor{
		Kind:    OnSet,
		Enabled: true,
		Fn: func(w *World, entities []EntityID, components []ComponentID) {
			dispatched = append(dispatched, entities...)
		},
	})

	clone := w.Clone(src, true)
	got, ok := position.Get(w, clone)
	require.True(t, ok)
	assert.Equal(t, testPosition{X: 5, Y: 6}, got)
	assert.Equal(t, []EntityID{clone}, dispatched, "Clone(copyValue=true) must dispatch OnSet for the copied type")
}

func TestNewNBulkCreatesDistinctEntitiesSharingOneTable(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	ty := w.TypeOf(position.ComponentID())

	ids := w.NewN(ty, 100)
	require.Len(t, ids, 100)

	seen := make(map[EntityID]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
		assert.True(t, w.Has(id, position.ComponentID()))
	}
}

// TestNewNFiresExactlyOneBulkOnAddDispatch asserts that NewN(type, k)
// fires on_add exactly once, spanning all k rows, distinguishable from
// k individual New calls which fire k separate length-1 dispatches.
func TestNewNFiresExactlyOneBulkOnAddDispatch(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	ty := w.TypeOf(position.ComponentID())

	var dispatchCount int
	var lastBatchSize int
	w.RegisterObserver(&ObserverDescriptor{
		Kind:       OnAdd,
		Components: []ComponentID{position.ComponentID()},
		Enabled:    true,
		Fn: func(w *World, entities []EntityID, components []ComponentID) {
			dispatchCount++
			lastBatchSize = len(entities)
		},
	})

	ids := w.NewN(ty, 100)
	require.Len(t, ids, 100)
	assert.Equal(t, 1, dispatchCount, "new_n must fire on_add exactly once")
	assert.Equal(t, 100, lastBatchSize, "the single dispatch must span every created row")

	dispatchCount = 0
	for i := 0; i < 5; i++ {
		w.New(position.ComponentID())
	}
	assert.Equal(t, 5, dispatchCount, "5 individual New calls must fire 5 separate dispatches")
}

func TestNewNZeroOrNegativeReturnsNil(t *testing.T) {
	w := NewWorld()
	assert.Nil(t, w.NewN(0, 0))
	assert.Nil(t, w.NewN(0, -5))
}

func TestTypeToEntityRequiresExactlyOneComponent(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	velocity := NewComponent[testVelocity](w, "Velocity")

	single := w.TypeOf(position.ComponentID())
	assert.Equal(t, position.ComponentID(), w.TypeToEntity(single))

	pair := w.TypeOf(position.ComponentID(), velocity.ComponentID())
	assert.Panics(t, func() { w.TypeToEntity(pair) })

	assert.Panics(t, func() { w.TypeToEntity(0) })
}

func TestSetComponentAndGetComponentRoundTrip(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	t1 := w.TypeOf(position.ComponentID())
	e := w.New()

	raw := asBytes(&testPosition{X: 3, Y: 4})
	w.SetComponent(e, t1, raw)

	got, ok := w.GetComponent(e, t1)
	require.True(t, ok)
	assert.Equal(t, testPosition{X: 3, Y: 4}, fromBytes[testPosition](got))
}

func TestSetComponentAbortsOnSizeMismatch(t *testing.T) {
	w := NewWorld()
	position := NewComponent[testPosition](w, "Position")
	t1 := w.TypeOf(position.ComponentID())
	e := w.New()

	assert.Panics(t, func() { w.SetComponent(e, t1, []byte{1, 2, 3}) })
}

func TestScheduleDirtyTracksStructuralChanges(t *testing.T) {
	w := NewWorld()
	w.ClearScheduleDirty()
	assert.False(t, w.ScheduleDirty())

	position := NewComponent[testPosition](w, "Position")
	w.New(position.ComponentID())
	assert.True(t, w.ScheduleDirty())
}
