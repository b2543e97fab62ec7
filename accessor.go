package ecscore

import "unsafe"

// asBytes views v's memory as a byte slice of exactly sizeof(T),
// for writing a typed value into a raw column (see column.go's POD
// constraint: T must contain no pointers, strings, slices, maps, or
// interfaces for this to be safe).
func asBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// fromBytes reinterprets a raw column slice as a T. b must be at
// least sizeof(T) bytes, which column.At already guarantees for a
// column built with the matching element size.
func fromBytes[T any](b []byte) T {
	return *(*T)(unsafe.Pointer(&b[0]))
}

// Accessor is a typed, zero-allocation view over a single component's
// storage, backed by the raw column buffers this package owns
// directly.
type Accessor[T any] struct {
	component ComponentID
}

// NewAccessor returns an Accessor bound to component, aborting if T's
// size doesn't match the size component was registered with.
func NewAccessor[T any](w *World, component ComponentID) Accessor[T] {
	var zero T
	want := int(unsafe.Sizeof(zero))
	got := w.sizeOf(component)
	if want != got {
		abort(InvalidComponentSizeError{Component: component, Declared: got, Got: want})
	}
	return Accessor[T]{component: component}
}

// Get reads entity's current value, following the prefab fallback
// chain when entity itself doesn't carry the component.
func (a Accessor[T]) Get(w *World, entity EntityID) (T, bool) {
	raw, ok := w.getRaw(entity, a.component)
	if !ok {
		var zero T
		return zero, false
	}
	return fromBytes[T](raw), true
}

// MustGet is Get, panicking if entity doesn't carry the component
// (directly or through a prefab).
func (a Accessor[T]) MustGet(w *World, entity EntityID) T {
	v, ok := a.Get(w, entity)
	if !ok {
		abort(InvalidParametersError{Context: "Accessor.MustGet: entity has no such component"})
	}
	return v
}

// Set overwrites entity's value in place, adding the component first
// if entity doesn't already carry it, and dispatches OnSet.
func (a Accessor[T]) Set(w *World, entity EntityID, value T) {
	if !w.hasOwn(entity, a.component) {
		w.Add(entity, a.component)
	}
	w.setRaw(entity, a.component, asBytes(&value))
	w.dispatchPreMergeOne(OnSet, entity, []ComponentID{a.component})
}

// Has reports whether entity's own row (not counting prefab fallback)
// carries the component.
func (a Accessor[T]) Has(w *World, entity EntityID) bool {
	return w.hasOwn(entity, a.component)
}

// ComponentID returns the component this accessor is bound to.
func (a Accessor[T]) ComponentID() ComponentID {
	return a.component
}

// AccessibleComponent pairs a registered component with a typed
// accessor over it.
type AccessibleComponent[T any] struct {
	Accessor[T]
}

// NewComponent registers a new component named name, sized for T, and
// returns an AccessibleComponent bound to it. Re-registering the same
// name is idempotent and returns the existing component.
func NewComponent[T any](w *World, name string) AccessibleComponent[T] {
	var zero T
	id := w.registerComponent(name, int(unsafe.Sizeof(zero)))
	return AccessibleComponent[T]{Accessor: Accessor[T]{component: id}}
}
