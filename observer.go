package ecscore

// ObserverKind names the lifecycle moment an observer fires on.
type ObserverKind int

const (
	OnAdd ObserverKind = iota
	OnRemove
	OnSet
)

// ObserverFunc receives the world, the entities a single dispatch
// touched, and the exact component set the firing transition touched
// (added components for OnAdd, removed for OnRemove, the single set
// component for OnSet). entities has length 1 for ordinary per-entity
// transitions and length >1 only for a bulk dispatch such as NewN's
// single OnAdd spanning every row it created. An observer that needs a
// component's value reads it through a typed Accessor or
// World.GetComponent rather than a raw column/offset pair, so it never
// needs to resolve a column index itself.
type ObserverFunc func(w *World, entities []EntityID, components []ComponentID)

// ObserverDescriptor registers interest in a component set for a given
// kind; Components is matched with "any of" semantics.
type ObserverDescriptor struct {
	Kind       ObserverKind
	Components []ComponentID
	Fn         ObserverFunc
	Enabled    bool
}

// observerSet holds every registered observer, bucketed by kind so
// dispatch only walks the bucket relevant to the transition at hand.
type observerSet struct {
	buckets [3][]*ObserverDescriptor
}

func newObserverSet() *observerSet {
	return &observerSet{}
}

// Register adds desc as given (an observer registered with Enabled
// false stays silent until the caller sets it) and returns it so
// callers can later flip Enabled.
func (o *observerSet) Register(desc *ObserverDescriptor) *ObserverDescriptor {
	if desc.Fn == nil {
		abort(InvalidParametersError{Context: "RegisterObserver: nil Fn"})
	}
	o.buckets[desc.Kind] = append(o.buckets[desc.Kind], desc)
	return desc
}

// matches reports whether desc cares about any component in touched —
// an empty Components list matches every transition of that kind.
func (desc *ObserverDescriptor) matches(touched []ComponentID) bool {
	if len(desc.Components) == 0 {
		return true
	}
	for _, want := range desc.Components {
		for _, got := range touched {
			if want == got {
				return true
			}
		}
	}
	return false
}

// dispatch invokes every enabled, matching observer of kind exactly
// once for the whole entities/touched transition, in registration
// order. A caller with a batch of entities that all underwent the same
// transition (e.g. NewN's bulk insert) passes them all in one call so
// each observer fires once per transition, not once per entity.
func (o *observerSet) dispatch(w *World, kind ObserverKind, entities []EntityID, touched []ComponentID) {
	if len(touched) == 0 || len(entities) == 0 {
		return
	}
	for _, desc := range o.buckets[kind] {
		if !desc.Enabled {
			continue
		}
		if desc.matches(touched) {
			desc.Fn(w, entities, touched)
		}
	}
}

// dispatchOne is dispatch for the common single-entity transition.
func (o *observerSet) dispatchOne(w *World, kind ObserverKind, entity EntityID, touched []ComponentID) {
	o.dispatch(w, kind, []EntityID{entity}, touched)
}

// dispatchPreMergeOne dispatches a pre-merge-kind observer (OnAdd,
// OnSet) for a single entity with in_progress forced true for the
// call's duration, so any structural mutation an observer makes is
// staged rather than applied directly. If the call didn't originate
// from real iteration, a merge runs immediately afterward to fold
// those staged mutations back into canonical storage; if it did, the
// caller's own End will merge them later and this is a no-op restore.
func (w *World) dispatchPreMergeOne(kind ObserverKind, entity EntityID, touched []ComponentID) {
	wasInProgress := w.inProgress
	w.inProgress = true
	w.observers.dispatchOne(w, kind, entity, touched)
	w.inProgress = wasInProgress
	if !wasInProgress {
		w.Merge()
	}
}

// dispatchPreMergeBulk is dispatchPreMergeOne for a batch of entities
// that underwent the same transition in one call (e.g. NewN's bulk
// OnAdd).
func (w *World) dispatchPreMergeBulk(kind ObserverKind, entities []EntityID, touched []ComponentID) {
	wasInProgress := w.inProgress
	w.inProgress = true
	w.observers.dispatch(w, kind, entities, touched)
	w.inProgress = wasInProgress
	if !wasInProgress {
		w.Merge()
	}
}
