package ecscore

// World is the top-level ECS aggregate: canonical storage, the
// in-progress stage, the type registry, prefab relations, and the
// observer set.
type World struct {
	nextEntity EntityID

	registry *typeRegistry
	tables   map[TypeID]*Table
	index    *EntityIndex

	stage      *Stage
	inProgress bool
	merging    bool
	lockDepth  int

	observers *observerSet
	prefabs   *prefabRegistry

	componentSizes map[ComponentID]int
	componentNames *SimpleCache[ComponentID]

	scheduleDirty bool
}

// componentCacheCapacity bounds how many distinct component names a
// single World can register.
const componentCacheCapacity = 1 << 16

// NewWorld constructs an empty World, bootstrapping the two built-in
// components every other component is described with: ComponentDecl
// (the registered size) and Name (the registered name).
func NewWorld() *World {
	w := &World{
		nextEntity:     2, // 1 and 2 are reserved for the bootstrap components below
		registry:       newTypeRegistry(),
		tables:         make(map[TypeID]*Table),
		index:          newEntityIndex(),
		stage:          newStage(),
		observers:      newObserverSet(),
		prefabs:        newPrefabRegistry(),
		componentSizes: make(map[ComponentID]int),
		componentNames: NewSimpleCache[ComponentID](componentCacheCapacity),
	}
	w.componentSizes[componentDeclID] = componentDeclSize
	w.componentSizes[nameComponentID] = nameSize

	bootstrapType := w.registry.Intern([]ComponentID{componentDeclID, nameComponentID})
	tbl := w.tableFor(bootstrapType)

	for _, id := range []ComponentID{componentDeclID, nameComponentID} {
		row := tbl.Insert(id)
		w.index.Set(id, Row{Type: bootstrapType, Index: row})
	}
	w.setRaw(componentDeclID, componentDeclID, asBytes(&ComponentDecl{Size: componentDeclSize}))
	declName := newName("ComponentDecl")
	w.setRaw(componentDeclID, nameComponentID, asBytes(&declName))

	nameDecl := ComponentDecl{Size: nameSize}
	w.setRaw(nameComponentID, componentDeclID, asBytes(&nameDecl))
	nameName := newName("Name")
	w.setRaw(nameComponentID, nameComponentID, asBytes(&nameName))

	mustRegisterName(w.componentNames, "ComponentDecl", componentDeclID)
	mustRegisterName(w.componentNames, "Name", nameComponentID)
	return w
}

// mustRegisterName interns name during bootstrap, where the caller
// already guarantees the name is fresh.
func mustRegisterName(cache *SimpleCache[ComponentID], name string, id ComponentID) {
	if _, err := cache.Register(name, id); err != nil {
		abort(err)
	}
}

func (w *World) allocEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

func (w *World) allocEntityRange(n int) EntityID {
	first := w.nextEntity + 1
	w.nextEntity += EntityID(n)
	return first
}

func (w *World) sizeOf(c ComponentID) int {
	sz, ok := w.componentSizes[c]
	if !ok {
		abort(InvalidParametersError{Context: "component has no registered size"})
	}
	return sz
}

// registerComponent is the non-generic registration path shared by
// NewComponent's generic wrapper (accessor.go) and anyone registering
// dynamically-sized components. Idempotent by name.
func (w *World) registerComponent(name string, size int) ComponentID {
	if idx, ok := w.componentNames.GetIndex(name); ok {
		return *w.componentNames.GetItem(idx)
	}
	id := w.allocEntity()
	w.componentSizes[id] = size
	if _, err := w.componentNames.Register(name, id); err != nil {
		abort(err)
	}

	t := w.registry.Intern([]ComponentID{componentDeclID, nameComponentID})
	w.commitWFamily(id, t, 0)
	decl := ComponentDecl{Size: size}
	w.setRaw(id, componentDeclID, asBytes(&decl))
	nm := newName(name)
	w.setRaw(id, nameComponentID, asBytes(&nm))
	return id
}

// ComponentByName looks up a previously-registered component's id.
func (w *World) ComponentByName(name string) (ComponentID, bool) {
	idx, ok := w.componentNames.GetIndex(name)
	if !ok {
		return 0, false
	}
	return *w.componentNames.GetItem(idx), true
}

// TypeOf interns components into a canonical TypeID.
func (w *World) TypeOf(components ...ComponentID) TypeID {
	return w.registry.Intern(components)
}

// TypeToEntity requires t's canonical component list to name exactly
// one component and returns it, aborting with UnknownTypeIDError (t
// not in the registry) or TypeNotAnEntityError (t names zero or more
// than one component) otherwise.
func (w *World) TypeToEntity(t TypeID) ComponentID {
	components := w.registry.Components(t)
	if len(components) != 1 {
		abort(TypeNotAnEntityError{Type: t, Count: len(components)})
	}
	return components[0]
}

// SetComponent is the untyped counterpart to Accessor.Set: t must name
// exactly one component, value's length must equal that component's
// declared size, and the component is added to entity first if it
// doesn't already carry it.
func (w *World) SetComponent(entity EntityID, t TypeID, value []byte) {
	if value == nil {
		abort(InvalidParametersError{Context: "SetComponent: nil value"})
	}
	c := w.TypeToEntity(t)
	if want := w.sizeOf(c); want != len(value) {
		abort(InvalidComponentSizeError{Component: c, Declared: want, Got: len(value)})
	}
	if !w.hasOwn(entity, c) {
		w.Add(entity, c)
	}
	w.setRaw(entity, c, value)
	w.dispatchPreMergeOne(OnSet, entity, []ComponentID{c})
}

// GetComponent is the untyped counterpart to Accessor.Get: t must name
// exactly one component. Returns (nil, false) if entity carries
// neither the component nor a prefab default for it.
func (w *World) GetComponent(entity EntityID, t TypeID) ([]byte, bool) {
	return w.getRaw(entity, w.TypeToEntity(t))
}

// New creates an entity carrying exactly the given components, zeroed
// and then prefab-defaulted, dispatching a single OnAdd.
func (w *World) New(components ...ComponentID) EntityID {
	id := w.allocEntity()
	t := w.registry.Intern(components)
	w.commitWFamily(id, t, 0)
	return id
}

// NewWithType is New, but for a TypeID already interned via TypeOf —
// avoids re-interning the same component set on every call in a loop.
func (w *World) NewWithType(t TypeID) EntityID {
	id := w.allocEntity()
	w.commitWFamily(id, t, 0)
	return id
}

// NewN bulk-creates n entities of type t in one table growth: storage
// grows in bulk, the entity index is still populated one entity at a
// time (each needs its own row), and prefab defaults are applied once
// per entity in a pass separate from row creation. OnAdd itself fires
// exactly once for the whole batch, not once per entity — that
// distinction is what makes NewN(t, k) observably different from k
// individual New(t) calls.
func (w *World) NewN(t TypeID, n int) []EntityID {
	if n <= 0 {
		return nil
	}
	first := w.allocEntityRange(n)
	ids := make([]EntityID, n)
	for i := range ids {
		ids[i] = first + EntityID(i)
	}

	var tbl *Table
	shadow := w.inProgress
	if shadow {
		tbl = w.stage.tableFor(t, w.registry, w.sizeOf)
	} else {
		tbl = w.tableFor(t)
	}
	firstRow := tbl.Grow(n, first)

	for i, id := range ids {
		row := Row{Type: t, Index: firstRow + i}
		if shadow {
			w.stage.index.Set(id, row)
			w.stage.markTouched(id)
		} else {
			w.index.Set(id, row)
		}
	}

	components := w.registry.Components(t)
	if len(components) > 0 {
		w.dispatchPreMergeBulk(OnAdd, ids, components)
		for _, id := range ids {
			w.applyPrefabDefaults(id, t, components)
		}
	}
	w.scheduleDirty = true
	return ids
}

// Clone creates a new entity of entity's current type. When copyValue
// is true every component's bytes are copied from entity and an OnSet
// is dispatched for the full type; when false the clone gets
// same-shaped, zeroed (then prefab-defaulted) storage without a memcpy
// or dispatch.
func (w *World) Clone(entity EntityID, copyValue bool) EntityID {
	srcRow, srcSrc := w.locate(entity)
	t := rowType(srcRow, srcSrc)
	id := w.allocEntity()
	w.commitWFamily(id, t, 0)
	if copyValue {
		srcTable := w.physicalTable(srcRow, srcSrc)
		dstRow, dstSrc := w.locate(id)
		dstTable := w.physicalTable(dstRow, dstSrc)
		if srcTable != nil && dstTable != nil {
			transferRow(dstTable, dstRow.Index, srcTable, srcRow.Index)
		}
		if components := w.registry.Components(t); len(components) > 0 {
			w.dispatchPreMergeOne(OnSet, id, components)
		}
	}
	return id
}

// Delete destroys entity. While in_progress the deletion is staged and
// applied at Merge; otherwise it happens immediately.
func (w *World) Delete(entity EntityID) {
	if w.inProgress {
		if r, ok := w.stage.index.Get(entity); ok && !r.Empty() {
			w.deleteShadowRow(r)
			w.stage.index.Set(entity, Row{})
		}
		delete(w.stage.touched, entity)
		if !w.Alive(entity) {
			Config.logger.Debug().Uint64("entity", uint64(entity)).Msg("dropped stage delete: entity not alive")
			return
		}
		w.stage.markDeleted(entity)
		return
	}
	r, ok := w.index.Get(entity)
	if !ok {
		return
	}
	t := r.Type
	// Dispatch while the row is still live and the index still points
	// at it, so an observer can still read the components it's about
	// to lose.
	if removed := w.registry.Components(t); len(removed) > 0 {
		w.observers.dispatchOne(w, OnRemove, entity, removed)
	}
	w.deleteCanonicalRow(r)
	w.index.Delete(entity)
	w.scheduleDirty = true
}

// Add stages components onto entity and commits immediately as a
// single transaction.
func (w *World) Add(entity EntityID, components ...ComponentID) {
	w.commitWFamily(entity, w.registry.Intern(components), 0)
}

// Remove stages components off entity and commits immediately.
func (w *World) Remove(entity EntityID, components ...ComponentID) {
	w.commitWFamily(entity, 0, w.registry.Intern(components))
}

// Commit performs a single combined add+remove transaction: entity
// gains toAdd and loses toRemove in one table transfer rather than two.
func (w *World) Commit(entity EntityID, toAdd, toRemove []ComponentID) {
	w.commitWFamily(entity, w.registry.Intern(toAdd), w.registry.Intern(toRemove))
}

// Has reports whether entity's effective type (including any prefab
// chain) carries every one of components.
func (w *World) Has(entity EntityID, components ...ComponentID) bool {
	t := w.effectiveType(entity)
	return w.registry.Contains(t, w.registry.Intern(components), true)
}

// HasAny reports whether entity's effective type carries at least one
// of components.
func (w *World) HasAny(entity EntityID, components ...ComponentID) bool {
	t := w.effectiveType(entity)
	return w.registry.Contains(t, w.registry.Intern(components), false)
}

// Alive reports whether entity is known to the world right now (stage
// view while in_progress, canonical otherwise).
func (w *World) Alive(entity EntityID) bool {
	row, src := w.locate(entity)
	switch src {
	case rowAbsent:
		return false
	case rowShadow:
		return !row.Empty()
	default:
		return true
	}
}

// effectiveType widens entity's live TypeID with every component
// contributed transitively by its prefab chain, walked from the
// entity's *current* (possibly staged) type rather than from any
// pending to_add.
func (w *World) effectiveType(entity EntityID) TypeID {
	row, src := w.locate(entity)
	cur := rowType(row, src)
	widened := cur
	seen := map[EntityID]bool{}
	for {
		prefab, ok := w.prefabs.entityOf(cur)
		if !ok || prefab == entity || seen[prefab] {
			return widened
		}
		seen[prefab] = true
		pRow, pSrc := w.locate(prefab)
		pt := rowType(pRow, pSrc)
		widened = w.registry.Merge(widened, pt, 0)
		cur = pt
	}
}

// hasOwn reports whether entity's own row (not its prefab chain)
// physically carries component, the check Set uses to decide whether
// an implicit Add is needed.
func (w *World) hasOwn(entity EntityID, component ComponentID) bool {
	row, src := w.locate(entity)
	tbl := w.physicalTable(row, src)
	if tbl == nil {
		return false
	}
	return tbl.ColumnIndex(component) >= 0
}

// setRaw writes value into entity's column for component, aborting if
// entity doesn't currently carry component.
func (w *World) setRaw(entity EntityID, component ComponentID, value []byte) {
	row, src := w.locate(entity)
	tbl := w.physicalTable(row, src)
	if tbl == nil {
		abort(InvalidParametersError{Context: "setRaw: entity has no row"})
	}
	idx := tbl.ColumnIndex(component)
	if idx < 0 {
		abort(InvalidParametersError{Context: "setRaw: entity does not carry component"})
	}
	tbl.columns[idx].Set(row.Index, value)
}

// getRaw reads entity's bytes for component, falling back through the
// prefab chain — including when entity's current row only exists in
// the stage.
func (w *World) getRaw(entity EntityID, component ComponentID) ([]byte, bool) {
	row, src := w.locate(entity)
	if tbl := w.physicalTable(row, src); tbl != nil {
		if idx := tbl.ColumnIndex(component); idx >= 0 {
			return tbl.columns[idx].At(row.Index), true
		}
	}
	t := rowType(row, src)
	if prefab, ok := w.prefabs.entityOf(t); ok && prefab != entity {
		return w.getRaw(prefab, component)
	}
	return nil, false
}

// SetPrefab establishes the prefab relation for TypeID t.
func (w *World) SetPrefab(t TypeID, prefab EntityID) {
	w.prefabs.Set(t, prefab)
}

// UnsetPrefab removes the prefab relation for TypeID t.
func (w *World) UnsetPrefab(t TypeID) {
	w.prefabs.Unset(t)
}

// RegisterObserver installs desc and returns it.
func (w *World) RegisterObserver(desc *ObserverDescriptor) *ObserverDescriptor {
	return w.observers.Register(desc)
}

// Begin marks the world in_progress, deferring structural mutations to
// the stage until a matching End. Calls nest.
func (w *World) Begin() {
	w.lockDepth++
	w.inProgress = true
}

// End undoes one Begin; once every nested Begin has a matching End,
// the stage is merged into canonical storage.
func (w *World) End() {
	if w.lockDepth > 0 {
		w.lockDepth--
	}
	if w.lockDepth == 0 {
		w.inProgress = false
		w.Merge()
	}
}

// ScheduleDirty reports whether a structural change has happened
// since the last ClearScheduleDirty.
func (w *World) ScheduleDirty() bool {
	return w.scheduleDirty
}

// ClearScheduleDirty resets the dirty flag.
func (w *World) ClearScheduleDirty() {
	w.scheduleDirty = false
}
