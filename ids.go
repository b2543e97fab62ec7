package ecscore

// EntityID is an opaque, monotonically allocated identifier. It never
// carries a generation count: once allocated, a numeric value is never
// reassigned to a different logical entity.
type EntityID uint64

// ComponentID is an EntityID that additionally carries a ComponentDecl
// component, i.e. a component is itself an entity.
type ComponentID = EntityID

// TypeID is an opaque handle for a canonical, duplicate-free, sorted
// list of ComponentIDs, interned by the world's type registry. The
// zero value names the empty type. An entity created with no
// components has no table row and no entity index entry; an entity
// whose components are all removed is not dropped from the index but
// moved to a row in TypeID 0's table, which has no component columns.
type TypeID uint32

// Row locates an entity within a table: which TypeID's table it
// inhabits, and at which index.
//
// The zero Row (TypeID 0, Index 0) is the stage's "vacated" sentinel:
// an entry present in the stage shadow index with this exact value
// means the entity canonically exists but has been removed from its
// table within the current iteration, distinct from having no shadow
// entry at all (see Stage).
type Row struct {
	Type  TypeID
	Index int
}

// Empty reports whether r is the zero Row.
func (r Row) Empty() bool {
	return r.Type == 0 && r.Index == 0
}
