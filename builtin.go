package ecscore

import "unsafe"

// nameCapacity bounds the built-in Name component. A fixed-size array
// is used instead of a native Go string because columns are raw byte
// buffers transferred with copy() (see column.go) — a string header
// copied that way would alias its backing array across rows sharing
// storage after a SwapRemove, and the GC doesn't scan arbitrary
// []byte as pointer-containing memory, so a string smuggled into one
// would eventually read freed or aliased data.
const nameCapacity = 64

// Name is the built-in component carrying an entity's human-readable
// name. Component registration writes it onto every component entity;
// by-name lookup (World.ComponentByName) goes through the world's
// name cache, not through this component.
type Name struct {
	Value [nameCapacity]byte
	Len   uint8
}

func newName(s string) Name {
	var n Name
	if len(s) > nameCapacity {
		s = s[:nameCapacity]
	}
	copy(n.Value[:], s)
	n.Len = uint8(len(s))
	return n
}

func (n Name) String() string {
	return string(n.Value[:n.Len])
}

// ComponentDecl is the built-in component every component entity
// itself carries: a component is an entity, and that entity's own
// shape records the byte size its values occupy in other entities'
// tables.
type ComponentDecl struct {
	Size int
}

// bootstrap component ids. These are minted first, before the general
// NewComponent path exists, because NewComponent itself needs
// ComponentDecl's and Name's sizes already known to build their own
// backing tables, so their ids are fixed compile-time constants
// instead.
const (
	componentDeclID ComponentID = 1
	nameComponentID ComponentID = 2
)

var (
	componentDeclSize = int(unsafe.Sizeof(ComponentDecl{}))
	nameSize          = int(unsafe.Sizeof(Name{}))
)
