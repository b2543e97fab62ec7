package ecscore

import "github.com/kamstrup/intmap"

// EntityIndex maps every live EntityID to its current Row (which table
// holds it and at what offset). There is always exactly one canonical
// EntityIndex per World, plus one shadow EntityIndex per Stage. Entries
// are never recycled: once an EntityID is minted it is never reused
// for a different logical entity.
type EntityIndex struct {
	rows *intmap.Map[EntityID, Row]
}

func newEntityIndex() *EntityIndex {
	return &EntityIndex{rows: intmap.New[EntityID, Row](256)}
}

// Get returns the row for entity and whether it has one.
func (idx *EntityIndex) Get(entity EntityID) (Row, bool) {
	return idx.rows.Get(entity)
}

// Set records (or overwrites) entity's row.
func (idx *EntityIndex) Set(entity EntityID, row Row) {
	idx.rows.Put(entity, row)
}

// Delete removes entity from the index entirely (used on canonical
// deletion; stages instead write the zero-value sentinel row via Set
// to mark "vacated in stage" without losing the key — see stage.go).
func (idx *EntityIndex) Delete(entity EntityID) {
	idx.rows.Del(entity)
}
