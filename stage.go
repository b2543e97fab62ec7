package ecscore

// Stage is the shadow overlay active while the world is in_progress
// (iterating). Structural mutations issued mid-iteration land here
// instead of touching canonical storage, and are folded into the
// canonical world by Merge at the end of the cycle.
//
// A stage owns its own shadow EntityIndex and shadow Tables, keyed by
// TypeID exactly like the canonical side, plus:
//
//   - removeMerge: entity -> TypeID of components already removed from
//     the entity's shadow row, accumulated across multiple commits so
//     on_remove observers see every removal at merge time even though
//     the row itself only ever holds the latest type.
//   - deleteStage: entities destroyed mid-cycle; their canonical rows
//     are removed at Merge rather than immediately.
//   - touched: the set of entities that have a live row in this stage —
//     a plain Go map (unlike the intmap-backed EntityIndex) specifically
//     so Merge can range over it; intmap's confirmed API has no iterator.
type Stage struct {
	index       *EntityIndex
	tables      map[TypeID]*Table
	touched     map[EntityID]bool
	removeMerge map[EntityID]TypeID
	deleteStage []EntityID
}

func newStage() *Stage {
	return &Stage{
		index:       newEntityIndex(),
		tables:      make(map[TypeID]*Table),
		touched:     make(map[EntityID]bool),
		removeMerge: make(map[EntityID]TypeID),
	}
}

// markTouched records that entity now owns a live shadow row.
func (s *Stage) markTouched(entity EntityID) {
	s.touched[entity] = true
}

// tableFor returns (creating if necessary) the shadow table for t.
func (s *Stage) tableFor(t TypeID, reg *typeRegistry, sizeOf func(ComponentID) int) *Table {
	if tbl, ok := s.tables[t]; ok {
		return tbl
	}
	tbl := newTable(t, reg.Components(t), sizeOf)
	s.tables[t] = tbl
	return tbl
}

// recordRemove unions remove into entity's pending remove-set, so a
// later merge reports every component removed this cycle rather than
// just the most recent removal.
func (s *Stage) recordRemove(reg *typeRegistry, entity EntityID, remove TypeID) {
	cur := s.removeMerge[entity]
	s.removeMerge[entity] = reg.Merge(cur, remove, 0)
}

// markDeleted records entity for removal at the next Merge.
func (s *Stage) markDeleted(entity EntityID) {
	s.deleteStage = append(s.deleteStage, entity)
}

// reset clears all pending state after a successful Merge, so the
// Stage is ready for the next in_progress cycle.
func (s *Stage) reset() {
	s.index = newEntityIndex()
	s.tables = make(map[TypeID]*Table)
	s.touched = make(map[EntityID]bool)
	s.removeMerge = make(map[EntityID]TypeID)
	s.deleteStage = nil
}
