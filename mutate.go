package ecscore

// rowSource distinguishes where a located row physically lives, so
// the mutation engine knows which mutate/notify rules apply to it.
type rowSource int

const (
	rowAbsent rowSource = iota
	rowShadow
	rowCanonical
)

// locate finds entity's current row. While in_progress it prefers the
// stage's shadow index, falling back to canonical when the entity
// hasn't been touched yet this cycle, so that an entity's first touch
// mid-cycle still merges against its true prior composition instead of
// an empty one.
func (w *World) locate(entity EntityID) (Row, rowSource) {
	if w.inProgress {
		if r, ok := w.stage.index.Get(entity); ok {
			return r, rowShadow
		}
	}
	if r, ok := w.index.Get(entity); ok {
		return r, rowCanonical
	}
	return Row{}, rowAbsent
}

// rowType resolves the TypeID a located row represents, treating the
// stage's vacated sentinel (zero Row while still present as a map key)
// as "no components."
func rowType(r Row, src rowSource) TypeID {
	if src == rowAbsent {
		return 0
	}
	if src == rowShadow && r.Empty() {
		return 0
	}
	return r.Type
}

// physicalTable returns the Table backing a located row, or nil if the
// row has no physical storage (absent, or vacated in the stage).
func (w *World) physicalTable(r Row, src rowSource) *Table {
	switch src {
	case rowShadow:
		if r.Empty() {
			return nil
		}
		return w.stage.tables[r.Type]
	case rowCanonical:
		return w.tables[r.Type]
	default:
		return nil
	}
}

// tableFor returns (creating if necessary) the canonical table for t.
func (w *World) tableFor(t TypeID) *Table {
	if tbl, ok := w.tables[t]; ok {
		return tbl
	}
	tbl := newTable(t, w.registry.Components(t), w.sizeOf)
	w.tables[t] = tbl
	Config.logger.Debug().Uint32("type", uint32(t)).Int("components", len(tbl.components)).Msg("table created")
	if Config.onTableCreated != nil {
		Config.onTableCreated(t)
	}
	return tbl
}

// deleteCanonicalRow swap-removes r's physical row and fixes up the
// canonical index entry for whichever entity was moved into its place.
func (w *World) deleteCanonicalRow(r Row) {
	tbl, ok := w.tables[r.Type]
	if !ok {
		return
	}
	moved, didMove := tbl.Delete(r.Index)
	if didMove {
		w.index.Set(moved, Row{Type: r.Type, Index: r.Index})
	}
}

// deleteShadowRow swap-removes r's shadow row and fixes up the shadow
// index entry for whichever entity was moved into its place.
func (w *World) deleteShadowRow(r Row) {
	tbl, ok := w.stage.tables[r.Type]
	if !ok {
		return
	}
	moved, didMove := tbl.Delete(r.Index)
	if didMove {
		w.stage.index.Set(moved, Row{Type: r.Type, Index: r.Index})
	}
}

// commitWFamily is the single choke point for every structural change:
// it resolves entity's current composition, folds in toAdd/toRemove,
// transfers column data into the right-shaped table (canonical or
// stage-shadow, depending on in_progress), retires the old physical
// row, and dispatches on_add/on_remove/prefab inheritance.
func (w *World) commitWFamily(entity EntityID, toAdd, toRemove TypeID) {
	oldRow, oldSrc := w.locate(entity)
	oldType := rowType(oldRow, oldSrc)
	newType := w.registry.Merge(oldType, toAdd, toRemove)

	if newType == oldType {
		return
	}

	added := differenceSorted(w.registry.Components(newType), w.registry.Components(oldType))
	removed := differenceSorted(w.registry.Components(oldType), w.registry.Components(newType))

	var dstTable *Table
	var dstSrc rowSource
	if w.inProgress {
		dstTable = w.stage.tableFor(newType, w.registry, w.sizeOf)
		dstSrc = rowShadow
	} else {
		dstTable = w.tableFor(newType)
		dstSrc = rowCanonical
	}
	dstRow := dstTable.Insert(entity)

	oldPhysical := w.physicalTable(oldRow, oldSrc)
	if oldPhysical != nil {
		transferRow(dstTable, dstRow, oldPhysical, oldRow.Index)
	}

	// Fire on_remove while the old row is still live and the entity
	// index still points at it, so an observer can read the removed
	// components' final values before that row is retired below.
	if len(removed) > 0 && dstSrc == rowCanonical {
		w.observers.dispatchOne(w, OnRemove, entity, removed)
	}

	switch {
	case oldSrc == rowCanonical && !w.inProgress:
		w.deleteCanonicalRow(oldRow)
	case oldSrc == rowCanonical && w.inProgress:
		// First touch this cycle: canonical storage is left alone —
		// mutating it now would be visible to any concurrent iteration
		// over the canonical tables. Cleanup happens in Merge, which
		// also needs remove_merge (folded in below) to know which
		// components were removed before the entity was ever
		// physically touched in the stage.
	case oldSrc == rowShadow && !oldRow.Empty():
		w.deleteShadowRow(oldRow)
	}

	if dstSrc == rowShadow {
		w.stage.index.Set(entity, Row{Type: newType, Index: dstRow})
		w.stage.markTouched(entity)
		if len(removed) > 0 {
			w.stage.recordRemove(w.registry, entity, w.registry.Intern(removed))
		}
	} else {
		w.index.Set(entity, Row{Type: newType, Index: dstRow})
	}

	if len(added) > 0 {
		w.dispatchPreMergeOne(OnAdd, entity, added)
	}

	w.applyPrefabDefaults(entity, newType, added)
	w.scheduleDirty = true
}

// applyPrefabDefaults copies default values for added from the prefab
// chain attached to t, walked from the entity's live (possibly staged)
// type rather than from to_add, so a prefab relation attached mid-cycle
// is honored immediately for components added later in the same cycle.
// Runs after on_add has fired; a caller's explicit Set always runs
// after Add returns, so it still overrides whatever default this copies
// in.
func (w *World) applyPrefabDefaults(entity EntityID, t TypeID, added []ComponentID) {
	if len(added) == 0 {
		return
	}
	seen := map[TypeID]bool{}
	for cur := t; ; {
		prefab, ok := w.prefabs.entityOf(cur)
		if !ok || prefab == entity || seen[cur] {
			return
		}
		seen[cur] = true

		pRow, pSrc := w.locate(prefab)
		pTable := w.physicalTable(pRow, pSrc)
		dRow, dSrc := w.locate(entity)
		dTable := w.physicalTable(dRow, dSrc)
		if pTable == nil || dTable == nil {
			return
		}
		remaining := added[:0:0]
		for _, c := range added {
			si := pTable.ColumnIndex(c)
			di := dTable.ColumnIndex(c)
			if si >= 0 && di >= 0 {
				dTable.columns[di].Set(dRow.Index, pTable.columns[si].At(pRow.Index))
			} else {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == 0 {
			return
		}
		added = remaining
		cur = rowType(pRow, pSrc)
	}
}

// Merge folds every pending stage mutation into canonical storage and
// clears the stage. Re-entrant calls (e.g. from an observer triggered
// during the merge itself) are no-ops.
func (w *World) Merge() {
	if w.merging {
		return
	}
	w.merging = true
	defer func() { w.merging = false }()

	Config.logger.Debug().
		Int("deletes", len(w.stage.deleteStage)).
		Int("touched", len(w.stage.touched)).
		Msg("merge cycle starting")

	for _, e := range w.stage.deleteStage {
		if r, ok := w.index.Get(e); ok {
			oldType := r.Type
			// Dispatch while the row is still live and the index still
			// points at it, so an observer can read the final values of
			// the components it's about to lose.
			if removed := w.registry.Components(oldType); len(removed) > 0 {
				w.observers.dispatchOne(w, OnRemove, e, removed)
			}
			w.deleteCanonicalRow(r)
			w.index.Delete(e)
		}
	}

	for e := range w.stage.touched {
		// A touched entity always owns a row in a stage table, even when
		// that row is TypeID 0's row 0 (all components removed), which
		// reads as the zero Row; it is still merged.
		shadowRow, ok := w.stage.index.Get(e)
		if !ok {
			continue
		}
		canonRow, hadCanon := w.index.Get(e)
		canonType := TypeID(0)
		if hadCanon {
			canonType = canonRow.Type
		}
		removeType := w.stage.removeMerge[e]

		// Unioning the entity's pre-cycle canonical type with its staged
		// type (rather than taking the staged type verbatim) and then
		// subtracting remove_merge is what makes a removal recorded
		// earlier in the cycle win over a canonical add that only
		// becomes visible at this same merge.
		targetType := w.registry.Merge(canonType, shadowRow.Type, removeType)

		dstTable := w.tableFor(targetType)
		srcTable := w.stage.tables[shadowRow.Type]
		dstRow := dstTable.Insert(e)
		transferRow(dstTable, dstRow, srcTable, shadowRow.Index)

		// Dispatch while the index still points at the pre-cycle
		// canonical row, so an observer can still read the final values
		// of the components it's about to lose.
		if removed := w.registry.Components(removeType); len(removed) > 0 {
			w.observers.dispatchOne(w, OnRemove, e, removed)
		}

		// When the entity's net type for this cycle is unchanged from its
		// pre-cycle canonical type, dstTable IS canonRow's table: the row
		// just inserted above is that table's new last row, so deleting
		// canonRow below swap-removes it straight into canonRow's old
		// slot and deleteCanonicalRow's own moved-entity fixup already
		// points e's index entry at the right row. Setting the index
		// again afterwards with the pre-delete dstRow would clobber that
		// fixup with a now out-of-bounds row (the table shrank back to
		// its original length), silently corrupting e's storage.
		sameTable := hadCanon && canonRow.Type == targetType
		if hadCanon {
			w.deleteCanonicalRow(canonRow)
		}
		if !sameTable {
			w.index.Set(e, Row{Type: targetType, Index: dstRow})
		}
	}

	w.stage.reset()
}
