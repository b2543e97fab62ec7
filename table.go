package ecscore

// Table is the archetype: storage for every entity sharing one
// TypeID. It owns one dense column per component in that TypeID's
// canonical list, plus a distinguished row-0 column holding each row's
// EntityID.
type Table struct {
	typeID     TypeID
	components []ComponentID // shares the registry's canonical, sorted slice
	entityIDs  []EntityID    // the distinguished "column 0"
	columns    []*column     // columns[i] holds components[i]'s values
}

func newTable(t TypeID, components []ComponentID, sizeOf func(ComponentID) int) *Table {
	cols := make([]*column, len(components))
	for i, c := range components {
		cols[i] = newColumn(sizeOf(c))
	}
	return &Table{
		typeID:     t,
		components: components,
		columns:    cols,
	}
}

// Length is the number of rows currently stored.
func (t *Table) Length() int {
	return len(t.entityIDs)
}

// Insert appends an uninitialised row and writes entity into column 0,
// returning the new row's index.
func (t *Table) Insert(entity EntityID) int {
	for _, c := range t.columns {
		c.Append()
	}
	t.entityIDs = append(t.entityIDs, entity)
	return len(t.entityIDs) - 1
}

// Grow appends n rows, filling column 0 with first, first+1, ...,
// first+n-1, and returns the index of the first new row.
func (t *Table) Grow(n int, first EntityID) int {
	for _, c := range t.columns {
		c.Grow(n)
	}
	firstRow := len(t.entityIDs)
	for i := 0; i < n; i++ {
		t.entityIDs = append(t.entityIDs, first+EntityID(i))
	}
	return firstRow
}

// Delete swap-removes row, returning the entity that was moved into
// its place (always the prior last row) and whether a move actually
// happened (false when row was already last).
func (t *Table) Delete(row int) (moved EntityID, didMove bool) {
	last := len(t.entityIDs) - 1
	for _, c := range t.columns {
		c.SwapRemove(row)
	}
	moved = t.entityIDs[last]
	if row != last {
		didMove = true
		t.entityIDs[row] = t.entityIDs[last]
	}
	t.entityIDs = t.entityIDs[:last]
	return moved, didMove
}

// EntityAt returns the EntityID stored in column 0 at row.
func (t *Table) EntityAt(row int) EntityID {
	return t.entityIDs[row]
}

// ColumnIndex returns the column position of component within this
// table, or -1 if the table's type doesn't carry it. This mirrors
// typeRegistry.IndexOf but avoids a registry round-trip when the
// caller already has the table in hand.
func (t *Table) ColumnIndex(component ComponentID) int {
	lo, hi := 0, len(t.components)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.components[mid] < component {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(t.components) && t.components[lo] == component {
		return lo
	}
	return -1
}

// transferRow copies every column shared between src and dst from
// srcRow into dstRow, using the sorted-merge algorithm over the two
// tables' canonical component lists: since both lists are strictly
// ascending, a single parallel walk finds every matching component in
// O(|dst|+|src|) without hashing.
func transferRow(dst *Table, dstRow int, src *Table, srcRow int) {
	i, j := 0, 0
	for i < len(dst.components) && j < len(src.components) {
		switch {
		case dst.components[i] == src.components[j]:
			dst.columns[i].Set(dstRow, src.columns[j].At(srcRow))
			i++
			j++
		case dst.components[i] < src.components[j]:
			i++
		default:
			j++
		}
	}
}
