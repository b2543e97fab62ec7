package ecscore

// Cursor iterates entities across every canonical table whose TypeID
// matches a query. Initializing a cursor calls World.Begin, putting
// the world in_progress for the duration of iteration; Reset (called
// automatically once iteration is exhausted) calls World.End, merging
// any staged mutations made while iterating.
type Cursor struct {
	world *World
	query QueryNode

	matched     []*Table
	tableIndex  int
	current     *Table
	entityIndex int
	remaining   int
	initialized bool
}

// NewCursor creates a cursor over every entity whose table matches q.
func NewCursor(w *World, q QueryNode) *Cursor {
	return &Cursor{world: w, query: q}
}

// Initialize finds every matching table and begins the world's
// in-progress stage. Safe to call more than once; only the first call
// does anything.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	c.world.Begin()
	c.matched = c.matched[:0]
	for t, tbl := range c.world.tables {
		if tbl.Length() == 0 {
			continue
		}
		if c.query.Evaluate(t, c.world.registry) {
			c.matched = append(c.matched, tbl)
		}
	}
	if len(c.matched) > 0 {
		c.current = c.matched[0]
		c.remaining = c.current.Length()
	}
	c.initialized = true
}

// Next advances to the next matching entity, returning false once
// iteration is exhausted (at which point the cursor has already
// called Reset/End on the caller's behalf).
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.Initialize()
	}
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	for c.tableIndex < len(c.matched) {
		c.current = c.matched[c.tableIndex]
		c.remaining = c.current.Length()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.tableIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Reset clears cursor state and ends the world's in-progress stage,
// merging any deferred mutations made during iteration.
func (c *Cursor) Reset() {
	c.tableIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matched = nil
	wasInit := c.initialized
	c.initialized = false
	if wasInit {
		c.world.End()
	}
}

// CurrentEntity returns the entity at the cursor's current position.
func (c *Cursor) CurrentEntity() EntityID {
	return c.current.EntityAt(c.entityIndex - 1)
}

// EntityAtOffset returns the entity at offset positions from current.
func (c *Cursor) EntityAtOffset(offset int) EntityID {
	return c.current.EntityAt(c.entityIndex - 1 + offset)
}

// RemainingInTable returns how many entities are left in the table the
// cursor is currently positioned in.
func (c *Cursor) RemainingInTable() int {
	return c.remaining - c.entityIndex
}

// TotalMatched returns the total number of entities across every
// matching table, without consuming the cursor.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.Initialize()
	}
	total := 0
	for _, tbl := range c.matched {
		total += tbl.Length()
	}
	c.Reset()
	return total
}
