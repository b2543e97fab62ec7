package ecscore

// column is a dense, contiguous array of fixed-size elements. It has
// no notion of the component it stores, only an element size supplied
// at construction time; transfer between columns is always a byte
// copy. Components have no static Go type as far as storage is
// concerned, so every component value must be POD-like (no embedded
// pointers, strings, slices, maps, or interfaces) for a raw byte copy
// to be safe. Built-in components that need string-shaped data (see
// Name in builtin.go) store it in a fixed-size byte array instead of a
// native Go string for exactly this reason.
type column struct {
	elemSize int
	data     []byte
}

func newColumn(elemSize int) *column {
	return &column{elemSize: elemSize}
}

// Len returns the number of elements currently stored.
func (c *column) Len() int {
	if c.elemSize == 0 {
		return 0
	}
	return len(c.data) / c.elemSize
}

// Append appends one zeroed element and returns its index.
func (c *column) Append() int {
	idx := c.Len()
	c.data = append(c.data, make([]byte, c.elemSize)...)
	return idx
}

// Grow appends n zeroed elements and returns the index of the first.
func (c *column) Grow(n int) int {
	first := c.Len()
	c.data = append(c.data, make([]byte, c.elemSize*n)...)
	return first
}

// At returns the byte slice backing element i. The returned slice
// aliases the column's backing array and is invalidated by any
// subsequent Append/Grow/SwapRemove call that reallocates.
func (c *column) At(i int) []byte {
	off := i * c.elemSize
	return c.data[off : off+c.elemSize : off+c.elemSize]
}

// Set overwrites element i in place with v, which must be exactly
// elemSize bytes.
func (c *column) Set(i int, v []byte) {
	copy(c.At(i), v)
}

// SwapRemove deletes element i by moving the last element into its
// place (unless i is already last), then shrinking by one. It reports
// the index that was moved from (always Len()-1 before the shrink) and
// whether a move actually happened (false when i was already last).
func (c *column) SwapRemove(i int) (movedFrom int, moved bool) {
	last := c.Len() - 1
	movedFrom = last
	if i != last {
		copy(c.At(i), c.At(last))
		moved = true
	}
	c.data = c.data[:last*c.elemSize]
	return movedFrom, moved
}
