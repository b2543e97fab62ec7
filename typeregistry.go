package ecscore

import (
	"sort"
	"strconv"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// typeRegistry interns canonically-ordered, duplicate-free component
// sets behind a stable TypeID, and provides the set algebra (merge,
// contains, index_of) every structural mutation relies on.
//
// Alongside the authoritative sorted component list, the registry
// maintains a mask.Mask per TypeID as a fast containment path: each
// distinct ComponentID is assigned a bit (up to mask.Mask's capacity).
// When every component involved in a containment check has an
// assigned bit, the check is answered by a handful of word
// comparisons instead of a merge-walk. If the component population
// ever exceeds the mask's capacity, the fast path is simply skipped
// for types that reference an unassigned component and the exact
// sorted-list algorithm (still O(|sub|+|super|)) is used instead, so
// correctness never depends on staying under the bit budget.
type typeRegistry struct {
	lists    [][]ComponentID
	masks    []mask.Mask
	maskOK   []bool
	byKey    map[string]TypeID
	bitOf    map[ComponentID]uint32
	nextBit  uint32
	nextID   TypeID
	overflow bool
}

func newTypeRegistry() *typeRegistry {
	r := &typeRegistry{
		byKey: make(map[string]TypeID),
		bitOf: make(map[ComponentID]uint32),
	}
	// TypeID 0 is the permanently interned empty type.
	r.lists = append(r.lists, nil)
	r.masks = append(r.masks, mask.Mask{})
	r.maskOK = append(r.maskOK, true)
	r.byKey[""] = 0
	r.nextID = 1
	return r
}

func keyFor(sorted []ComponentID) string {
	if len(sorted) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(c), 36))
	}
	return b.String()
}

func dedupeSorted(components []ComponentID) []ComponentID {
	if len(components) == 0 {
		return nil
	}
	cp := append([]ComponentID(nil), components...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:1]
	for _, c := range cp[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// maskBitCapacity is the number of distinct components the mask.Mask
// fast path can track before Contains falls back to the exact
// sorted-list algorithm for any type touching an unassigned component.
const maskBitCapacity = 128

// bitFor returns (and lazily assigns) the mask bit for a component,
// or ok=false once the mask's bit budget is exhausted.
func (r *typeRegistry) bitFor(c ComponentID) (uint32, bool) {
	if b, ok := r.bitOf[c]; ok {
		return b, true
	}
	if r.overflow || r.nextBit >= maskBitCapacity {
		r.overflow = true
		return 0, false
	}
	bit := r.nextBit
	r.nextBit++
	r.bitOf[c] = bit
	return bit, true
}

func (r *typeRegistry) buildMask(sorted []ComponentID) (mask.Mask, bool) {
	var m mask.Mask
	for _, c := range sorted {
		bit, ok := r.bitFor(c)
		if !ok {
			return mask.Mask{}, false
		}
		m.Mark(bit)
	}
	return m, true
}

// Intern interns components (sorted, de-duplicated) and returns its
// TypeID, minting a new one if this exact set hasn't been seen before.
func (r *typeRegistry) Intern(components []ComponentID) TypeID {
	sorted := dedupeSorted(components)
	key := keyFor(sorted)
	if id, ok := r.byKey[key]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.lists = append(r.lists, sorted)
	m, ok := r.buildMask(sorted)
	r.masks = append(r.masks, m)
	r.maskOK = append(r.maskOK, ok)
	r.byKey[key] = id
	return id
}

// Components returns the canonical sorted component list for t. The
// returned slice must not be mutated by callers.
func (r *typeRegistry) Components(t TypeID) []ComponentID {
	if int(t) >= len(r.lists) {
		abort(UnknownTypeIDError{Type: t})
	}
	return r.lists[t]
}

// Merge computes the union of base with toAdd, then the difference
// with toRemove, and re-interns the canonical result. Either argument
// may be the nil (0) TypeID, treated as empty.
func (r *typeRegistry) Merge(base, toAdd, toRemove TypeID) TypeID {
	result := unionSorted(r.Components(base), r.Components(toAdd))
	result = differenceSorted(result, r.Components(toRemove))
	return r.Intern(result)
}

// IndexOf returns the 0-based column position of component within t's
// canonical list, or (-1, false) if t doesn't carry it.
func (r *typeRegistry) IndexOf(t TypeID, component ComponentID) (int, bool) {
	list := r.Components(t)
	i := sort.Search(len(list), func(i int) bool { return list[i] >= component })
	if i < len(list) && list[i] == component {
		return i, true
	}
	return -1, false
}

// Contains reports whether super's effective component set satisfies
// sub: every component of sub when matchAll is true, at least one
// when matchAll is false. Callers that also want to honor the prefab
// chain should first widen super via World.effectiveType.
func (r *typeRegistry) Contains(super, sub TypeID, matchAll bool) bool {
	if r.maskOK[super] && r.maskOK[sub] {
		if matchAll {
			return r.masks[super].ContainsAll(r.masks[sub])
		}
		return r.masks[super].ContainsAny(r.masks[sub])
	}
	subList := r.Components(sub)
	if len(subList) == 0 {
		return matchAll
	}
	for _, c := range subList {
		_, ok := r.IndexOf(super, c)
		if matchAll && !ok {
			return false
		}
		if !matchAll && ok {
			return true
		}
	}
	return matchAll
}

func unionSorted(a, b []ComponentID) []ComponentID {
	if len(a) == 0 {
		return append([]ComponentID(nil), b...)
	}
	if len(b) == 0 {
		return append([]ComponentID(nil), a...)
	}
	out := make([]ComponentID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func differenceSorted(a, remove []ComponentID) []ComponentID {
	if len(remove) == 0 {
		return a
	}
	out := make([]ComponentID, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(remove) {
		switch {
		case a[i] == remove[j]:
			i++
			j++
		case a[i] < remove[j]:
			out = append(out, a[i])
			i++
		default:
			j++
		}
	}
	out = append(out, a[i:]...)
	return out
}
