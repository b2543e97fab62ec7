package ecscore

import "testing"

func TestTypeRegistryInternCanonicalizesOrderAndDuplicates(t *testing.T) {
	r := newTypeRegistry()
	a := r.Intern([]ComponentID{10, 20, 30})
	b := r.Intern([]ComponentID{30, 20, 10})
	c := r.Intern([]ComponentID{10, 10, 20, 30, 20})
	if a != b || b != c {
		t.Fatalf("Intern not canonical: a=%d b=%d c=%d", a, b, c)
	}
	if len(r.Components(a)) != 3 {
		t.Fatalf("Components(a) = %v, want 3 elements", r.Components(a))
	}
}

func TestTypeRegistryEmptyTypeIsZero(t *testing.T) {
	r := newTypeRegistry()
	if got := r.Intern(nil); got != 0 {
		t.Errorf("Intern(nil) = %d, want 0", got)
	}
	if len(r.Components(0)) != 0 {
		t.Errorf("Components(0) = %v, want empty", r.Components(0))
	}
}

func TestTypeRegistryMerge(t *testing.T) {
	r := newTypeRegistry()
	base := r.Intern([]ComponentID{1, 2})
	toAdd := r.Intern([]ComponentID{3})
	toRemove := r.Intern([]ComponentID{1})

	merged := r.Merge(base, toAdd, toRemove)
	got := r.Components(merged)
	want := []ComponentID{2, 3}
	if len(got) != len(want) {
		t.Fatalf("Merge result = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Merge result = %v, want %v", got, want)
		}
	}
}

func TestTypeRegistryIndexOf(t *testing.T) {
	r := newTypeRegistry()
	tid := r.Intern([]ComponentID{5, 15, 25})

	if idx, ok := r.IndexOf(tid, 15); !ok || idx != 1 {
		t.Errorf("IndexOf(15) = %d,%v want 1,true", idx, ok)
	}
	if _, ok := r.IndexOf(tid, 99); ok {
		t.Errorf("IndexOf(99) found, want not found")
	}
}

func TestTypeRegistryContainsMatchAllAndAny(t *testing.T) {
	r := newTypeRegistry()
	super := r.Intern([]ComponentID{1, 2, 3})
	subAll := r.Intern([]ComponentID{1, 2})
	subPartial := r.Intern([]ComponentID{2, 9})
	subNone := r.Intern([]ComponentID{9, 10})

	if !r.Contains(super, subAll, true) {
		t.Error("Contains(super, subAll, true) = false, want true")
	}
	if r.Contains(super, subPartial, true) {
		t.Error("Contains(super, subPartial, true) = true, want false")
	}
	if !r.Contains(super, subPartial, false) {
		t.Error("Contains(super, subPartial, false) = false, want true")
	}
	if r.Contains(super, subNone, false) {
		t.Error("Contains(super, subNone, false) = true, want false")
	}
}

func TestTypeRegistryContainsFallsBackPastMaskCapacity(t *testing.T) {
	r := newTypeRegistry()
	// Exhaust the mask bit budget so bitFor starts returning ok=false,
	// forcing every subsequent Contains to use the exact sorted-list path.
	components := make([]ComponentID, 0, maskBitCapacity+8)
	for i := 0; i < maskBitCapacity+8; i++ {
		components = append(components, ComponentID(i+1))
	}
	super := r.Intern(components)
	sub := r.Intern([]ComponentID{ComponentID(maskBitCapacity + 5)})

	if !r.Contains(super, sub, true) {
		t.Error("Contains fallback path returned false, want true")
	}
	if r.maskOK[super] {
		t.Error("maskOK[super] = true, want false once bit budget is exhausted")
	}
}
