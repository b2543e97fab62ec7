package ecscore

// prefabRegistry holds the prefab relation: a mapping from TypeID to
// the prefab entity whose values are inherited by entities newly
// acquiring that type's components.
type prefabRegistry struct {
	byType map[TypeID]EntityID
}

func newPrefabRegistry() *prefabRegistry {
	return &prefabRegistry{byType: make(map[TypeID]EntityID)}
}

// Set establishes that entities committed to TypeID t inherit default
// values from prefab.
func (p *prefabRegistry) Set(t TypeID, prefab EntityID) {
	p.byType[t] = prefab
}

// Unset removes any prefab relation for t.
func (p *prefabRegistry) Unset(t TypeID) {
	delete(p.byType, t)
}

// entityOf returns the prefab entity directly related to t, if any.
func (p *prefabRegistry) entityOf(t TypeID) (EntityID, bool) {
	prefab, ok := p.byType[t]
	return prefab, ok
}
