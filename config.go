package ecscore

// Config holds global configuration for the ecscore package as a
// single package-level value.
var Config config = config{
	logger: NewDiscardLogger(),
}

type config struct {
	logger         Logger
	onTableCreated func(TypeID)
}

// SetLogger installs the structured logger used for structural events.
// The default is a discarding logger so library consumers opt in.
func (c *config) SetLogger(l Logger) {
	c.logger = l
}

// SetOnTableCreated installs a callback invoked whenever a new
// canonical table (archetype) is created. External schedulers can use
// this, together with ScheduleDirty, to know when their cached query
// matches need rebuilding.
func (c *config) SetOnTableCreated(fn func(TypeID)) {
	c.onTableCreated = fn
}
