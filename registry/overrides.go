package registry

type replacementKind int

const (
	replaceConstructor replacementKind = iota
	replaceInstance
)

type replacement struct {
	kind        replacementKind
	constructor interface{}
	instance    interface{}
}

// Overrides maps service keys to replacement providers. Registering the
// same key twice overwrites the earlier entry (last write wins), like a
// plain map assignment.
type Overrides struct {
	entries map[string]replacement
}

// NewOverrides creates an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{entries: make(map[string]replacement)}
}

// UseConstructor replaces the binding for key with a constructor. The
// original binding's scope is preserved during reconciliation.
func (o *Overrides) UseConstructor(key string, constructor interface{}) {
	o.entries[key] = replacement{kind: replaceConstructor, constructor: constructor}
}

// UseInstance replaces the binding for key with a fixed instance. The
// reconciled binding is always a singleton.
func (o *Overrides) UseInstance(key string, instance interface{}) {
	o.entries[key] = replacement{kind: replaceInstance, instance: instance}
}

// Len returns the number of override entries.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Keys returns the overridden service keys in unspecified order.
func (o *Overrides) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	return keys
}
