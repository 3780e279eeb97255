// Package keymap routes input codes to named handlers.
//
// Bindings are tested in registration order and every binding whose key set
// contains the code fires; a single dispatch is not short-circuited by the
// first match. Codes matching nothing are ignored.
package keymap

import "github.com/lixenwraith/vi-edit/terminal"

// Handler receives the code that triggered it
type Handler func(key terminal.Key)

// Binding associates a name and a set of key codes with a handler
type Binding struct {
	Name    string
	Keys    []terminal.Key
	Handler Handler

	set map[terminal.Key]struct{}
}

// Has reports whether the binding's key set contains key
func (b *Binding) Has(key terminal.Key) bool {
	_, ok := b.set[key]
	return ok
}

// Dispatcher is an ordered binding table
type Dispatcher struct {
	bindings []*Binding
	lastKey  terminal.Key
}

// New creates an empty dispatcher
func New() *Dispatcher {
	return &Dispatcher{lastKey: terminal.KeyNone}
}

// Register appends a binding, later registrations are tested after earlier ones
func (d *Dispatcher) Register(name string, keys []terminal.Key, h Handler) {
	b := &Binding{
		Name:    name,
		Keys:    append([]terminal.Key(nil), keys...),
		Handler: h,
		set:     make(map[terminal.Key]struct{}, len(keys)),
	}
	for _, k := range keys {
		b.set[k] = struct{}{}
	}
	d.bindings = append(d.bindings, b)
}

// Dispatch fires every binding containing key and returns how many fired
// KeyNone is the no-input sentinel and never fires
func (d *Dispatcher) Dispatch(key terminal.Key) int {
	if key == terminal.KeyNone {
		return 0
	}
	fired := 0
	// Snapshot so handlers that register or clear do not disturb this pass
	snapshot := append([]*Binding(nil), d.bindings...)
	for _, b := range snapshot {
		if !b.Has(key) {
			continue
		}
		if b.Handler != nil {
			b.Handler(key)
		}
		d.lastKey = key
		fired++
	}
	return fired
}

// Unregister removes all bindings with the given name and returns how many were removed
func (d *Dispatcher) Unregister(name string) int {
	kept := d.bindings[:0]
	removed := 0
	for _, b := range d.bindings {
		if b.Name == name {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(d.bindings); i++ {
		d.bindings[i] = nil
	}
	d.bindings = kept
	return removed
}

// Clear removes all bindings
func (d *Dispatcher) Clear() {
	d.bindings = nil
}

// Len returns the number of registered bindings
func (d *Dispatcher) Len() int {
	return len(d.bindings)
}

// LastKey returns the most recent code that fired a binding, KeyNone if none has
func (d *Dispatcher) LastKey() terminal.Key {
	return d.lastKey
}

// Bindings returns a copy of the binding table in registration order
func (d *Dispatcher) Bindings() []Binding {
	out := make([]Binding, len(d.bindings))
	for i, b := range d.bindings {
		out[i] = *b
	}
	return out
}

// Names returns binding names in registration order
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.bindings))
	for i, b := range d.bindings {
		names[i] = b.Name
	}
	return names
}
