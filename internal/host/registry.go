package host

import (
	"sync"

	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/pubsub"
)

// PanelEvent is the payload published when a panel registers or its
// visibility changes.
type PanelEvent struct {
	Name string
}

// Panel is a named top-level container in the host UI. Panels may be
// constructed long after the rest of the UI; consumers poll the
// registry or subscribe to its events.
type Panel struct {
	Name    string
	Root    Component
	visible bool
}

// Visible reports whether the panel is currently showing.
func (p *Panel) Visible() bool { return p.visible }

// Registry tracks named panels and broadcasts their lifecycle.
type Registry struct {
	mu     sync.RWMutex
	panels map[string]*Panel
	broker *pubsub.Broker[PanelEvent]
}

// NewRegistry creates an empty panel registry.
func NewRegistry() *Registry {
	return &Registry{
		panels: make(map[string]*Panel),
		broker: pubsub.NewBroker[PanelEvent](),
	}
}

// Register adds a panel under name and announces it. Registering an
// existing name replaces the panel (hosts rebuild panels on layout
// changes).
func (r *Registry) Register(name string, root Component) *Panel {
	r.mu.Lock()
	p := &Panel{Name: name, Root: root, visible: true}
	r.panels[name] = p
	r.mu.Unlock()

	log.Debug(log.CatHost, "panel registered", "name", name)
	r.broker.Publish(pubsub.RegisteredEvent, PanelEvent{Name: name})
	return p
}

// Show marks the panel visible and announces the change.
func (r *Registry) Show(name string) {
	r.mu.Lock()
	p, ok := r.panels[name]
	if ok {
		p.visible = true
	}
	r.mu.Unlock()

	if ok {
		r.broker.Publish(pubsub.ShownEvent, PanelEvent{Name: name})
	}
}

// Hide marks the panel invisible and announces the change.
func (r *Registry) Hide(name string) {
	r.mu.Lock()
	p, ok := r.panels[name]
	if ok {
		p.visible = false
	}
	r.mu.Unlock()

	if ok {
		r.broker.Publish(pubsub.HiddenEvent, PanelEvent{Name: name})
	}
}

// Lookup returns the named panel when it exists and is visible.
func (r *Registry) Lookup(name string) (*Panel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.panels[name]
	if !ok || !p.visible {
		return nil, false
	}
	return p, true
}

// Events returns the broker announcing panel lifecycle changes.
func (r *Registry) Events() *pubsub.Broker[PanelEvent] {
	return r.broker
}

// Close releases the registry's event broker.
func (r *Registry) Close() {
	r.broker.Close()
}
