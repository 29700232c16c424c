package graph

import (
	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// Builder is the mutable staging form of a component graph. A refresh
// assembles one from the incoming data and hands it to the correction hook,
// which may insert or remove components and connections to self-heal the
// topology before validation is retried. The live graph is never exposed
// this way.
type Builder struct {
	components  map[int]component.Component
	connections map[connectionKey]component.Connection
}

type connectionKey struct {
	start int
	end   int
}

// NewBuilder returns an empty staging graph.
func NewBuilder() *Builder {
	return &Builder{
		components:  make(map[int]component.Component),
		connections: make(map[connectionKey]component.Connection),
	}
}

// AddComponent inserts or replaces a component.
func (b *Builder) AddComponent(c component.Component) {
	b.components[c.ID] = c
}

// RemoveComponent deletes the component with the given id, if present.
func (b *Builder) RemoveComponent(id int) {
	delete(b.components, id)
}

// AddConnection inserts a connection. The graph is simple, a second
// connection with the same ordered (start, end) pair replaces the first.
func (b *Builder) AddConnection(c component.Connection) {
	b.connections[connectionKey{c.Start, c.End}] = c
}

// RemoveConnection deletes the connection identified by the ordered
// (start, end) pair, if present.
func (b *Builder) RemoveConnection(start int, end int) {
	delete(b.connections, connectionKey{start, end})
}

// Components returns the staged component set.
func (b *Builder) Components() []component.Component {
	all := make([]component.Component, 0, len(b.components))
	for _, c := range b.components {
		all = append(all, c)
	}
	return all
}

// Connections returns the staged connection set.
func (b *Builder) Connections() []component.Connection {
	all := make([]component.Connection, 0, len(b.connections))
	for _, c := range b.connections {
		all = append(all, c)
	}
	return all
}

// Validate runs the full validator battery against the staged data, so a
// correction hook can check its own work.
func (b *Builder) Validate() error {
	return b.snapshot().validate()
}

func (b *Builder) snapshot() *snapshot {
	snap := newSnapshot()
	for _, c := range b.components {
		snap.addComponent(c)
	}
	for _, c := range b.connections {
		snap.addConnection(c)
	}
	return snap
}
