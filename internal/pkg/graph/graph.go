// Package graph holds a validated, queryable representation of how the
// microgrid's electrical components are wired together.
//
// The component graph is an approximate representation of the microgrid
// circuit, abstracted to the level needed for monitoring and control: which
// component measurements combine into grid power, which inverters sit in
// front of which batteries, which power flows come from green sources. It
// deliberately excludes hardware that does not shape the flow of power.
package graph

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// Source supplies topology data from the remote microgrid API. Both calls
// block until the remote responds or ctx is done.
type Source interface {
	Components(ctx context.Context) ([]component.Component, error)
	Connections(ctx context.Context) ([]component.Connection, error)
}

// CorrectionHook is given the staged graph of a failed refresh so it can
// repair the topology, e.g. by inferring a missing root. A returned error
// aborts the refresh.
type CorrectionHook func(*Builder) error

// ComponentGraph owns exactly one graph snapshot at a time. Refreshes build
// a candidate off to the side and swap it in atomically, so concurrent
// readers always observe a fully-old or fully-new graph, never a mix.
type ComponentGraph struct {
	mux  *sync.RWMutex
	pid  uuid.UUID
	snap *snapshot
}

// New returns an empty component graph. The empty graph is a valid
// degenerate state, queries succeed and return nothing.
func New() (*ComponentGraph, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return &ComponentGraph{
		mux:  &sync.RWMutex{},
		pid:  pid,
		snap: newSnapshot(),
	}, nil
}

// NewFrom returns a component graph populated and validated from the given
// components and connections.
func NewFrom(components []component.Component, connections []component.Connection) (*ComponentGraph, error) {
	if len(components) == 0 {
		return nil, invalidGraph("must provide components as well as connections")
	}
	if len(connections) == 0 {
		return nil, invalidGraph("must provide connections as well as components")
	}

	g, err := New()
	if err != nil {
		return nil, err
	}
	if err := g.RefreshFrom(components, connections, nil); err != nil {
		return nil, err
	}
	return g, nil
}

// PID is a getter for the graph PID.
func (g *ComponentGraph) PID() uuid.UUID {
	return g.pid
}

func (g *ComponentGraph) snapshot() *snapshot {
	g.mux.RLock()
	defer g.mux.RUnlock()
	return g.snap
}

// ComponentFilter selects components by id and/or category. A nil field
// leaves that dimension unfiltered.
type ComponentFilter struct {
	IDs        []int
	Categories []component.Category
}

// Components returns the components of the current graph matching the
// filter. No iteration order is guaranteed.
func (g *ComponentGraph) Components(filter ComponentFilter) []component.Component {
	snap := g.snapshot()

	var selection []component.Component
	if filter.IDs == nil {
		selection = snap.components()
	} else {
		selection = make([]component.Component, 0, len(filter.IDs))
		for _, id := range filter.IDs {
			if c, ok := snap.nodes[id]; ok {
				selection = append(selection, c)
			}
		}
	}

	if filter.Categories == nil {
		return selection
	}

	wanted := make(map[component.Category]bool, len(filter.Categories))
	for _, cat := range filter.Categories {
		wanted[cat] = true
	}
	match := make([]component.Component, 0, len(selection))
	for _, c := range selection {
		if wanted[c.Category] {
			match = append(match, c)
		}
	}
	return match
}

// ConnectionFilter selects connections by their start and/or end component
// ids. When both are set, a connection must leave one of Starts AND enter
// one of Ends to match.
type ConnectionFilter struct {
	Starts []int
	Ends   []int
}

// Connections returns the connections of the current graph matching the
// filter. No iteration order is guaranteed.
func (g *ComponentGraph) Connections(filter ConnectionFilter) []component.Connection {
	snap := g.snapshot()

	if filter.Starts == nil && filter.Ends == nil {
		return snap.connections()
	}

	var starts map[int]bool
	if filter.Starts != nil {
		starts = make(map[int]bool, len(filter.Starts))
		for _, id := range filter.Starts {
			starts[id] = true
		}
	}
	var ends map[int]bool
	if filter.Ends != nil {
		ends = make(map[int]bool, len(filter.Ends))
		for _, id := range filter.Ends {
			ends[id] = true
		}
	}

	match := make([]component.Connection, 0)
	for start, edges := range snap.out {
		if starts != nil && !starts[start] {
			continue
		}
		for end, conn := range edges {
			if ends != nil && !ends[end] {
				continue
			}
			match = append(match, conn)
		}
	}
	return match
}

// Predecessors returns the components with a connection into the specified
// component. Fails with a NotFoundError for an absent id.
func (g *ComponentGraph) Predecessors(componentID int) ([]component.Component, error) {
	snap := g.snapshot()
	if !snap.contains(componentID) {
		return nil, notFound("component %d not in graph, cannot get predecessors", componentID)
	}
	return snap.predecessors(componentID), nil
}

// Successors returns the components the specified component connects to.
// Fails with a NotFoundError for an absent id.
func (g *ComponentGraph) Successors(componentID int) ([]component.Component, error) {
	snap := g.snapshot()
	if !snap.contains(componentID) {
		return nil, notFound("component %d not in graph, cannot get successors", componentID)
	}
	return snap.successors(componentID), nil
}

// RefreshFrom replaces the graph wholesale with the provided components and
// connections. The new data is staged and validated off to the side; on any
// failure the previously current graph is left untouched. If correct is
// non-nil and the staged graph is invalid, the hook runs once against the
// staging builder and validation is retried.
func (g *ComponentGraph) RefreshFrom(components []component.Component, connections []component.Connection, correct CorrectionHook) error {
	for _, c := range components {
		if !c.IsValid() {
			return invalidGraph("invalid component in input: %v", c)
		}
	}
	for _, c := range connections {
		if !c.IsValid() {
			return invalidGraph("invalid connection in input: %v", c)
		}
	}

	builder := NewBuilder()
	for _, c := range components {
		builder.AddComponent(c)
	}
	for _, c := range connections {
		builder.AddConnection(c)
	}

	candidate := builder.snapshot()
	if err := candidate.validate(); err != nil {
		if correct == nil {
			return err
		}
		log.Printf("[ComponentGraph] Attempting to fix invalid component data: %v", err)
		if hookErr := correct(builder); hookErr != nil {
			log.Printf("[ComponentGraph] Failed to parse component graph: %v", hookErr)
			return invalidGraph("correction hook failed: %v", hookErr)
		}
		candidate = builder.snapshot()
		if err := candidate.validate(); err != nil {
			log.Printf("[ComponentGraph] Failed to parse component graph: %v", err)
			return err
		}
	}

	g.mux.Lock()
	g.snap = candidate
	g.mux.Unlock()
	return nil
}

// RefreshFromAPI fetches components and connections concurrently from the
// remote source and refreshes the graph from the results. The refresh is
// abandoned if either fetch fails.
func (g *ComponentGraph) RefreshFromAPI(ctx context.Context, source Source, correct CorrectionHook) error {
	componentCh := make(chan []component.Component, 1)
	connectionCh := make(chan []component.Connection, 1)
	errCh := make(chan error, 2)

	go func() {
		components, err := source.Components(ctx)
		if err != nil {
			errCh <- err
			return
		}
		componentCh <- components
	}()

	go func() {
		connections, err := source.Connections(ctx)
		if err != nil {
			errCh <- err
			return
		}
		connectionCh <- connections
	}()

	var components []component.Component
	var connections []component.Connection
	for i := 0; i < 2; i++ {
		select {
		case components = <-componentCh:
		case connections = <-connectionCh:
		case err := <-errCh:
			return err
		}
	}

	return g.RefreshFrom(components, connections, correct)
}
