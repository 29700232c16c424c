package root

import (
	"github.com/google/uuid"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
	"github.com/openmgc/mgc_core/internal/pkg/msg"
	"github.com/openmgc/mgc_core/internal/pkg/poller"
)

// System is the root node of the microgrid graph service. It owns the
// component graph and the poller refreshing it, and republishes the
// poller's events to attached handlers.
type System struct {
	graph  *graph.ComponentGraph
	poller *poller.Poller
}

// NewSystem assembles the root system from its parts.
func NewSystem(g *graph.ComponentGraph, p *poller.Poller) (System, error) {
	return System{graph: g, poller: p}, nil
}

// Graph returns the component graph as a read-only query surface.
func (s *System) Graph() *graph.ComponentGraph {
	return s.graph
}

// Subscribe attaches a handler to the system's event stream.
func (s *System) Subscribe(pid uuid.UUID, topic msg.Topic) (<-chan msg.Msg, error) {
	return s.poller.Subscribe(pid, topic)
}

// Unsubscribe detaches a handler from the system's event stream.
func (s *System) Unsubscribe(pid uuid.UUID) {
	s.poller.Unsubscribe(pid)
}
