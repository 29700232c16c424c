package graph

import (
	"sort"

	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// snapshot is one immutable picture of the component graph. It is built off
// to the side by a refresh and never mutated once it becomes current, so
// readers holding it are isolated from later refreshes.
type snapshot struct {
	nodes map[int]component.Component
	// ids referenced by a connection but missing from the component set.
	undefined map[int]bool
	out       map[int]map[int]component.Connection
	in        map[int]map[int]bool
}

func newSnapshot() *snapshot {
	return &snapshot{
		nodes:     make(map[int]component.Component),
		undefined: make(map[int]bool),
		out:       make(map[int]map[int]component.Connection),
		in:        make(map[int]map[int]bool),
	}
}

func (s *snapshot) addComponent(c component.Component) {
	s.nodes[c.ID] = c
	delete(s.undefined, c.ID)
}

func (s *snapshot) addConnection(c component.Connection) {
	for _, id := range []int{c.Start, c.End} {
		if _, defined := s.nodes[id]; !defined {
			s.undefined[id] = true
		}
	}
	if _, ok := s.out[c.Start]; !ok {
		s.out[c.Start] = make(map[int]component.Connection)
	}
	s.out[c.Start][c.End] = c
	if _, ok := s.in[c.End]; !ok {
		s.in[c.End] = make(map[int]bool)
	}
	s.in[c.End][c.Start] = true
}

func (s *snapshot) contains(id int) bool {
	_, ok := s.nodes[id]
	return ok || s.undefined[id]
}

func (s *snapshot) numConnections() int {
	n := 0
	for _, ends := range s.out {
		n += len(ends)
	}
	return n
}

func (s *snapshot) inDegree(id int) int {
	return len(s.in[id])
}

func (s *snapshot) outDegree(id int) int {
	return len(s.out[id])
}

func (s *snapshot) predecessors(id int) []component.Component {
	preds := make([]component.Component, 0, len(s.in[id]))
	for start := range s.in[id] {
		preds = append(preds, s.nodes[start])
	}
	return preds
}

func (s *snapshot) successors(id int) []component.Component {
	succs := make([]component.Component, 0, len(s.out[id]))
	for end := range s.out[id] {
		succs = append(succs, s.nodes[end])
	}
	return succs
}

func (s *snapshot) components() []component.Component {
	all := make([]component.Component, 0, len(s.nodes))
	for _, c := range s.nodes {
		all = append(all, c)
	}
	return all
}

func (s *snapshot) componentsByCategory(category component.Category) []component.Component {
	match := make([]component.Component, 0)
	for _, c := range s.nodes {
		if c.Category == category {
			match = append(match, c)
		}
	}
	return match
}

func (s *snapshot) connections() []component.Connection {
	all := make([]component.Connection, 0, s.numConnections())
	for _, ends := range s.out {
		for _, conn := range ends {
			all = append(all, conn)
		}
	}
	return all
}

// isAcyclic runs an iterative three-color depth first search over every
// node, including edge-only ids.
func (s *snapshot) isAcyclic() bool {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[int]int)

	var visit func(id int) bool
	visit = func(id int) bool {
		color[id] = grey
		for succ := range s.out[id] {
			switch color[succ] {
			case grey:
				return false
			case white:
				if !visit(succ) {
					return false
				}
			}
		}
		color[id] = black
		return true
	}

	for id := range s.nodes {
		if color[id] == white && !visit(id) {
			return false
		}
	}
	for id := range s.undefined {
		if color[id] == white && !visit(id) {
			return false
		}
	}
	return true
}

func sortedIDs(components []component.Component) []int {
	ids := make([]int, 0, len(components))
	for _, c := range components {
		ids = append(ids, c.ID)
	}
	sort.Ints(ids)
	return ids
}
