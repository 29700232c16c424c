package graph

import (
	"sort"

	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// validate checks that the snapshot holds valid microgrid data. The checks
// run in sequence and the first failure aborts with an InvalidGraphError
// naming the offending components.
func (s *snapshot) validate() error {
	if err := s.validateGraph(); err != nil {
		return err
	}
	if err := s.validateGraphRoot(); err != nil {
		return err
	}
	if err := s.validateGridEndpoint(); err != nil {
		return err
	}
	if err := s.validateIntermediaryComponents(); err != nil {
		return err
	}
	return s.validateLeafComponents()
}

func (s *snapshot) validateGraph() error {
	if len(s.nodes)+len(s.undefined) == 0 {
		return invalidGraph("no components in graph")
	}

	if s.numConnections() == 0 {
		return invalidGraph("no connections in component graph")
	}

	if !s.isAcyclic() {
		return invalidGraph("component graph is not a tree")
	}

	if len(s.undefined) > 0 {
		ids := make([]int, 0, len(s.undefined))
		for id := range s.undefined {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		return invalidGraph("missing definition for graph components: %v", ids)
	}

	unconnected := make([]component.Component, 0)
	for id, c := range s.nodes {
		if s.inDegree(id)+s.outDegree(id) == 0 {
			unconnected = append(unconnected, c)
		}
	}
	if len(unconnected) > 0 {
		return invalidGraph("every component must have at least one connection, unconnected: %v", sortedIDs(unconnected))
	}

	return nil
}

func (s *snapshot) validateGraphRoot() error {
	validRoots := make([]component.Component, 0)
	for id, c := range s.nodes {
		if s.inDegree(id) > 0 {
			continue
		}
		if c.Category == component.None || c.Category == component.Grid {
			validRoots = append(validRoots, c)
		}
	}

	if len(validRoots) == 0 {
		return invalidGraph("no valid root nodes of component graph")
	}

	if len(validRoots) > 1 {
		return invalidGraph("multiple potential root nodes: %v", sortedIDs(validRoots))
	}

	root := validRoots[0]
	if s.outDegree(root.ID) == 0 {
		return invalidGraph("graph root %v has no successors", root)
	}

	return nil
}

func (s *snapshot) validateGridEndpoint() error {
	grid := s.componentsByCategory(component.Grid)

	// A graph without a grid endpoint is allowed, the root checks still hold.
	if len(grid) == 0 {
		return nil
	}

	if len(grid) > 1 {
		return invalidGraph("multiple grid endpoints in component graph: %v", sortedIDs(grid))
	}

	gridID := grid[0].ID
	if s.inDegree(gridID) > 0 {
		return invalidGraph("grid endpoint %d has graph predecessors: %v", gridID, sortedIDs(s.predecessors(gridID)))
	}

	if s.outDegree(gridID) == 0 {
		return invalidGraph("grid endpoint %d has no graph successors", gridID)
	}

	return nil
}

// validateIntermediaryComponents checks components that must sit between a
// source and a sink, i.e. inverters cannot themselves be sources.
func (s *snapshot) validateIntermediaryComponents() error {
	missingPredecessors := make([]component.Component, 0)
	for _, c := range s.componentsByCategory(component.Inverter) {
		if s.inDegree(c.ID) == 0 {
			missingPredecessors = append(missingPredecessors, c)
		}
	}
	if len(missingPredecessors) > 0 {
		return invalidGraph("intermediary components without graph predecessors: %v", sortedIDs(missingPredecessors))
	}
	return nil
}

// validateLeafComponents checks components that terminate the graph.
// Batteries and EV chargers only ever have incoming connections.
func (s *snapshot) validateLeafComponents() error {
	leaves := append(
		s.componentsByCategory(component.Battery),
		s.componentsByCategory(component.EVCharger)...,
	)

	missingPredecessors := make([]component.Component, 0)
	withSuccessors := make([]component.Component, 0)
	for _, c := range leaves {
		if s.inDegree(c.ID) == 0 {
			missingPredecessors = append(missingPredecessors, c)
		}
		if s.outDegree(c.ID) > 0 {
			withSuccessors = append(withSuccessors, c)
		}
	}

	if len(missingPredecessors) > 0 {
		return invalidGraph("leaf components without graph predecessors: %v", sortedIDs(missingPredecessors))
	}
	if len(withSuccessors) > 0 {
		return invalidGraph("leaf components with graph successors: %v", sortedIDs(withSuccessors))
	}

	return nil
}
