package graph

import (
	"sort"

	"github.com/openmgc/mgc_core/internal/pkg/component"
)

// DFS searches depth first from start for components fulfilling the
// condition. Traversal stops descending through a node once it fulfills the
// condition, so the result holds the first matching component along every
// path out of start. The visited set prevents revisiting shared ancestors
// where branches of the graph merge; pass a fresh map to begin a search.
func (g *ComponentGraph) DFS(start component.Component, visited map[int]bool, condition func(component.Component) bool) []component.Component {
	return g.snapshot().dfs(start, visited, condition)
}

func (s *snapshot) dfs(current component.Component, visited map[int]bool, condition func(component.Component) bool) []component.Component {
	if visited[current.ID] {
		return nil
	}
	visited[current.ID] = true

	if condition(current) {
		return []component.Component{current}
	}

	found := make([]component.Component, 0)
	for _, successor := range s.successors(current.ID) {
		found = append(found, s.dfs(successor, visited, condition)...)
	}
	return found
}

// FindFirstDescendantComponent locates a component of rootCategory, then
// returns the immediate successor whose category matches the earliest entry
// in descendantCategories. Category list order sets the priority; ties
// among same-category successors break by ascending component id. If more
// than one component has the root category, an arbitrary one is used.
func (g *ComponentGraph) FindFirstDescendantComponent(rootCategory component.Category, descendantCategories []component.Category) (component.Component, error) {
	snap := g.snapshot()

	roots := snap.componentsByCategory(rootCategory)
	if len(roots) == 0 {
		return component.Component{}, notFound("root component not found for category %s", rootCategory)
	}
	root := roots[0]

	successors := snap.successors(root.ID)
	sort.Slice(successors, func(i, j int) bool {
		return successors[i].ID < successors[j].ID
	})

	for _, category := range descendantCategories {
		for _, succ := range successors {
			if succ.Category == category {
				return succ, nil
			}
		}
	}

	return component.Component{}, notFound("no successor of %v found in the descendant categories", root)
}
