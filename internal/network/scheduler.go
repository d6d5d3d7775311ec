package network

import (
	"sort"

	"github.com/basinsim/basinsim/internal/simerrors"
)

// Scheduler computes and holds the fixed execution order for a graph's
// strong-edge subgraph.
type Scheduler struct {
	graph *Graph
	order []string
}

// NewScheduler topologically sorts g's strong edges via Kahn's
// algorithm. If the strong-edge subgraph has a cycle, it reports the
// cycles findCycles detects via a *simerrors.CycleError.
func NewScheduler(g *Graph) (*Scheduler, error) {
	adjacency := make(map[string][]string)
	indegree := make(map[string]int)
	for name := range g.Components {
		indegree[name] = 0
	}
	for _, e := range g.StrongEdges() {
		adjacency[e.FromComponent] = append(adjacency[e.FromComponent], e.ToComponent)
		indegree[e.ToComponent]++
	}

	names := make([]string, 0, len(g.Components))
	for name := range g.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	var queue []string
	for _, n := range names {
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	var order []string
	for len(queue) > 0 {
		sort.Strings(queue)
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		next := append([]string(nil), adjacency[n]...)
		sort.Strings(next)
		for _, m := range next {
			indegree[m]--
			if indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) != len(g.Components) {
		return nil, &simerrors.CycleError{Cycles: findCycles(adjacency, names)}
	}

	return &Scheduler{graph: g, order: order}, nil
}

// Order returns the fixed component execution order: component names
// ordered such that every strong edge u -> v has order(u) < order(v).
func (s *Scheduler) Order() []string {
	return s.order
}

// findCycles runs a DFS from every unvisited node and reports one cycle
// for each back edge it meets (an edge closing back onto a node on the
// current recursion stack). Each node is expanded only once, so a cycle
// that is reached only through already-explored nodes is not reported:
// the result names at least one cycle, but not necessarily every simple
// cycle.
func findCycles(adjacency map[string][]string, names []string) [][]string {
	var cycles [][]string
	onStack := make(map[string]bool)
	visited := make(map[string]bool)
	var path []string

	var visit func(n string)
	visit = func(n string) {
		visited[n] = true
		onStack[n] = true
		path = append(path, n)

		next := append([]string(nil), adjacency[n]...)
		sort.Strings(next)
		for _, m := range next {
			if onStack[m] {
				cycles = append(cycles, cycleFrom(path, m))
				continue
			}
			if !visited[m] {
				visit(m)
			}
		}

		path = path[:len(path)-1]
		onStack[n] = false
	}

	for _, n := range names {
		if !visited[n] {
			visit(n)
		}
	}

	return cycles
}

// cycleFrom extracts the portion of path from its first occurrence of
// start to the end, closing the loop back to start.
func cycleFrom(path []string, start string) []string {
	for i, n := range path {
		if n == start {
			cycle := append([]string(nil), path[i:]...)
			return append(cycle, start)
		}
	}
	return append([]string(nil), start)
}
