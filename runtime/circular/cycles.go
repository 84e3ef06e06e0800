// Package circular finds cycles in the implicit graph induced by a set of
// $ref edges: nodes are never pre-materialized, only a path-keyed adjacency
// map built on demand from the edges themselves.
package circular

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/devcmd/runtime/sketch"
)

const pathKeySep = "\x1d" // non-printable separator, unlikely in real data

// pathKey builds a stable string key for a JsonPath, tagging each segment
// by kind so a string segment "0" never collides with index segment 0.
func pathKey(p sketch.JsonPath) string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteString(pathKeySep)
		}
		if seg.IsIndex {
			b.WriteString("i:")
			b.WriteString(strconv.Itoa(seg.Index))
		} else {
			b.WriteString("s:")
			b.WriteString(seg.Str)
		}
	}
	return b.String()
}

// nodeKey maps an edge endpoint to the graph node it identifies. A From
// path ends in a trailing "$ref" segment naming the pointer itself, not the
// object that holds it; stripping that segment before keying makes an
// object's plain path the node identity on both ends of an edge, so a To
// pointer resolving into that object lands on the same node a later $ref
// found there departs from.
func nodeKey(p sketch.JsonPath) string {
	if n := len(p); n > 0 && !p[n-1].IsIndex && p[n-1].Str == "$ref" {
		p = p[:n-1]
	}
	return pathKey(p)
}

type adjacency struct {
	edgeIdx int
	toKey   string
}

// DetectRefCycles runs DFS over the graph induced by edges and returns
// every cycle found, each as the ordered list of RefEdges that compose it.
// A DFS is started from each edge's source node, in edge order; the visited
// set is shared across starts, so a node already expanded by an earlier
// start is not expanded again. The cycles found across all starts are
// returned together; callers treat the result as a flat edge list.
func DetectRefCycles(edges []sketch.RefEdge) [][]sketch.RefEdge {
	graph := make(map[string][]adjacency)
	for idx, e := range edges {
		fromKey := nodeKey(e.From)
		toKey := nodeKey(e.To)
		graph[fromKey] = append(graph[fromKey], adjacency{edgeIdx: idx, toKey: toKey})
	}

	var allCycles [][]sketch.RefEdge
	visitedNodes := make(map[string]bool)

	for _, e := range edges {
		startKey := nodeKey(e.From)
		var stack []int
		pathNodes := make(map[string]bool)
		dfs(startKey, graph, visitedNodes, &stack, pathNodes, edges, &allCycles)
	}
	return allCycles
}

func dfs(
	current string,
	graph map[string][]adjacency,
	visitedNodes map[string]bool,
	stack *[]int,
	pathNodes map[string]bool,
	edges []sketch.RefEdge,
	allCycles *[][]sketch.RefEdge,
) {
	if pathNodes[current] {
		for pos, edgeIdx := range *stack {
			if nodeKey(edges[edgeIdx].From) == current {
				cycle := make([]sketch.RefEdge, len((*stack)[pos:]))
				copy(cycle, edgesAt(edges, (*stack)[pos:]))
				*allCycles = append(*allCycles, cycle)
				break
			}
		}
		return
	}
	if visitedNodes[current] {
		return
	}

	visitedNodes[current] = true
	pathNodes[current] = true

	for _, adj := range graph[current] {
		*stack = append(*stack, adj.edgeIdx)
		dfs(adj.toKey, graph, visitedNodes, stack, pathNodes, edges, allCycles)
		*stack = (*stack)[:len(*stack)-1]
	}

	delete(pathNodes, current)
}

func edgesAt(edges []sketch.RefEdge, indices []int) []sketch.RefEdge {
	out := make([]sketch.RefEdge, len(indices))
	for i, idx := range indices {
		out[i] = edges[idx]
	}
	return out
}
