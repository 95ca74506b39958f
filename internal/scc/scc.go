// Package scc computes strongly connected components over a dependency
// graph using an iterative path-based (Gabow) algorithm. Real dependency
// graphs can be thousands of units deep, so traversal uses explicit stacks
// rather than call-stack recursion.
package scc

// Graph is the traversal surface the engine consumes: traversal roots plus
// on-demand neighbor expansion. NeighborsOf must return neighbors in the
// same order on every call within one computation; component membership
// order and identity tie-breaking depend on it.
type Graph[N comparable] interface {
	// VerticesFrom returns the initial vertices for a traversal rooted at
	// root. Further vertices are discovered through NeighborsOf.
	VerticesFrom(root N) []N

	// NeighborsOf returns the targets of a vertex's outgoing edges, in
	// edge order.
	NeighborsOf(n N) []N
}

// Components returns the strongly connected components of the subgraph
// reachable from root, in the order the components close. The closing order
// is reverse topological: a component closes only after every component it
// depends on has closed. Every returned component is non-empty, and its
// members appear in discovery order.
//
// Total work is linear in the vertices and edges reachable from root.
func Components[N comparable](g Graph[N], root N) [][]N {
	t := &traversal[N]{
		g:      g,
		pre:    make(map[N]int),
		closed: make(map[N]bool),
	}
	for _, v := range g.VerticesFrom(root) {
		if _, seen := t.pre[v]; !seen {
			t.visit(v)
		}
	}
	return t.out
}

// frame is one suspended vertex on the explicit work stack: the vertex, its
// expanded neighbor list, and the index of the next neighbor to examine.
type frame[N comparable] struct {
	node      N
	neighbors []N
	next      int
}

type traversal[N comparable] struct {
	g Graph[N]

	counter int       // next preorder number
	pre     map[N]int // preorder number, assigned at first visit
	closed  map[N]bool

	path     []N        // vertices on the active path, in discovery order
	boundary []int      // indexes into path marking candidate component roots
	frames   []frame[N] // explicit call stack of pending neighbor iterations

	out [][]N
}

// open assigns v its preorder number, pushes it onto the path and boundary
// stacks, and suspends it on the frame stack.
func (t *traversal[N]) open(v N) {
	t.pre[v] = t.counter
	t.counter++
	t.boundary = append(t.boundary, len(t.path))
	t.path = append(t.path, v)
	t.frames = append(t.frames, frame[N]{node: v, neighbors: t.g.NeighborsOf(v)})
}

func (t *traversal[N]) visit(root N) {
	t.open(root)

	for len(t.frames) > 0 {
		f := &t.frames[len(t.frames)-1]

		if f.next < len(f.neighbors) {
			w := f.neighbors[f.next]
			f.next++

			if _, seen := t.pre[w]; !seen {
				t.open(w)
				continue
			}
			if t.closed[w] {
				// Belongs to an already-closed component.
				continue
			}
			// Back edge to a vertex still on the active path: collapse
			// every boundary opened after w into w's component.
			for t.pre[t.path[t.boundary[len(t.boundary)-1]]] > t.pre[w] {
				t.boundary = t.boundary[:len(t.boundary)-1]
			}
			continue
		}

		// Neighbors exhausted: v leaves the frame stack, and if it is the
		// current boundary top it closes a component consisting of every
		// vertex above it on the path, itself included.
		v := f.node
		t.frames = t.frames[:len(t.frames)-1]

		top := t.boundary[len(t.boundary)-1]
		if t.path[top] != v {
			continue
		}
		t.boundary = t.boundary[:len(t.boundary)-1]

		comp := make([]N, len(t.path)-top)
		copy(comp, t.path[top:])
		t.path = t.path[:top]
		for _, m := range comp {
			t.closed[m] = true
		}
		t.out = append(t.out, comp)
	}
}
