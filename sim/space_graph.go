// Implements TransportSpace over a weighted undirected graph of int64
// vertex IDs, using gonum.org/v1/gonum/graph/simple +
// gonum.org/v1/gonum/graph/path for shortest paths. Dijkstra results are
// cached per source vertex in a bounded LRU
// (github.com/hashicorp/golang-lru/v2), since repeatedly computing a
// single-source shortest-path tree is the dominant cost of a graph-backed
// dispatcher.

package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// GraphEdge is one weighted undirected edge used to build a GraphSpace.
type GraphEdge struct {
	U, V   int64
	Weight float64
}

// GraphSpace is a TransportSpace over int64 graph-vertex locations.
// Safe for concurrent use: the Dijkstra cache is guarded by a mutex, which
// is required when a fleet loop fans a request out across vehicles in
// parallel.
type GraphSpace struct {
	g        *simple.WeightedUndirectedGraph
	velocity float64
	vertices []int64

	mu    sync.Mutex
	cache *lru.Cache[int64, path.Shortest]
}

// NewGraphSpace builds a GraphSpace from a weighted edge list. cacheSize
// bounds the number of per-source Dijkstra trees kept resident; a sensible
// default is the vertex count.
func NewGraphSpace(edges []GraphEdge, velocity float64, cacheSize int) (*GraphSpace, error) {
	if velocity <= 0 {
		return nil, fmt.Errorf("graph space: velocity must be > 0, got %v", velocity)
	}
	if cacheSize <= 0 {
		return nil, fmt.Errorf("graph space: cacheSize must be > 0, got %d", cacheSize)
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	seen := map[int64]bool{}
	for _, e := range edges {
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(e.U), T: simple.Node(e.V), W: e.Weight})
		seen[e.U] = true
		seen[e.V] = true
	}

	vertices := make([]int64, 0, len(seen))
	for v := range seen {
		vertices = append(vertices, v)
	}

	cache, err := lru.New[int64, path.Shortest](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("graph space: building Dijkstra cache: %w", err)
	}

	return &GraphSpace{g: g, velocity: velocity, vertices: vertices, cache: cache}, nil
}

// shortestFrom returns the cached (or freshly computed) shortest-path tree
// rooted at u.
func (gs *GraphSpace) shortestFrom(u int64) path.Shortest {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if sp, ok := gs.cache.Get(u); ok {
		return sp
	}
	sp := path.DijkstraFrom(simple.Node(u), gs.g)
	gs.cache.Add(u, sp)
	return sp
}

func (gs *GraphSpace) D(u, v int64) float64 {
	if u == v {
		return 0
	}
	_, weight := gs.shortestFrom(u).To(v)
	return weight
}

func (gs *GraphSpace) T(u, v int64) float64 {
	return gs.D(u, v) / gs.velocity
}

// pathDistances returns the path from u to v (inclusive) and, for each
// node on it, the remaining distance to v.
func (gs *GraphSpace) pathDistances(u, v int64) (nodes []int64, distFromV []float64) {
	p, total := gs.shortestFrom(u).To(v)
	nodes = make([]int64, len(p))
	for i, n := range p {
		nodes[i] = n.ID()
	}
	distFromV = make([]float64, len(nodes))
	remaining := total
	for i := 0; i < len(nodes); i++ {
		distFromV[i] = remaining
		if i+1 < len(nodes) {
			remaining -= gs.D(nodes[i], nodes[i+1])
		}
	}
	return nodes, distFromV
}

// interpByDistance is the distance-denominated core shared by InterpDist
// and InterpTime (InterpTime converts time to distance via velocity, since
// travel time is distance/velocity uniformly across every edge).
func (gs *GraphSpace) interpByDistance(u, v int64, distRemaining float64) (int64, float64) {
	if distRemaining <= 0 {
		return v, 0
	}
	nodes, distFromV := gs.pathDistances(u, v)
	if len(nodes) == 0 {
		return v, 0
	}
	if distRemaining >= distFromV[0] {
		return nodes[0], distRemaining - distFromV[0]
	}
	// Scan from u forward to v for the nearest not-yet-reached node: the
	// largest distFromV[i] that is still <= distRemaining.
	best := len(nodes) - 1
	for i := 0; i < len(nodes); i++ {
		if distFromV[i] <= distRemaining {
			best = i
			break
		}
	}
	return nodes[best], distRemaining - distFromV[best]
}

func (gs *GraphSpace) InterpTime(u, v int64, timeToDest float64) (int64, float64) {
	next, residualDist := gs.interpByDistance(u, v, timeToDest*gs.velocity)
	return next, residualDist / gs.velocity
}

func (gs *GraphSpace) InterpDist(u, v int64, distToDest float64) (int64, float64) {
	return gs.interpByDistance(u, v, distToDest)
}

// RandomPoint draws a uniform vertex from the graph.
func (gs *GraphSpace) RandomPoint(rng *rand.Rand) int64 {
	return gs.vertices[rng.Intn(len(gs.vertices))]
}
