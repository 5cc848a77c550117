package connector

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/codedstructure/svgdx/svg"
)

// gridPoint is a node in the routing grid: the union of every obstacle's
// edge coordinates plus the start/end points, on each axis - the
// standard "connection points" reduction that keeps the search space
// small without a dense raster.
type gridPoint struct{ x, y float32 }

// RouteElbow finds an orthogonal (horizontal/vertical segments only)
// path from start to end that avoids the given obstacle boxes, using
// Dijkstra over the grid formed by each obstacle's edge coordinates.
// margin inflates every obstacle before routing, keeping the path from
// grazing an edge.
func RouteElbow(start, end [2]float32, obstacles []svg.BoundingBox, margin float32) (string, error) {
	xs := map[float32]bool{start[0]: true, end[0]: true}
	ys := map[float32]bool{start[1]: true, end[1]: true}
	inflated := make([]svg.BoundingBox, len(obstacles))
	for i, o := range obstacles {
		inflated[i] = o.ExpandAbs(margin)
		xs[inflated[i].X1] = true
		xs[inflated[i].X2] = true
		ys[inflated[i].Y1] = true
		ys[inflated[i].Y2] = true
	}

	var xsList, ysList []float32
	for x := range xs {
		xsList = append(xsList, x)
	}
	for y := range ys {
		ysList = append(ysList, y)
	}
	sortFloat32s(xsList)
	sortFloat32s(ysList)

	var nodes []gridPoint
	blocked := func(p gridPoint) bool {
		for _, o := range inflated {
			if p.x > o.X1 && p.x < o.X2 && p.y > o.Y1 && p.y < o.Y2 {
				return true
			}
		}
		return false
	}
	for _, x := range xsList {
		for _, y := range ysList {
			p := gridPoint{x, y}
			if !blocked(p) {
				nodes = append(nodes, p)
			}
		}
	}

	startIdx, endIdx := -1, -1
	for i, n := range nodes {
		if n.x == start[0] && n.y == start[1] {
			startIdx = i
		}
		if n.x == end[0] && n.y == end[1] {
			endIdx = i
		}
	}
	if startIdx < 0 || endIdx < 0 {
		return "", fmt.Errorf("connector: start or end point is inside an obstacle")
	}

	path, err := dijkstra(nodes, startIdx, endIdx, inflated)
	if err != nil {
		return "", err
	}
	return renderElbowPath(path), nil
}

func sortFloat32s(xs []float32) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// segmentClear reports whether the axis-aligned segment a-b passes
// through no inflated obstacle's interior.
func segmentClear(a, b gridPoint, obstacles []svg.BoundingBox) bool {
	lo, hi := a, b
	const steps = 8
	for i := 0; i <= steps; i++ {
		t := float32(i) / steps
		p := gridPoint{lo.x + (hi.x-lo.x)*t, lo.y + (hi.y-lo.y)*t}
		for _, o := range obstacles {
			if p.x > o.X1 && p.x < o.X2 && p.y > o.Y1 && p.y < o.Y2 {
				return false
			}
		}
	}
	return true
}

type pqItem struct {
	node int
	cost float64
}
type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra finds the shortest orthogonal path (axis-aligned edges only,
// cost = Manhattan length) between nodes[src] and nodes[dst].
func dijkstra(nodes []gridPoint, src, dst int, obstacles []svg.BoundingBox) ([]gridPoint, error) {
	dist := make([]float64, len(nodes))
	prev := make([]int, len(nodes))
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0
	pq := &priorityQueue{{node: src, cost: 0}}
	heap.Init(pq)
	visited := make([]bool, len(nodes))

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == dst {
			break
		}
		for j, n := range nodes {
			if visited[j] || j == cur.node {
				continue
			}
			a, b := nodes[cur.node], n
			if a.x != b.x && a.y != b.y {
				continue // only axis-aligned edges exist in this grid
			}
			if !segmentClear(a, b, obstacles) {
				continue
			}
			cost := dist[cur.node] + manhattan(a, b)
			if cost < dist[j] {
				dist[j] = cost
				prev[j] = cur.node
				heap.Push(pq, pqItem{node: j, cost: cost})
			}
		}
	}
	if math.IsInf(dist[dst], 1) {
		return nil, fmt.Errorf("connector: no obstacle-free orthogonal route found")
	}
	var path []gridPoint
	for at := dst; at != -1; at = prev[at] {
		path = append([]gridPoint{nodes[at]}, path...)
		if at == src {
			break
		}
	}
	return path, nil
}

func manhattan(a, b gridPoint) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}

// renderElbowPath collapses collinear runs in the node path (the search
// can pass through several grid lines along one straight segment) and
// emits the resulting path "d" string.
func renderElbowPath(path []gridPoint) string {
	if len(path) == 0 {
		return ""
	}
	simplified := []gridPoint{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := path[i-1], path[i], path[i+1]
		if (prev.x == cur.x && cur.x == next.x) || (prev.y == cur.y && cur.y == next.y) {
			continue
		}
		simplified = append(simplified, cur)
	}
	simplified = append(simplified, path[len(path)-1])

	d := fmt.Sprintf("M%s,%s", svg.Fstr(simplified[0].x), svg.Fstr(simplified[0].y))
	for _, p := range simplified[1:] {
		d += fmt.Sprintf(" L%s,%s", svg.Fstr(p.x), svg.Fstr(p.y))
	}
	return d
}
