package routingalgorithm

import (
	"context"
	"errors"
	"fmt"

	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/util"

	"go.uber.org/zap"
)

var (
	// ErrNoPath frontier habis sebelum sampai destination (graph tidak terhubung).
	ErrNoPath = errors.New("no path between origin and destination")
	// ErrSearchLimit jumlah node yang di settle melebihi batas WithMaxSettled.
	ErrSearchLimit = errors.New("search settled node limit exceeded")
)

// ctxCheckInterval cek ctx.Err() setiap sekian pop dari frontier.
const ctxCheckInterval = 1024

type Graph interface {
	ClosestVertex(lon, lat float64) (int64, error)
	Adjacent(v int64) ([]int64, error)
	Distance(v, w int64) (float64, error)
}

type Algorithm string

const (
	ALGORITHM_ASTAR      Algorithm = "astar"
	ALGORITHM_DIJKSTRA   Algorithm = "dijkstra"
	ALGORITHM_BIDIJKSTRA Algorithm = "bidijkstra"
)

type RouteAlgorithm struct {
	g          Graph
	algorithm  Algorithm
	maxSettled int
	log        *zap.Logger
}

type Option func(*RouteAlgorithm)

// WithMaxSettled batas jumlah vertex yang di expand per query. 0 = tanpa batas.
func WithMaxSettled(n int) Option {
	return func(rt *RouteAlgorithm) {
		rt.maxSettled = n
	}
}

// WithAlgorithm algoritma yang dipakai ShortestPath, default A*.
func WithAlgorithm(alg Algorithm) Option {
	return func(rt *RouteAlgorithm) {
		rt.algorithm = alg
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(rt *RouteAlgorithm) {
		rt.log = log
	}
}

func NewRouteAlgorithm(g Graph, options ...Option) *RouteAlgorithm {
	rt := &RouteAlgorithm{g: g, algorithm: ALGORITHM_ASTAR, log: zap.NewNop()}
	for _, option := range options {
		option(rt)
	}
	return rt
}

// searchNode. parent = index searchNode sebelumnya di arena, -1 untuk origin.
type searchNode struct {
	vertex       int64
	distTraveled float64
	heuristic    float64
	parent       int32
}

type heuristicFunc func(v, to int64) (float64, error)

/*
ShortestPath. snap (srcLon,srcLat) & (dstLon,dstLat) ke vertex terdekat, lalu A* (atau algoritma dari WithAlgorithm). Kalau tidak ada path,
return path kosong & found=false tanpa error. error cuma untuk graph kosong, ctx cancel, atau search limit.
*/
func (rt *RouteAlgorithm) ShortestPath(ctx context.Context, srcLon, srcLat, dstLon, dstLat float64) ([]int64, float64, bool, error) {
	from, err := rt.g.ClosestVertex(srcLon, srcLat)
	if err != nil {
		return []int64{}, 0, false, err
	}
	to, err := rt.g.ClosestVertex(dstLon, dstLat)
	if err != nil {
		return []int64{}, 0, false, err
	}

	var (
		path []int64
		dist float64
	)
	switch rt.algorithm {
	case ALGORITHM_DIJKSTRA:
		path, dist, err = rt.Dijkstra(ctx, from, to)
	case ALGORITHM_BIDIJKSTRA:
		path, dist, err = rt.BidirectionalDijkstra(ctx, from, to)
	default:
		path, dist, err = rt.AStar(ctx, from, to)
	}
	if errors.Is(err, ErrNoPath) {
		rt.log.Debug("route unavailable", zap.Int64("from", from), zap.Int64("to", to))
		return []int64{}, 0, false, nil
	}
	if err != nil {
		return []int64{}, 0, false, err
	}
	return path, dist, true, nil
}

// AStar shortest path dari vertex from ke vertex to. heuristic = great-circle distance ke to (admissible).
func (rt *RouteAlgorithm) AStar(ctx context.Context, from, to int64) ([]int64, float64, error) {
	return rt.search(ctx, from, to, rt.g.Distance)
}

// Dijkstra sama dengan AStar tapi heuristic 0.
func (rt *RouteAlgorithm) Dijkstra(ctx context.Context, from, to int64) ([]int64, float64, error) {
	return rt.search(ctx, from, to, func(v, to int64) (float64, error) {
		return 0, nil
	})
}

// https://www.redblobgames.com/pathfinding/a-star/introduction.html
func (rt *RouteAlgorithm) search(ctx context.Context, from, to int64, heuristic heuristicFunc) ([]int64, float64, error) {
	h, err := heuristic(from, to)
	if err != nil {
		return nil, 0, err
	}
	// cek destination ada di graph. heuristic dijkstra tidak pernah menyentuh to,
	// tanpa ini to yang tidak dikenal berakhir sebagai ErrNoPath.
	if _, err := rt.g.Distance(to, to); err != nil {
		return nil, 0, err
	}

	arena := []searchNode{{vertex: from, distTraveled: 0, heuristic: h, parent: -1}}
	frontier := NewMinHeap[int32]()
	frontier.Insert(PriorityQueueNode[int32]{Rank: h, Item: 0})

	visited := make(map[int64]struct{})
	settled := 0
	pops := 0

	for frontier.Size() > 0 {
		pops++
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		current, _ := frontier.ExtractMin()
		node := arena[current.Item]
		if _, ok := visited[node.vertex]; ok {
			// entry basi, vertex sudah di expand dengan cost lebih kecil
			continue
		}
		visited[node.vertex] = struct{}{}
		settled++
		if rt.maxSettled > 0 && settled > rt.maxSettled {
			return nil, 0, fmt.Errorf("%w: %d", ErrSearchLimit, rt.maxSettled)
		}

		if node.vertex == to {
			rt.log.Debug("shortest path found",
				zap.Int64("from", from), zap.Int64("to", to),
				zap.Int("settled", settled), zap.Int("arena", len(arena)))
			return reconstructPath(arena, current.Item), node.distTraveled, nil
		}

		neighbors, err := rt.g.Adjacent(node.vertex)
		if err != nil {
			return nil, 0, err
		}
		for _, w := range neighbors {
			if _, ok := visited[w]; ok {
				continue
			}
			edgeDist, err := rt.g.Distance(node.vertex, w)
			if errors.Is(err, graph.ErrVertexNotFound) {
				// neighbor sudah di overwrite/dibuang, tidak routable
				continue
			} else if err != nil {
				return nil, 0, err
			}
			hw, err := heuristic(w, to)
			if err != nil {
				return nil, 0, err
			}
			dist := node.distTraveled + edgeDist
			arena = append(arena, searchNode{vertex: w, distTraveled: dist, heuristic: hw, parent: current.Item})
			frontier.Insert(PriorityQueueNode[int32]{Rank: dist + hw, Item: int32(len(arena) - 1)})
		}
	}

	return nil, 0, ErrNoPath
}

// reconstructPath jalan balik dari node terakhir lewat parent index sampai origin, lalu reverse.
func reconstructPath(arena []searchNode, last int32) []int64 {
	path := make([]int64, 0)
	for curr := last; curr != -1; curr = arena[curr].parent {
		path = append(path, arena[curr].vertex)
	}
	util.ReverseG(path)
	return path
}
