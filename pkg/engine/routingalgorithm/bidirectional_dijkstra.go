package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/util"

	"go.uber.org/zap"
)

// searchSide state 1 arah pencarian bidirectional dijkstra.
type searchSide struct {
	frontier *MinHeap[int64]
	dist     map[int64]float64
	cameFrom map[int64]int64
	settled  map[int64]struct{}
}

func newSearchSide(source int64) *searchSide {
	s := &searchSide{
		frontier: NewMinHeap[int64](),
		dist:     map[int64]float64{source: 0},
		cameFrom: map[int64]int64{},
		settled:  map[int64]struct{}{},
	}
	s.frontier.Insert(PriorityQueueNode[int64]{Rank: 0, Item: source})
	return s
}

/*
BidirectionalDijkstra. dijkstra dari from & dari to bergantian (graph undirected, jadi backward search pakai
adjacency yang sama). berhenti saat min(forward) + min(backward) >= cost path terbaik yang sudah ketemu.
*/
func (rt *RouteAlgorithm) BidirectionalDijkstra(ctx context.Context, from, to int64) ([]int64, float64, error) {
	if _, err := rt.g.Distance(from, to); err != nil {
		return nil, 0, err
	}
	if from == to {
		return []int64{from}, 0, nil
	}

	forw := newSearchSide(from)
	back := newSearchSide(to)

	estimate := math.Inf(1)
	var bestCommonVertex int64
	settled := 0
	pops := 0

	for forw.frontier.Size() > 0 && back.frontier.Size() > 0 {
		pops++
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		smallestFront, _ := forw.frontier.GetMin()
		smallestBack, _ := back.frontier.GetMin()
		if smallestFront.Rank+smallestBack.Rank >= estimate {
			// tidak ada path lewat node yang belum di settle yang lebih pendek dari estimate
			break
		}

		curr, other := forw, back
		if smallestBack.Rank < smallestFront.Rank {
			curr, other = back, forw
		}

		node, _ := curr.frontier.ExtractMin()
		if _, ok := curr.settled[node.Item]; ok {
			continue
		}
		curr.settled[node.Item] = struct{}{}
		settled++
		if rt.maxSettled > 0 && settled > rt.maxSettled {
			return nil, 0, fmt.Errorf("%w: %d", ErrSearchLimit, rt.maxSettled)
		}

		neighbors, err := rt.g.Adjacent(node.Item)
		if err != nil {
			return nil, 0, err
		}
		for _, w := range neighbors {
			edgeDist, err := rt.g.Distance(node.Item, w)
			if errors.Is(err, graph.ErrVertexNotFound) {
				continue
			} else if err != nil {
				return nil, 0, err
			}

			newCost := curr.dist[node.Item] + edgeDist
			if old, ok := curr.dist[w]; !ok || newCost < old {
				curr.dist[w] = newCost
				curr.cameFrom[w] = node.Item
				curr.frontier.Insert(PriorityQueueNode[int64]{Rank: newCost, Item: w})
			}

			if otherDist, ok := other.dist[w]; ok && curr.dist[w]+otherDist < estimate {
				estimate = curr.dist[w] + otherDist
				bestCommonVertex = w
			}
		}
	}

	if math.IsInf(estimate, 1) {
		return nil, 0, ErrNoPath
	}

	rt.log.Debug("shortest path found",
		zap.Int64("from", from), zap.Int64("to", to),
		zap.Int("settled", settled), zap.String("algorithm", string(ALGORITHM_BIDIJKSTRA)))
	return joinPaths(forw.cameFrom, back.cameFrom, from, to, bestCommonVertex), estimate, nil
}

// joinPaths path from -> meet dari forward cameFrom, lalu meet -> to dari backward cameFrom.
func joinPaths(cameFromf, cameFromb map[int64]int64, from, to, meet int64) []int64 {
	path := []int64{meet}
	for curr := meet; curr != from; {
		curr = cameFromf[curr]
		path = append(path, curr)
	}
	util.ReverseG(path)

	for curr := meet; curr != to; {
		curr = cameFromb[curr]
		path = append(path, curr)
	}
	return path
}
