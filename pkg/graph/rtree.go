package graph

import (
	"lintang/bearmaps/pkg/datastructure"

	"github.com/dhconnelly/rtreego"
)

var tol = 0.0000001

type vertexRect struct {
	id       int64
	location rtreego.Point
}

func (s *vertexRect) Bounds() rtreego.Rect {
	// rectangle dengan center di s.location, panjang sisi 2 * tol
	return s.location.ToRect(tol)
}

// VerticesInBox vertex yang ada di dalam bounding box (upper-left, lower-right). pakai rtree setelah Clean.
func (g *Graph) VerticesInBox(ullon, ullat, lrlon, lrlat float64) ([]datastructure.Location, error) {
	if ullon >= lrlon || lrlat >= ullat {
		return nil, ErrInvalidBox
	}

	locs := make([]datastructure.Location, 0)
	if g.rtree == nil {
		for _, id := range g.order {
			v := g.vertices[id]
			if v.Lon >= ullon && v.Lon <= lrlon && v.Lat >= lrlat && v.Lat <= ullat {
				locs = append(locs, v.ToLocation())
			}
		}
		return locs, nil
	}

	bb, err := rtreego.NewRect(rtreego.Point{ullon, lrlat}, []float64{lrlon - ullon, ullat - lrlat})
	if err != nil {
		return nil, ErrInvalidBox
	}
	for _, obj := range g.rtree.SearchIntersect(bb) {
		vr := obj.(*vertexRect)
		locs = append(locs, g.vertices[vr.id].ToLocation())
	}
	return locs, nil
}
