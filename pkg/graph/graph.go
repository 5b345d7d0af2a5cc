package graph

import (
	"errors"
	"fmt"
	"math"

	"lintang/bearmaps/pkg/datastructure"
	"lintang/bearmaps/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

var (
	// ErrVertexNotFound vertex id belum di add, atau sudah dibuang sama Clean.
	ErrVertexNotFound = errors.New("vertex not found")
	// ErrEmptyGraph graph tidak punya vertex sama sekali.
	ErrEmptyGraph = errors.New("graph has no vertices")
	// ErrGraphFrozen mutasi setelah Clean.
	ErrGraphFrozen = errors.New("graph is frozen after clean")
	// ErrAlreadyCleaned Clean cuma boleh sekali.
	ErrAlreadyCleaned = errors.New("graph already cleaned")
	// ErrEdgeNotFound tidak ada edge yang menghubungkan 2 vertex.
	ErrEdgeNotFound = errors.New("edge not found")
	ErrInvalidBox   = errors.New("invalid bounding box")
)

/*
Graph. road network (intersection = vertex, road segment = edge undirected). Dibangun sekali
lewat AddVertex/AddEdge/AddWay lalu Clean, setelah itu read-only: semua query aman dipanggil
concurrent tanpa lock.
*/
type Graph struct {
	vertices map[int64]*datastructure.Vertex
	order    []int64 // urutan insertion, buat iterasi ClosestVertex & Vertices
	cleaned  bool
	rtree    *rtreego.Rtree
}

func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[int64]*datastructure.Vertex),
		order:    make([]int64, 0),
	}
}

// AddVertex register vertex. id yang sudah ada di overwrite (last write wins), edge lamanya ikut hilang.
func (g *Graph) AddVertex(id int64, lon, lat float64) error {
	if g.cleaned {
		return ErrGraphFrozen
	}
	if _, ok := g.vertices[id]; !ok {
		g.order = append(g.order, id)
	}
	g.vertices[id] = datastructure.NewVertex(id, lon, lat)
	return nil
}

// SetName set display name vertex (named location / POI).
func (g *Graph) SetName(id int64, name string) error {
	v, err := g.vertex(id)
	if err != nil {
		return err
	}
	v.Name = name
	return nil
}

// AddEdge. kedua endpoint harus sudah di register, kalau belum berarti urutan ingestion salah.
func (g *Graph) AddEdge(v1, v2 int64, maxSpeed, name string) error {
	if g.cleaned {
		return ErrGraphFrozen
	}
	from, err := g.vertex(v1)
	if err != nil {
		return fmt.Errorf("add edge %d-%d: %w", v1, v2, err)
	}
	to, err := g.vertex(v2)
	if err != nil {
		return fmt.Errorf("add edge %d-%d: %w", v1, v2, err)
	}

	edge := datastructure.NewEdge(v1, v2, maxSpeed, name)
	from.Edges = append(from.Edges, edge)
	if v1 != v2 {
		to.Edges = append(to.Edges, edge)
	}
	return nil
}

// AddWay add 1 edge untuk setiap pasangan vertex berurutan di verts (multi-segment road).
func (g *Graph) AddWay(verts []int64, maxSpeed, name string) error {
	for i := 1; i < len(verts); i++ {
		if err := g.AddEdge(verts[i-1], verts[i], maxSpeed, name); err != nil {
			return err
		}
	}
	return nil
}

/*
Clean. buang semua vertex yang tidak punya edge (node hasil parse yang bukan bagian dari road, POI yang
tidak terhubung ke way). Harus dipanggil sekali setelah ingestion selesai & sebelum query.
*/
func (g *Graph) Clean() (int, error) {
	if g.cleaned {
		return 0, ErrAlreadyCleaned
	}

	removed := 0
	order := make([]int64, 0, len(g.order))
	for _, id := range g.order {
		v := g.vertices[id]
		if len(v.Edges) == 0 {
			delete(g.vertices, id)
			removed++
			continue
		}
		order = append(order, id)
	}
	g.order = order
	g.cleaned = true

	g.rtree = rtreego.NewTree(2, 25, 50) // 2 dimension, 25 min entries dan 50 max entries
	for _, id := range g.order {
		v := g.vertices[id]
		g.rtree.Insert(&vertexRect{id: id, location: rtreego.Point{v.Lon, v.Lat}})
	}
	return removed, nil
}

func (g *Graph) IsClean() bool {
	return g.cleaned
}

func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// Vertices semua vertex id, urut sesuai insertion.
func (g *Graph) Vertices() []int64 {
	ids := make([]int64, len(g.order))
	copy(ids, g.order)
	return ids
}

func (g *Graph) vertex(id int64) (*datastructure.Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, fmt.Errorf("vertex %d: %w", id, ErrVertexNotFound)
	}
	return v, nil
}

// Vertex copy dari vertex id (tanpa edge).
func (g *Graph) Vertex(id int64) (datastructure.Location, error) {
	v, err := g.vertex(id)
	if err != nil {
		return datastructure.Location{}, err
	}
	return v.ToLocation(), nil
}

func (g *Graph) Lon(id int64) (float64, error) {
	v, err := g.vertex(id)
	if err != nil {
		return 0, err
	}
	return v.Lon, nil
}

func (g *Graph) Lat(id int64) (float64, error) {
	v, err := g.vertex(id)
	if err != nil {
		return 0, err
	}
	return v.Lat, nil
}

// Adjacent vertex yang terhubung langsung dengan v. parallel edge dihitung sekali.
func (g *Graph) Adjacent(id int64) ([]int64, error) {
	v, err := g.vertex(id)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(v.Edges))
	adj := make([]int64, 0, len(v.Edges))
	for _, e := range v.Edges {
		w := e.Other(id)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		adj = append(adj, w)
	}
	return adj, nil
}

// EdgeBetween edge pertama di incident set v yang menghubungkan v dan w.
func (g *Graph) EdgeBetween(v, w int64) (*datastructure.Edge, error) {
	vv, err := g.vertex(v)
	if err != nil {
		return nil, err
	}
	if _, err := g.vertex(w); err != nil {
		return nil, err
	}
	for _, e := range vv.Edges {
		if e.Connects(v, w) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("edge %d-%d: %w", v, w, ErrEdgeNotFound)
}

// Distance great-circle distance (miles) antara vertex v dan w.
func (g *Graph) Distance(v, w int64) (float64, error) {
	from, err := g.vertex(v)
	if err != nil {
		return 0, err
	}
	to, err := g.vertex(w)
	if err != nil {
		return 0, err
	}
	return geo.Distance(from.Lon, from.Lat, to.Lon, to.Lat), nil
}

// Bearing initial bearing (derajat, range (-180,180]) dari vertex v ke w.
func (g *Graph) Bearing(v, w int64) (float64, error) {
	from, err := g.vertex(v)
	if err != nil {
		return 0, err
	}
	to, err := g.vertex(w)
	if err != nil {
		return 0, err
	}
	return geo.Bearing(from.Lon, from.Lat, to.Lon, to.Lat), nil
}

/*
ClosestVertex. linear scan semua vertex, return id dengan great-circle distance terkecil ke (lon,lat).
kalau ada yang sama jaraknya, yang pertama ketemu (urutan insertion) yang menang.
*/
func (g *Graph) ClosestVertex(lon, lat float64) (int64, error) {
	if len(g.order) == 0 {
		return 0, ErrEmptyGraph
	}
	best := g.order[0]
	smallest := math.Inf(1)
	for _, id := range g.order {
		v := g.vertices[id]
		d := geo.Distance(lon, lat, v.Lon, v.Lat)
		if d < smallest {
			smallest = d
			best = id
		}
	}
	return best, nil
}
