package datastructure

import (
	"github.com/twpayne/go-polyline"
)

// UnknownRoad nama default untuk way yang tidak punya tag name.
const UnknownRoad = "unknown road"

// Edge undirected. dimiliki oleh kedua vertex endpoint, immutable setelah dibuat.
type Edge struct {
	V1       int64
	V2       int64
	MaxSpeed string
	Name     string
}

func NewEdge(v1, v2 int64, maxSpeed, name string) *Edge {
	return &Edge{
		V1:       v1,
		V2:       v2,
		MaxSpeed: maxSpeed,
		Name:     name,
	}
}

// Other endpoint lain dari edge, dilihat dari v.
func (e *Edge) Other(v int64) int64 {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// Connects true kalau edge menghubungkan v dan w (urutan endpoint tidak penting).
func (e *Edge) Connects(v, w int64) bool {
	return (e.V1 == v && e.V2 == w) || (e.V1 == w && e.V2 == v)
}

type Vertex struct {
	ID    int64
	Lon   float64
	Lat   float64
	Name  string
	Edges []*Edge
}

func NewVertex(id int64, lon, lat float64) *Vertex {
	return &Vertex{
		ID:    id,
		Lon:   lon,
		Lat:   lat,
		Edges: make([]*Edge, 0, 2),
	}
}

// Location snapshot dari vertex saat di index ke trie. bukan live view.
type Location struct {
	ID   int64   `json:"id"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Name string  `json:"name"`
}

func NewLocation(id int64, lon, lat float64, name string) Location {
	return Location{
		ID:   id,
		Lon:  lon,
		Lat:  lat,
		Name: name,
	}
}

func (v *Vertex) ToLocation() Location {
	return NewLocation(v.ID, v.Lon, v.Lat, v.Name)
}

// RenderPath encode coordinates rute ke google encoded polyline.
func RenderPath(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
