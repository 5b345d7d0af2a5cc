package rasterer

import (
	"fmt"
	"math"

	"lintang/bearmaps/pkg/util"
)

const (
	ROOT_ULLAT = 37.892195547244356
	ROOT_ULLON = -122.2998046875
	ROOT_LRLAT = 37.82280243352756
	ROOT_LRLON = -122.2119140625

	TILE_SIZE = 256
	MAX_DEPTH = 7
)

// Bounds bounding box (upper-left, lower-right) dalam derajat.
type Bounds struct {
	ULLon float64 `json:"ullon" yaml:"ullon"`
	ULLat float64 `json:"ullat" yaml:"ullat"`
	LRLon float64 `json:"lrlon" yaml:"lrlon"`
	LRLat float64 `json:"lrlat" yaml:"lrlat"`
}

func DefaultRoot() Bounds {
	return Bounds{ULLon: ROOT_ULLON, ULLat: ROOT_ULLAT, LRLon: ROOT_LRLON, LRLat: ROOT_LRLAT}
}

func (b Bounds) inverted() bool {
	return b.ULLon >= b.LRLon || b.ULLat <= b.LRLat
}

func (b Bounds) intersects(o Bounds) bool {
	return b.ULLon < o.LRLon && o.ULLon < b.LRLon && b.LRLat < o.ULLat && o.LRLat < b.ULLat
}

type RasterRequest struct {
	Bounds
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

type RasterResult struct {
	RenderGrid   [][]string `json:"render_grid"`
	RasterULLon  float64    `json:"raster_ul_lon"`
	RasterULLat  float64    `json:"raster_ul_lat"`
	RasterLRLon  float64    `json:"raster_lr_lon"`
	RasterLRLat  float64    `json:"raster_lr_lat"`
	Depth        int        `json:"depth"`
	QuerySuccess bool       `json:"query_success"`
}

/*
Rasterer. pilih tile quadtree yang menutupi query box. tile depth d membagi Root jadi 2^d x 2^d tile,
tiap tile TileSize pixel. tile (x,y) disimpan dengan nama "d{depth}_x{x}_y{y}.png".
*/
type Rasterer struct {
	Root     Bounds
	TileSize int
	MaxDepth int
}

func NewRasterer(root Bounds, tileSize, maxDepth int) *Rasterer {
	return &Rasterer{Root: root, TileSize: tileSize, MaxDepth: maxDepth}
}

func NewDefaultRasterer() *Rasterer {
	return NewRasterer(DefaultRoot(), TILE_SIZE, MAX_DEPTH)
}

// tileLonDPP longitude per pixel tile di depth d.
func (r *Rasterer) tileLonDPP(depth int) float64 {
	return (r.Root.LRLon - r.Root.ULLon) / float64(r.TileSize) / math.Pow(2, float64(depth))
}

// depthFor depth paling dangkal yang lonDPP tile nya <= lonDPP query, atau MaxDepth.
func (r *Rasterer) depthFor(lonDPP float64) int {
	for d := 0; d < r.MaxDepth; d++ {
		if r.tileLonDPP(d) <= lonDPP {
			return d
		}
	}
	return r.MaxDepth
}

// GetMapRaster grid tile (row-major, y lalu x) yang menutupi query box pada resolusi yang cukup untuk viewport.
func (r *Rasterer) GetMapRaster(req RasterRequest) RasterResult {
	if req.Bounds.inverted() || req.Width <= 0 || !req.Bounds.intersects(r.Root) {
		return RasterResult{RenderGrid: [][]string{}, QuerySuccess: false}
	}

	lonDPP := (req.LRLon - req.ULLon) / req.Width
	depth := r.depthFor(lonDPP)

	n := math.Pow(2, float64(depth))
	lonLength := (r.Root.LRLon - r.Root.ULLon) / n
	latLength := (r.Root.LRLat - r.Root.ULLat) / n // negatif, y bertambah ke selatan

	xMin := util.Clamp(math.Floor((req.ULLon-r.Root.ULLon)/lonLength), 0, n)
	xMax := util.Clamp(math.Ceil((req.LRLon-r.Root.ULLon)/lonLength), 0, n)
	yMin := util.Clamp(math.Floor((req.ULLat-r.Root.ULLat)/latLength), 0, n)
	yMax := util.Clamp(math.Ceil((req.LRLat-r.Root.ULLat)/latLength), 0, n)

	if xMin >= xMax || yMin >= yMax {
		return RasterResult{RenderGrid: [][]string{}, QuerySuccess: false}
	}

	grid := make([][]string, 0, int(yMax-yMin))
	for y := int(yMin); y < int(yMax); y++ {
		row := make([]string, 0, int(xMax-xMin))
		for x := int(xMin); x < int(xMax); x++ {
			row = append(row, TileName(depth, x, y))
		}
		grid = append(grid, row)
	}

	return RasterResult{
		RenderGrid:   grid,
		RasterULLon:  r.Root.ULLon + xMin*lonLength,
		RasterULLat:  r.Root.ULLat + yMin*latLength,
		RasterLRLon:  r.Root.ULLon + xMax*lonLength,
		RasterLRLat:  r.Root.ULLat + yMax*latLength,
		Depth:        depth,
		QuerySuccess: true,
	}
}

func TileName(depth, x, y int) string {
	return fmt.Sprintf("d%d_x%d_y%d.png", depth, x, y)
}
