package service

import (
	"context"
	"errors"

	"lintang/bearmaps/pkg/datastructure"
	"lintang/bearmaps/pkg/engine/routingalgorithm"
	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/guidance"
	"lintang/bearmaps/pkg/rasterer"
	"lintang/bearmaps/pkg/server"

	"go.uber.org/zap"
)

type Graph interface {
	Vertex(id int64) (datastructure.Location, error)
	VerticesInBox(ullon, ullat, lrlon, lrlat float64) ([]datastructure.Location, error)
	EdgeBetween(v, w int64) (*datastructure.Edge, error)
	Distance(v, w int64) (float64, error)
	Bearing(v, w int64) (float64, error)
}

type RoutingAlgorithm interface {
	ShortestPath(ctx context.Context, srcLon, srcLat, dstLon, dstLat float64) ([]int64, float64, bool, error)
}

type SearchIndex interface {
	PrefixLookup(prefix string) []string
	ExactLookup(name string) []datastructure.Location
}

type Rasterer interface {
	GetMapRaster(req rasterer.RasterRequest) rasterer.RasterResult
}

type NavigationService struct {
	g       Graph
	routing RoutingAlgorithm
	search  SearchIndex
	raster  Rasterer
	log     *zap.Logger
}

func NewNavigationService(g Graph, routing RoutingAlgorithm, search SearchIndex, raster Rasterer, log *zap.Logger) *NavigationService {
	return &NavigationService{g: g, routing: routing, search: search, raster: raster, log: log}
}

// RouteResult hasil shortest path query. Found=false berarti origin & destination tidak terhubung.
type RouteResult struct {
	Route       []int64
	Coordinates []datastructure.Coordinate
	Distance    float64
	Directions  []guidance.Maneuver
	Found       bool
}

func emptyRoute() RouteResult {
	return RouteResult{
		Route:       []int64{},
		Coordinates: []datastructure.Coordinate{},
		Directions:  []guidance.Maneuver{},
	}
}

// ShortestPath rute terpendek antara 2 koordinat (di snap ke vertex terdekat) beserta turn-by-turn directions.
func (uc *NavigationService) ShortestPath(ctx context.Context, srcLon, srcLat, dstLon, dstLat float64) (RouteResult, error) {
	route, dist, found, err := uc.routing.ShortestPath(ctx, srcLon, srcLat, dstLon, dstLat)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrEmptyGraph):
			return emptyRoute(), server.WrapErrorf(err, server.ErrNotFound, "map has no roads loaded")
		case errors.Is(err, routingalgorithm.ErrSearchLimit):
			return emptyRoute(), server.WrapErrorf(err, server.ErrBadParamInput, "route is too long, try closer locations")
		default:
			uc.log.Error("shortest path query failed", zap.Error(err))
			return emptyRoute(), server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
		}
	}
	if !found {
		return emptyRoute(), nil
	}

	coords := make([]datastructure.Coordinate, 0, len(route))
	for _, id := range route {
		loc, err := uc.g.Vertex(id)
		if err != nil {
			return emptyRoute(), server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
		}
		coords = append(coords, datastructure.NewCoordinate(loc.Lon, loc.Lat))
	}

	directions, err := guidance.RouteDirections(uc.g, route)
	if err != nil {
		uc.log.Error("route directions failed", zap.Error(err), zap.Int("route_len", len(route)))
		return emptyRoute(), server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	return RouteResult{
		Route:       route,
		Coordinates: coords,
		Distance:    dist,
		Directions:  directions,
		Found:       true,
	}, nil
}

// PrefixSearch nama lokasi yang diawali prefix (autocomplete).
func (uc *NavigationService) PrefixSearch(ctx context.Context, prefix string) []string {
	return uc.search.PrefixLookup(prefix)
}

// SearchLocations semua lokasi dengan nama yang sama (setelah normalisasi) dengan name.
func (uc *NavigationService) SearchLocations(ctx context.Context, name string) []datastructure.Location {
	return uc.search.ExactLookup(name)
}

func (uc *NavigationService) MapRaster(ctx context.Context, req rasterer.RasterRequest) rasterer.RasterResult {
	return uc.raster.GetMapRaster(req)
}

func (uc *NavigationService) VerticesInBox(ctx context.Context, ullon, ullat, lrlon, lrlat float64) ([]datastructure.Location, error) {
	locs, err := uc.g.VerticesInBox(ullon, ullat, lrlon, lrlat)
	if err != nil {
		return []datastructure.Location{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid bounding box")
	}
	return locs, nil
}
