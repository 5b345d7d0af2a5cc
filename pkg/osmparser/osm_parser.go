package osmparser

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"

	"lintang/bearmaps/pkg/datastructure"
	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/search"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ValidRoadType highway tag yang dianggap bagian dari road network.
var ValidRoadType = map[string]bool{
	"motorway":       true,
	"trunk":          true,
	"primary":        true,
	"secondary":      true,
	"tertiary":       true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"motorway_link":  true,
	"trunk_link":     true,
	"primary_link":   true,
	"secondary_link": true,
	"tertiary_link":  true,
	"road":           true,
	"service":        true,
}

type Stats struct {
	Nodes       int
	Ways        int
	SkippedWays int
	Removed     int
	Indexed     int
}

/*
OSMParser. baca file openstreetmap (.osm xml atau .osm.pbf) ke Graph & Trie. Urutan object di file
harus node dulu baru way (urutan standar osm), way yang referensi node belum ada di skip.
*/
type OSMParser struct {
	g        *graph.Graph
	trie     *search.Trie
	log      *zap.Logger
	progress io.Writer

	named   []datastructure.Location
	nodeSet map[int64]struct{}
	stats   Stats
}

type Option func(*OSMParser)

func WithLogger(log *zap.Logger) Option {
	return func(p *OSMParser) {
		p.log = log
	}
}

// WithProgressWriter tujuan progress bar, default stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(p *OSMParser) {
		p.progress = w
	}
}

func NewOSMParser(g *graph.Graph, trie *search.Trie, opts ...Option) *OSMParser {
	p := &OSMParser{
		g:        g,
		trie:     trie,
		log:      zap.NewNop(),
		progress: ansi.NewAnsiStderr(),
		named:    make([]datastructure.Location, 0),
		nodeSet:  make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse baca file di path, clean graph, lalu index semua named node ke trie.
func (p *OSMParser) Parse(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open osm file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}

	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2][reset] memproses openstreetmap node & way..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Finish()

	r := progressbar.NewReader(f, bar)
	return p.ParseReader(ctx, &r, strings.HasSuffix(path, ".pbf"))
}

// ParseReader sama dengan Parse tapi dari reader. pbf=false berarti osm xml.
func (p *OSMParser) ParseReader(ctx context.Context, r io.Reader, pbf bool) error {
	var scanner osm.Scanner
	if pbf {
		scanner = osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	} else {
		scanner = osmxml.New(ctx, r)
	}
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if err := p.handleNode(o); err != nil {
				return err
			}
		case *osm.Way:
			if err := p.handleWay(o); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan osm")
	}

	return p.finish()
}

func (p *OSMParser) handleNode(n *osm.Node) error {
	id := int64(n.ID)
	if err := p.g.AddVertex(id, n.Lon, n.Lat); err != nil {
		return errors.Wrapf(err, "node %d", id)
	}
	p.nodeSet[id] = struct{}{}
	p.stats.Nodes++

	if name := n.Tags.Find("name"); name != "" {
		if err := p.g.SetName(id, name); err != nil {
			return errors.Wrapf(err, "node %d", id)
		}
		p.named = append(p.named, datastructure.NewLocation(id, n.Lon, n.Lat, name))
	}
	return nil
}

func (p *OSMParser) handleWay(w *osm.Way) error {
	if !ValidRoadType[w.Tags.Find("highway")] || len(w.Nodes) < 2 {
		return nil
	}

	verts := make([]int64, 0, len(w.Nodes))
	for _, wn := range w.Nodes {
		id := int64(wn.ID)
		if _, ok := p.nodeSet[id]; !ok {
			p.stats.SkippedWays++
			p.log.Warn("skip way with unknown node", zap.Int64("way", int64(w.ID)), zap.Int64("node", id))
			return nil
		}
		verts = append(verts, id)
	}

	name := w.Tags.Find("name")
	if name == "" {
		name = datastructure.UnknownRoad
	}
	if err := p.g.AddWay(verts, w.Tags.Find("maxspeed"), name); err != nil {
		return errors.Wrapf(err, "way %d", w.ID)
	}
	p.stats.Ways++
	return nil
}

// finish clean graph & index named node, termasuk POI yang dibuang Clean karena tidak terhubung ke road.
func (p *OSMParser) finish() error {
	removed, err := p.g.Clean()
	if err != nil {
		return errors.Wrap(err, "clean graph")
	}
	p.stats.Removed = removed

	for _, loc := range p.named {
		p.trie.Index(loc.Name, loc)
	}
	p.stats.Indexed = len(p.named)

	p.log.Info("osm map loaded",
		zap.Int("nodes", p.stats.Nodes),
		zap.Int("ways", p.stats.Ways),
		zap.Int("skipped_ways", p.stats.SkippedWays),
		zap.Int("removed_vertices", p.stats.Removed),
		zap.Int("indexed_locations", p.stats.Indexed),
		zap.Int("vertices", p.g.NumVertices()),
	)
	return nil
}

func (p *OSMParser) Stats() Stats {
	return p.stats
}
