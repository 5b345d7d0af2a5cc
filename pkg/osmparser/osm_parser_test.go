package osmparser_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/osmparser"
	"lintang/bearmaps/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const berkeleyOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="37.8735" lon="-122.2640"/>
 <node id="2" lat="37.8740" lon="-122.2620"/>
 <node id="3" lat="37.8745" lon="-122.2600"/>
 <node id="4" lat="37.8760" lon="-122.2600"/>
 <node id="5" lat="37.8756" lon="-122.2588">
  <tag k="name" v="Soda Hall"/>
  <tag k="amenity" v="university"/>
 </node>
 <node id="6" lat="37.8700" lon="-122.2700"/>
 <node id="7" lat="37.8702" lon="-122.2690">
  <tag k="name" v="Sodexo"/>
 </node>
 <way id="100">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="residential"/>
  <tag k="name" v="Hearst Avenue"/>
  <tag k="maxspeed" v="25 mph"/>
 </way>
 <way id="101">
  <nd ref="3"/>
  <nd ref="4"/>
  <tag k="highway" v="service"/>
 </way>
 <way id="102">
  <nd ref="6"/>
  <nd ref="1"/>
  <tag k="highway" v="footway"/>
  <tag k="name" v="Campus Path"/>
 </way>
 <way id="103">
  <nd ref="4"/>
  <nd ref="99"/>
  <tag k="highway" v="primary"/>
 </way>
 <way id="104">
  <nd ref="6"/>
  <nd ref="7"/>
  <tag k="highway" v="living_street"/>
  <tag k="name" v="Oxford Street"/>
 </way>
</osm>`

func parseFixture(t *testing.T) (*graph.Graph, *search.Trie, *osmparser.OSMParser) {
	t.Helper()
	g := graph.NewGraph()
	trie := search.NewTrie()
	p := osmparser.NewOSMParser(g, trie, osmparser.WithProgressWriter(io.Discard))
	require.NoError(t, p.ParseReader(context.Background(), strings.NewReader(berkeleyOSM), false))
	return g, trie, p
}

func TestParseReader(t *testing.T) {
	t.Run("only road ways become edges", func(t *testing.T) {
		g, _, p := parseFixture(t)
		require.True(t, g.IsClean())
		assert.ElementsMatch(t, []int64{1, 2, 3, 4, 6, 7}, g.Vertices())

		e, err := g.EdgeBetween(1, 2)
		require.NoError(t, err)
		assert.Equal(t, "Hearst Avenue", e.Name)
		assert.Equal(t, "25 mph", e.MaxSpeed)

		e, err = g.EdgeBetween(3, 4)
		require.NoError(t, err)
		assert.Equal(t, "unknown road", e.Name)

		_, err = g.EdgeBetween(6, 1)
		assert.ErrorIs(t, err, graph.ErrEdgeNotFound)

		stats := p.Stats()
		assert.Equal(t, 7, stats.Nodes)
		assert.Equal(t, 3, stats.Ways)
		assert.Equal(t, 1, stats.SkippedWays)
		assert.Equal(t, 1, stats.Removed)
		assert.Equal(t, 2, stats.Indexed)
	})

	t.Run("way with an unknown node is skipped entirely", func(t *testing.T) {
		g, _, _ := parseFixture(t)
		adj, err := g.Adjacent(4)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, adj)
	})

	t.Run("unconnected named node is dropped from the graph but stays searchable", func(t *testing.T) {
		g, trie, _ := parseFixture(t)
		_, err := g.Vertex(5)
		assert.ErrorIs(t, err, graph.ErrVertexNotFound)

		assert.Equal(t, []string{"Soda Hall", "Sodexo"}, trie.PrefixLookup("sod"))
		locs := trie.ExactLookup("soda hall")
		require.Len(t, locs, 1)
		assert.Equal(t, int64(5), locs[0].ID)
		assert.Equal(t, -122.2588, locs[0].Lon)
		assert.Equal(t, 37.8756, locs[0].Lat)
	})

	t.Run("connected named node keeps its name", func(t *testing.T) {
		g, _, _ := parseFixture(t)
		loc, err := g.Vertex(7)
		require.NoError(t, err)
		assert.Equal(t, "Sodexo", loc.Name)
	})
}

func TestParseFile(t *testing.T) {
	t.Run("xml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "berkeley.osm")
		require.NoError(t, os.WriteFile(path, []byte(berkeleyOSM), 0o644))

		g := graph.NewGraph()
		p := osmparser.NewOSMParser(g, search.NewTrie(), osmparser.WithProgressWriter(io.Discard))
		require.NoError(t, p.Parse(context.Background(), path))
		assert.Equal(t, 6, g.NumVertices())
	})

	t.Run("missing file", func(t *testing.T) {
		p := osmparser.NewOSMParser(graph.NewGraph(), search.NewTrie(), osmparser.WithProgressWriter(io.Discard))
		err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "nope.osm"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
