package guidance_test

import (
	"encoding/json"
	"testing"

	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/guidance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	a int64 = iota + 1
	b
	c
	d
	e
)

func newGraph(t *testing.T, coords map[int64][2]float64) *graph.Graph {
	t.Helper()
	g := graph.NewGraph()
	for id := a; id <= e; id++ {
		if lonLat, ok := coords[id]; ok {
			require.NoError(t, g.AddVertex(id, lonLat[0], lonLat[1]))
		}
	}
	return g
}

func dist(t *testing.T, g *graph.Graph, v, w int64) float64 {
	t.Helper()
	d, err := g.Distance(v, w)
	require.NoError(t, err)
	return d
}

func TestRouteDirections(t *testing.T) {
	t.Run("one road becomes one start maneuver", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}, c: {0, 2}})
		require.NoError(t, g.AddWay([]int64{a, b, c}, "", "Main St"))
		_, err := g.Clean()
		require.NoError(t, err)

		ms, err := guidance.RouteDirections(g, []int64{a, b, c})
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, guidance.START, ms[0].Direction)
		assert.Equal(t, "Main St", ms[0].Way)
		assert.InDelta(t, dist(t, g, a, b)+dist(t, g, b, c), ms[0].Distance, 0.0005)
		assert.Equal(t, "Start on Main St and continue for 138.335 miles.", ms[0].String())
	})

	t.Run("single vertex route has one zero length maneuver", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))

		ms, err := guidance.RouteDirections(g, []int64{a})
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, guidance.START, ms[0].Direction)
		assert.Equal(t, 0.0, ms[0].Distance)
		assert.Equal(t, "Start on unknown road and continue for 0.000 miles.", ms[0].String())
	})

	t.Run("right and left turns at a road change", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}, c: {1, 1}, d: {-1, 1}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))
		require.NoError(t, g.AddEdge(b, c, "", "East St"))
		require.NoError(t, g.AddEdge(b, d, "", "West St"))

		ms, err := guidance.RouteDirections(g, []int64{a, b, c})
		require.NoError(t, err)
		require.Len(t, ms, 2)
		assert.Equal(t, guidance.NewManeuver(guidance.START, "Main St", 69.167), ms[0])
		assert.Equal(t, guidance.RIGHT, ms[1].Direction)
		assert.Equal(t, "East St", ms[1].Way)
		assert.InDelta(t, dist(t, g, b, c), ms[1].Distance, 0.0005)

		ms, err = guidance.RouteDirections(g, []int64{a, b, d})
		require.NoError(t, err)
		require.Len(t, ms, 2)
		assert.Equal(t, guidance.LEFT, ms[1].Direction)
		assert.Equal(t, "West St", ms[1].Way)
	})

	t.Run("turn signal is the sum of incoming and outgoing bearings", func(t *testing.T) {
		// ke selatan (180) lalu ke timur (~90): jumlahnya ~270 -> SHARP_RIGHT
		g := newGraph(t, map[int64][2]float64{a: {0, 2}, b: {0, 1}, c: {1, 1}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))
		require.NoError(t, g.AddEdge(b, c, "", "East St"))

		ms, err := guidance.RouteDirections(g, []int64{a, b, c})
		require.NoError(t, err)
		require.Len(t, ms, 2)
		assert.Equal(t, guidance.SHARP_RIGHT, ms[1].Direction)
	})

	t.Run("returning to a road opens a new maneuver", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 0.01}, c: {0.01, 0.01}, d: {0.01, 0.02}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))
		require.NoError(t, g.AddEdge(b, c, "", "Cross St"))
		require.NoError(t, g.AddEdge(c, d, "", "Main St"))

		ms, err := guidance.RouteDirections(g, []int64{a, b, c, d})
		require.NoError(t, err)
		require.Len(t, ms, 3)
		assert.Equal(t, []string{"Main St", "Cross St", "Main St"}, []string{ms[0].Way, ms[1].Way, ms[2].Way})
		assert.InDelta(t, dist(t, g, a, b)+dist(t, g, b, c)+dist(t, g, c, d), guidance.TotalDistance(ms), 0.002)
	})

	t.Run("unnamed edge reads as unknown road", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}})
		require.NoError(t, g.AddEdge(a, b, "", ""))
		ms, err := guidance.RouteDirections(g, []int64{a, b})
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, "unknown road", ms[0].Way)
	})

	t.Run("empty route", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}})
		_, err := guidance.RouteDirections(g, []int64{})
		assert.ErrorIs(t, err, guidance.ErrEmptyRoute)
	})

	t.Run("instance can be reused for another route", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}, c: {1, 1}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))
		require.NoError(t, g.AddEdge(b, c, "", "Cross St"))

		ifp := guidance.NewInstructionsFromPath(g)
		first, err := ifp.GetDirections([]int64{a, b, c})
		require.NoError(t, err)
		require.Len(t, first, 2)

		second, err := ifp.GetDirections([]int64{a, b})
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, guidance.START, second[0].Direction)
		assert.Equal(t, "Main St", second[0].Way)
		assert.InDelta(t, dist(t, g, a, b), second[0].Distance, 0.0005)

		again, err := ifp.GetDirections([]int64{a, b, c})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("consecutive vertices without an edge", func(t *testing.T) {
		g := newGraph(t, map[int64][2]float64{a: {0, 0}, b: {0, 1}, c: {0, 2}})
		require.NoError(t, g.AddEdge(a, b, "", "Main St"))
		_, err := guidance.RouteDirections(g, []int64{a, c})
		assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
	})
}

func TestClassifyTurn(t *testing.T) {
	cases := []struct {
		angle float64
		want  guidance.Direction
	}{
		{0, guidance.STRAIGHT},
		{15, guidance.STRAIGHT},
		{-15, guidance.STRAIGHT},
		{15.0001, guidance.SLIGHT_RIGHT},
		{30, guidance.SLIGHT_RIGHT},
		{-15.0001, guidance.SLIGHT_LEFT},
		{-30, guidance.SLIGHT_LEFT},
		{30.0001, guidance.RIGHT},
		{100, guidance.RIGHT},
		{-30.0001, guidance.LEFT},
		{-100, guidance.LEFT},
		{100.0001, guidance.SHARP_RIGHT},
		{270, guidance.SHARP_RIGHT},
		{-100.0001, guidance.SHARP_LEFT},
		{-359, guidance.SHARP_LEFT},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, guidance.ClassifyTurn(tc.angle), "angle %v", tc.angle)
	}
}

func TestManeuverText(t *testing.T) {
	t.Run("round trip for every direction", func(t *testing.T) {
		ways := []string{"Main St", "Martin Luther King Jr Way", "unknown road", "Bancroft Way"}
		for dir := guidance.START; dir <= guidance.SHARP_RIGHT; dir++ {
			for i, way := range ways {
				m := guidance.NewManeuver(dir, way, float64(i)*1.25+0.125)
				got, err := guidance.ParseManeuver(m.String())
				require.NoError(t, err)
				assert.Equal(t, m, got)
			}
		}
	})

	t.Run("road name containing on", func(t *testing.T) {
		m := guidance.NewManeuver(guidance.LEFT, "Avenue on the Hill", 2.5)
		got, err := guidance.ParseManeuver(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	})

	t.Run("distance is printed with three decimals", func(t *testing.T) {
		m := guidance.NewManeuver(guidance.SLIGHT_LEFT, "Hearst Ave", 0.1)
		assert.Equal(t, "Slight left on Hearst Ave and continue for 0.100 miles.", m.String())
	})

	t.Run("invalid text is a parse failure", func(t *testing.T) {
		bad := []string{
			"",
			"Turn around on Main St and continue for 1.000 miles.",
			"turn left on Main St and continue for 1.000 miles.",
			"Turn left on Main St and continue for 1.2.3 miles.",
			"Turn left on Main St and continue for abc miles.",
			"Turn left on Main St and continue for  miles.",
			"Turn left on Main St and continue for 1.000 miles",
			"Turn left on Peet's Way and continue for 1.000 miles.",
			"Turn left Main St and continue for 1.000 miles.",
		}
		for _, s := range bad {
			m, err := guidance.ParseManeuver(s)
			assert.ErrorIs(t, err, guidance.ErrInvalidManeuver, s)
			assert.Equal(t, guidance.Maneuver{}, m)
		}
	})

	t.Run("json", func(t *testing.T) {
		bb, err := json.Marshal(guidance.NewManeuver(guidance.RIGHT, "Oxford St", 0.25))
		require.NoError(t, err)
		assert.JSONEq(t, `{"direction":5,"direction_text":"Turn right","way":"Oxford St","distance":0.25}`, string(bb))
	})

	t.Run("turn descriptions", func(t *testing.T) {
		descs := guidance.GetTurnDescriptions([]guidance.Maneuver{
			guidance.NewManeuver(guidance.START, "Oxford St", 0.25),
			guidance.NewManeuver(guidance.SHARP_LEFT, "Hearst Ave", 1),
		})
		assert.Equal(t, []string{
			"Start on Oxford St and continue for 0.250 miles.",
			"Sharp left on Hearst Ave and continue for 1.000 miles.",
		}, descs)
	})
}
