package guidance

import (
	"errors"
	"fmt"

	"lintang/bearmaps/pkg/datastructure"
)

var ErrEmptyRoute = errors.New("route is empty")

type Graph interface {
	EdgeBetween(v, w int64) (*datastructure.Edge, error)
	Distance(v, w int64) (float64, error)
	Bearing(v, w int64) (float64, error)
}

/*
InstructionsFromPath. ubah urutan vertex hasil shortest path jadi list maneuver. Segmen berurutan dengan nama
jalan yang sama digabung jadi 1 maneuver; setiap ganti nama jalan, maneuver sebelumnya ditutup & arah belok
maneuver baru dihitung dari bearing segmen masuk & keluar di junction.
*/
type InstructionsFromPath struct {
	Graph      Graph
	Ways       []Maneuver
	current    Maneuver // maneuver yang sedang diakumulasi
	prevWay    string   // nama jalan segmen sebelumnya, "" sebelum segmen pertama
	distance   float64
	prevVertex int64
}

func NewInstructionsFromPath(g Graph) *InstructionsFromPath {
	ifp := &InstructionsFromPath{Graph: g}
	ifp.reset()
	return ifp
}

// GetDirections maneuver untuk route. maneuver pertama selalu START. state hasil panggilan sebelumnya di reset.
func (ifp *InstructionsFromPath) GetDirections(route []int64) ([]Maneuver, error) {
	ifp.reset()
	if len(route) == 0 {
		return []Maneuver{}, ErrEmptyRoute
	}

	for i := 0; i < len(route)-1; i++ {
		if err := ifp.AddSegment(route[i], route[i+1]); err != nil {
			return []Maneuver{}, err
		}
	}
	ifp.Finish()
	return ifp.Ways, nil
}

func (ifp *InstructionsFromPath) reset() {
	ifp.Ways = make([]Maneuver, 0)
	ifp.current = NewManeuver(START, datastructure.UnknownRoad, 0)
	ifp.prevWay = ""
	ifp.distance = 0
	ifp.prevVertex = 0
}

// AddSegment proses 1 segmen (from,to) dari route. from harus sama dengan to segmen sebelumnya.
func (ifp *InstructionsFromPath) AddSegment(from, to int64) error {
	edge, err := ifp.Graph.EdgeBetween(from, to)
	if err != nil {
		return fmt.Errorf("segment %d-%d: %w", from, to, err)
	}
	dist, err := ifp.Graph.Distance(from, to)
	if err != nil {
		return err
	}

	ifp.current.Way = wayName(edge)
	if ifp.prevWay == "" || ifp.current.Way == ifp.prevWay {
		ifp.distance += dist
	} else {
		// ganti jalan: tutup maneuver sebelumnya
		ifp.Ways = append(ifp.Ways, NewManeuver(ifp.current.Direction, ifp.prevWay, roundDistance(ifp.distance)))
		ifp.distance = dist

		incoming, err := ifp.Graph.Bearing(ifp.prevVertex, from)
		if err != nil {
			return err
		}
		outgoing, err := ifp.Graph.Bearing(from, to)
		if err != nil {
			return err
		}
		ifp.current.Direction = ClassifyTurn(turnAngle(incoming, outgoing))
	}

	ifp.prevWay = ifp.current.Way
	ifp.prevVertex = from
	return nil
}

// Finish tambah maneuver terakhir, walaupun route cuma 1 segmen (atau 1 vertex).
func (ifp *InstructionsFromPath) Finish() {
	ifp.current.Distance = roundDistance(ifp.distance)
	ifp.Ways = append(ifp.Ways, ifp.current)
}

// RouteDirections shortcut NewInstructionsFromPath(g).GetDirections(route).
func RouteDirections(g Graph, route []int64) ([]Maneuver, error) {
	return NewInstructionsFromPath(g).GetDirections(route)
}
