package guidance

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lintang/bearmaps/pkg/datastructure"
)

type Direction int

const (
	START Direction = iota
	STRAIGHT
	SLIGHT_LEFT
	SLIGHT_RIGHT
	LEFT
	RIGHT
	SHARP_LEFT
	SHARP_RIGHT

	numDirections
)

var directionPhrases = [numDirections]string{
	START:        "Start",
	STRAIGHT:     "Go straight",
	SLIGHT_LEFT:  "Slight left",
	SLIGHT_RIGHT: "Slight right",
	LEFT:         "Turn left",
	RIGHT:        "Turn right",
	SHARP_LEFT:   "Sharp left",
	SHARP_RIGHT:  "Sharp right",
}

var ErrInvalidManeuver = errors.New("invalid maneuver text")

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionPhrases[d]
}

func directionFromPhrase(phrase string) (Direction, bool) {
	for d, p := range directionPhrases {
		if p == phrase {
			return Direction(d), true
		}
	}
	return 0, false
}

// Maneuver 1 instruksi turn-by-turn: arah belok, nama jalan, jarak (miles) di jalan itu.
type Maneuver struct {
	Direction Direction
	Way       string
	Distance  float64
}

func NewManeuver(direction Direction, way string, distance float64) Maneuver {
	return Maneuver{
		Direction: direction,
		Way:       way,
		Distance:  distance,
	}
}

// String format kanonik, contoh: "Turn left on Hearst Ave and continue for 0.123 miles."
func (m Maneuver) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", m.Direction, m.Way, m.Distance)
}

func (m Maneuver) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Direction     int     `json:"direction"`
		DirectionText string  `json:"direction_text"`
		Way           string  `json:"way"`
		Distance      float64 `json:"distance"`
	}{
		Direction:     int(m.Direction),
		DirectionText: m.Direction.String(),
		Way:           m.Way,
		Distance:      m.Distance,
	})
}

const (
	wayPrefix      = " on "
	distancePrefix = " and continue for "
	sentenceSuffix = " miles."
)

/*
ParseManeuver. kebalikan dari Maneuver.String(). grammar:

	maneuver = phrase " on " way " and continue for " distance " miles."
	phrase   = salah satu dari directionPhrases
	way      = (letter | digit | "_" | whitespace)*
	distance = (digit | ".")+

teks yang tidak sesuai grammar return ErrInvalidManeuver, tidak pernah maneuver setengah jadi.
*/
func ParseManeuver(s string) (Maneuver, error) {
	var (
		direction Direction
		rest      string
		ok        bool
	)
	for d, phrase := range directionPhrases {
		if strings.HasPrefix(s, phrase+wayPrefix) {
			direction = Direction(d)
			rest = s[len(phrase)+len(wayPrefix):]
			ok = true
			break
		}
	}
	if !ok {
		return Maneuver{}, fmt.Errorf("%w: unknown direction in %q", ErrInvalidManeuver, s)
	}

	if !strings.HasSuffix(rest, sentenceSuffix) {
		return Maneuver{}, fmt.Errorf("%w: missing %q", ErrInvalidManeuver, sentenceSuffix)
	}
	rest = strings.TrimSuffix(rest, sentenceSuffix)

	idx := strings.LastIndex(rest, distancePrefix)
	if idx < 0 {
		return Maneuver{}, fmt.Errorf("%w: missing %q", ErrInvalidManeuver, distancePrefix)
	}
	way, distText := rest[:idx], rest[idx+len(distancePrefix):]

	if !isWayName(way) {
		return Maneuver{}, fmt.Errorf("%w: bad road name %q", ErrInvalidManeuver, way)
	}
	if !isDecimal(distText) {
		return Maneuver{}, fmt.Errorf("%w: bad distance %q", ErrInvalidManeuver, distText)
	}
	distance, err := strconv.ParseFloat(distText, 64)
	if err != nil {
		return Maneuver{}, fmt.Errorf("%w: bad distance %q", ErrInvalidManeuver, distText)
	}

	return NewManeuver(direction, way, distance), nil
}

func isWayName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		case c == ' ', c == '\t', c == '\n', c == '\r', c == '\f', c == '\v':
		default:
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			return false
		}
	}
	return true
}

// roundDistance bulatkan ke 3 angka di belakang koma, sama persis dengan hasil String() lalu ParseManeuver.
func roundDistance(d float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(d, 'f', 3, 64), 64)
	return r
}

func GetTurnDescriptions(maneuvers []Maneuver) []string {
	descs := make([]string, 0, len(maneuvers))
	for _, m := range maneuvers {
		descs = append(descs, m.String())
	}
	return descs
}

// TotalDistance jumlah jarak semua maneuver (miles).
func TotalDistance(maneuvers []Maneuver) float64 {
	total := 0.0
	for _, m := range maneuvers {
		total += m.Distance
	}
	return total
}

func wayName(e *datastructure.Edge) string {
	if isEmpty(e.Name) {
		return datastructure.UnknownRoad
	}
	return e.Name
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
