package guidance

import "math"

/*
ClassifyTurn. bucket sudut (derajat) ke arah belok:

	|angle| <= 15          STRAIGHT
	15 < angle <= 30       SLIGHT_RIGHT
	-30 <= angle < -15     SLIGHT_LEFT
	30 < angle <= 100      RIGHT
	-100 <= angle < -30    LEFT
	angle > 100            SHARP_RIGHT
	angle < -100           SHARP_LEFT

bucket nya contiguous, tidak ada gap/overlap di batas. NaN dianggap STRAIGHT.
*/
func ClassifyTurn(angle float64) Direction {
	switch {
	case math.Abs(angle) <= 15:
		return STRAIGHT
	case angle > 15 && angle <= 30:
		return SLIGHT_RIGHT
	case angle < -15 && angle >= -30:
		return SLIGHT_LEFT
	case angle > 30 && angle <= 100:
		return RIGHT
	case angle < -30 && angle >= -100:
		return LEFT
	case angle > 100:
		return SHARP_RIGHT
	case angle < -100:
		return SHARP_LEFT
	default:
		return STRAIGHT
	}
}

/*
turnAngle. sinyal belok di junction vertex = bearing(prev->junction) + bearing(junction->next).

prevNode----incoming----junction
							|
						outgoing
							|
						nextNode

TODO: konfirmasi ke product apakah seharusnya selisih bearing (outgoing - incoming); saat ini dijumlah
supaya hasil directions sama dengan versi sebelumnya.
*/
func turnAngle(incomingBearing, outgoingBearing float64) float64 {
	return incomingBearing + outgoingBearing
}
