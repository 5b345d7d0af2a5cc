package geo

import (
	"math"
)

// EarthRadiusMiles radius bumi dalam miles. semua jarak di graph & directions pakai miles.
const EarthRadiusMiles = 3963.0

func DegToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func RadToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

/*
Distance. great-circle distance (miles) antara (lon1,lat1) dan (lon2,lat2) pakai haversine.

	a = sin²(Δφ/2) + cos φ1 ⋅ cos φ2 ⋅ sin²(Δλ/2)
	c = 2 ⋅ atan2( √a, √(1−a) )
	d = R ⋅ c

φ is latitude, λ is longitude
https://www.movable-type.co.uk/scripts/latlong.html
*/
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := DegToRad(lat1)
	phi2 := DegToRad(lat2)
	dPhi := DegToRad(lat2 - lat1)
	dLambda := DegToRad(lon2 - lon1)

	a := math.Sin(dPhi/2.0) * math.Sin(dPhi/2.0)
	a += math.Cos(phi1) * math.Cos(phi2) * math.Sin(dLambda/2.0) * math.Sin(dLambda/2.0)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

/*
Bearing. initial bearing (derajat) dari (lon1,lat1) ke (lon2,lat2). hasilnya tidak dinormalisasi ke [0,360),
range nya (-180, 180].

	θ = atan2( sin Δλ ⋅ cos φ2 , cos φ1 ⋅ sin φ2 − sin φ1 ⋅ cos φ2 ⋅ cos Δλ )

https://www.movable-type.co.uk/scripts/latlong.html
*/
func Bearing(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := DegToRad(lat1)
	phi2 := DegToRad(lat2)
	dLambda := DegToRad(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	return RadToDeg(math.Atan2(y, x))
}

//	φ is latitude, λ is longitude
//
// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(lon1, lat1, lon2, lat2 float64) (float64, float64) {
	p1LatRad := DegToRad(lat1)
	p2LatRad := DegToRad(lat2)

	diffLon := DegToRad(lon2 - lon1)

	bx := math.Cos(p2LatRad) * math.Cos(diffLon)
	by := math.Cos(p2LatRad) * math.Sin(diffLon)

	newLon := DegToRad(lon1) + math.Atan2(by, math.Cos(p1LatRad)+bx)
	newLat := math.Atan2(math.Sin(p1LatRad)+math.Sin(p2LatRad), math.Sqrt((math.Cos(p1LatRad)+bx)*(math.Cos(p1LatRad)+bx)+by*by))

	return RadToDeg(newLon), RadToDeg(newLat)
}
