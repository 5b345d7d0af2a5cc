package datastructure

type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}
