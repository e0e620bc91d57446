package trip

import (
	"math"
)

// earthRadiusKm is Earth's mean radius in kilometers
const earthRadiusKm = 6371

// HaversineKm calculates the great-circle distance between two points
// on Earth, in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// RouteDistanceKm calculates the total distance along a sequence of
// (lat, lon) waypoints, in kilometers.
func RouteDistanceKm(waypoints [][2]float64) float64 {
	if len(waypoints) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		total += HaversineKm(
			waypoints[i][0], waypoints[i][1],
			waypoints[i+1][0], waypoints[i+1][1],
		)
	}
	return total
}
