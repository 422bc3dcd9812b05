// Package geo computes great-circle distances over captured GPS fixes.
package geo

import (
	"math"

	"fittrack/internal/activity"
)

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371000

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees, using the haversine formula. It is
// symmetric and returns 0 for identical points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// RouteDistance returns the cumulative distance in meters along a route,
// summing Distance over consecutive fix pairs. Routes with fewer than two
// fixes have distance 0.
func RouteDistance(route activity.Route) float64 {
	if len(route) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(route); i++ {
		total += Distance(
			route[i-1].Latitude, route[i-1].Longitude,
			route[i].Latitude, route[i].Longitude,
		)
	}
	return total
}
