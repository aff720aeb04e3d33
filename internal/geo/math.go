package geo

import "math"

// MaxLat is the latitude limit of the Web Mercator projection.
const MaxLat = 85.05112878

// ClampLat limits a latitude to the Web Mercator range.
func ClampLat(lat float64) float64 {
	if lat > MaxLat {
		return MaxLat
	} else if lat < -MaxLat {
		return -MaxLat
	}
	return lat
}

// LatToMercatorY projects a latitude to a Mercator Y in [-PI..PI].
func LatToMercatorY(lat float64) float64 {
	latRad := ClampLat(lat) * (math.Pi / 180.0)
	return math.Log(math.Tan(math.Pi*0.25 + latRad*0.5))
}

// MercatorYToLat is the inverse of LatToMercatorY.
func MercatorYToLat(y float64) float64 {
	latRad := (2.0 * math.Atan(math.Exp(y))) - (math.Pi * 0.5)
	return ClampLat(latRad * (180.0 / math.Pi))
}
