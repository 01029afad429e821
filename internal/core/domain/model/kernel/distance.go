package kernel

import "math"

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the haversine formula on a sphere of radius EarthRadiusKm.
//
// It is the only distance implementation in the module: dispatch, the
// nearest-agents query and any reporting must call it rather than re-deriving
// the formula.
//
// Properties:
//   - Distance(a, a) == 0
//   - Distance(a, b) == Distance(b, a)
//   - Distance(a, c) <= Distance(a, b) + Distance(b, c) within float tolerance
//
// Example:
//
//	dhaka := kernel.MustNewLocation(23.7925, 90.4078)
//	ctg := kernel.MustNewLocation(22.3595, 91.8212)
//	km := kernel.Distance(dhaka, ctg) // ~216
func Distance(a, b Location) float64 {
	lat1 := toRadians(a.lat)
	lat2 := toRadians(b.lat)
	dLat := lat2 - lat1
	dLng := toRadians(b.lng - a.lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	// cos(lat1)*cos(lat2) is commutative, and sin^2 is even, so swapping a and b
	// yields a bit-identical h.
	h := sinLat*sinLat + sinLng*sinLng*(math.Cos(lat1)*math.Cos(lat2))
	// Rounding can push h past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
