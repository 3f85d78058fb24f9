package pipeline

import (
	"math"
	"sort"
)

const (
	// routeSteps is the number of intermediate waypoints on the clean route.
	routeSteps = 8
	// routeVariations is the number of candidate offsets tried per step.
	routeVariations = 5
	// offsetRadius is the candidate ring radius, in degrees.
	offsetRadius = 0.005
	// zoneInfluence is the distance under which a zone penalizes a candidate.
	zoneInfluence = 0.01
	// topZoneCount caps the zones reported alongside the routes.
	topZoneCount = 10
)

// SynthesizeRoutes builds a direct 3-point route and a pollution-avoiding
// route between the dataset bounding-box corners. With no points, both routes
// are empty. The candidate offsets are fixed angles, so the output is fully
// deterministic.
func SynthesizeRoutes(points []Point, zones []PollutionZone) GeneratedRoutes {
	if len(points) == 0 {
		return GeneratedRoutes{
			Standard:       []RoutePoint{},
			Clean:          []RoutePoint{},
			PollutionZones: []PollutionZone{},
		}
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}
	start := RoutePoint{Lat: minLat, Lng: minLng}
	end := RoutePoint{Lat: maxLat, Lng: maxLng}

	standard := []RoutePoint{
		start,
		{Lat: (start.Lat + end.Lat) / 2, Lng: (start.Lng + end.Lng) / 2},
		end,
	}

	// Highest-value zones first; scoring uses all of them, only the report
	// field is trimmed to the top ten.
	sorted := make([]PollutionZone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	clean := make([]RoutePoint, 0, routeSteps+2)
	clean = append(clean, start)
	for i := 1; i <= routeSteps; i++ {
		frac := float64(i) / routeSteps
		target := RoutePoint{
			Lat: start.Lat + (end.Lat-start.Lat)*frac,
			Lng: start.Lng + (end.Lng-start.Lng)*frac,
		}
		best := RoutePoint{}
		bestScore := math.Inf(1)
		for v := 0; v < routeVariations; v++ {
			angle := 2 * math.Pi * float64(v) / routeVariations
			cand := RoutePoint{
				Lat: target.Lat + offsetRadius*math.Cos(angle),
				Lng: target.Lng + offsetRadius*math.Sin(angle),
			}
			score := scoreCandidate(cand, end, sorted)
			if score < bestScore {
				bestScore = score
				best = cand
			}
		}
		clean = append(clean, best)
	}
	clean = append(clean, end)

	top := sorted
	if len(top) > topZoneCount {
		top = top[:topZoneCount]
	}
	return GeneratedRoutes{Standard: standard, Clean: clean, PollutionZones: top}
}

// scoreCandidate trades progress toward the destination against proximity to
// high-value zones. Lower is better.
func scoreCandidate(cand, end RoutePoint, zones []PollutionZone) float64 {
	score := 10 * planarDistance(cand.Lat, cand.Lng, end.Lat, end.Lng)
	for _, z := range zones {
		d := planarDistance(cand.Lat, cand.Lng, z.Center.Lat, z.Center.Lng)
		if d >= zoneInfluence {
			continue
		}
		if d < 1e-9 {
			d = 1e-9
		}
		score += z.Value / d * 5
	}
	return score
}

func planarDistance(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lat1-lat2, lng1-lng2)
}
