package pipeline

import (
	"math"
	"time"
)

const (
	// clusterEpsilon is the neighborhood half-width in degrees, roughly 300 m.
	clusterEpsilon = 0.003
	// clusterMinPoints is the minimum neighborhood size that forms a zone.
	clusterMinPoints = 3
	// metersPerDegree approximates one degree of latitude.
	metersPerDegree = 111000.0
	// minZoneRadius floors the reported zone radius, in meters.
	minZoneRadius = 300.0
)

// ClusterZones groups nearby points into pollution zones. The pass is
// DBSCAN-inspired but single-shot: each unvisited point's degree-box
// neighborhood is gathered from ALL points (not just unvisited ones), so
// overlapping neighborhoods may claim the same point into more than one zone.
// The output is deterministic for a fixed input order. O(n²) in the point
// count.
func ClusterZones(points []Point, now time.Time) []PollutionZone {
	zones := []PollutionZone{}
	visited := make([]bool, len(points))

	for i := range points {
		if visited[i] {
			continue
		}
		neighborhood := boxNeighborhood(points, points[i])
		if len(neighborhood) < clusterMinPoints {
			visited[i] = true
			continue
		}

		var latSum, lngSum float64
		for _, idx := range neighborhood {
			latSum += points[idx].Lat
			lngSum += points[idx].Lng
			visited[idx] = true
		}
		center := Coordinate{
			Lat: latSum / float64(len(neighborhood)),
			Lng: lngSum / float64(len(neighborhood)),
		}

		var weightedSum, weightSum, maxDist float64
		for _, idx := range neighborhood {
			p := points[idx]
			w := recencyWeight(p.Timestamp, now)
			weightedSum += p.Value * w
			weightSum += w
			d := math.Hypot(p.Lat-center.Lat, p.Lng-center.Lng)
			if d > maxDist {
				maxDist = d
			}
		}

		zones = append(zones, PollutionZone{
			Center:     center,
			Radius:     math.Max(minZoneRadius, maxDist*metersPerDegree),
			Value:      weightedSum / weightSum,
			PointCount: len(neighborhood),
		})
	}
	return zones
}

// boxNeighborhood returns indices of all points within clusterEpsilon of p in
// both latitude and longitude. A degree box, not a radius: the pipeline's
// documented planar approximation.
func boxNeighborhood(points []Point, p Point) []int {
	var idxs []int
	for i, other := range points {
		if math.Abs(other.Lat-p.Lat) < clusterEpsilon &&
			math.Abs(other.Lng-p.Lng) < clusterEpsilon {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// recencyWeight discounts older readings linearly down to a 0.5 floor over 30
// days. Unparseable timestamps weigh as fresh.
func recencyWeight(ts string, now time.Time) float64 {
	t, ok := parseTimestamp(ts)
	if !ok {
		return 1
	}
	ageDays := now.Sub(t).Hours() / 24
	return math.Max(0.5, 1-ageDays/30)
}
