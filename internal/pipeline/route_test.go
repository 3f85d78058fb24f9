package pipeline

import (
	"math"
	"reflect"
	"testing"
)

func TestSynthesizeRoutesEmpty(t *testing.T) {
	routes := SynthesizeRoutes(nil, nil)
	if len(routes.Standard) != 0 || len(routes.Clean) != 0 || len(routes.PollutionZones) != 0 {
		t.Fatalf("routes = %+v, want all empty", routes)
	}
}

func TestSynthesizeRoutesLengthsAndEndpoints(t *testing.T) {
	points := []Point{
		{Lat: 40.63, Lng: 22.95, Value: 10},
		{Lat: 40.65, Lng: 22.97, Value: 20},
		{Lat: 40.64, Lng: 22.96, Value: 15},
	}
	routes := SynthesizeRoutes(points, nil)

	if len(routes.Standard) != 3 {
		t.Fatalf("standard length = %d, want 3", len(routes.Standard))
	}
	if len(routes.Clean) != routeSteps+2 {
		t.Fatalf("clean length = %d, want %d", len(routes.Clean), routeSteps+2)
	}

	start := RoutePoint{Lat: 40.63, Lng: 22.95}
	end := RoutePoint{Lat: 40.65, Lng: 22.97}
	if routes.Standard[0] != start || routes.Standard[2] != end {
		t.Fatalf("standard endpoints = %+v .. %+v", routes.Standard[0], routes.Standard[2])
	}
	if routes.Clean[0] != start || routes.Clean[len(routes.Clean)-1] != end {
		t.Fatalf("clean endpoints = %+v .. %+v", routes.Clean[0], routes.Clean[len(routes.Clean)-1])
	}

	mid := routes.Standard[1]
	if !almostEqual(mid.Lat, 40.64, 1e-9) || !almostEqual(mid.Lng, 22.96, 1e-9) {
		t.Fatalf("standard midpoint = %+v", mid)
	}
}

func TestSynthesizeRoutesDeterministic(t *testing.T) {
	points := []Point{
		{Lat: 40.63, Lng: 22.95, Value: 80},
		{Lat: 40.65, Lng: 22.97, Value: 20},
	}
	zones := []PollutionZone{
		{Center: Coordinate{Lat: 40.64, Lng: 22.96}, Radius: 300, Value: 90, PointCount: 3},
	}
	first := SynthesizeRoutes(points, zones)
	second := SynthesizeRoutes(points, zones)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("routes not deterministic")
	}
}

func TestSynthesizeRoutesSteersAwayFromHighValueZone(t *testing.T) {
	points := []Point{
		{Lat: 40.63, Lng: 22.95, Value: 80},
		{Lat: 40.65, Lng: 22.97, Value: 20},
	}
	// One hot zone sitting right on the direct line.
	hot := Coordinate{Lat: 40.64, Lng: 22.96}
	zones := []PollutionZone{
		{Center: hot, Radius: 300, Value: 90, PointCount: 5},
	}
	routes := SynthesizeRoutes(points, zones)

	start := routes.Clean[0]
	end := routes.Clean[len(routes.Clean)-1]
	for i := 1; i <= routeSteps; i++ {
		frac := float64(i) / routeSteps
		direct := RoutePoint{
			Lat: start.Lat + (end.Lat-start.Lat)*frac,
			Lng: start.Lng + (end.Lng-start.Lng)*frac,
		}
		dDirect := planarDistance(direct.Lat, direct.Lng, hot.Lat, hot.Lng)
		if dDirect >= zoneInfluence {
			continue
		}
		chosen := routes.Clean[i]
		dChosen := planarDistance(chosen.Lat, chosen.Lng, hot.Lat, hot.Lng)
		if dChosen <= dDirect {
			t.Fatalf("step %d: chosen waypoint distance %f not beyond direct %f", i, dChosen, dDirect)
		}
	}
}

func TestSynthesizeRoutesTopZonesTrimmedAndSorted(t *testing.T) {
	points := []Point{{Lat: 0, Lng: 0, Value: 1}, {Lat: 1, Lng: 1, Value: 2}}
	zones := make([]PollutionZone, 0, 12)
	for i := 0; i < 12; i++ {
		zones = append(zones, PollutionZone{
			Center:     Coordinate{Lat: 5, Lng: 5}, // far from the route
			Radius:     300,
			Value:      float64(i),
			PointCount: 3,
		})
	}
	routes := SynthesizeRoutes(points, zones)
	if len(routes.PollutionZones) != topZoneCount {
		t.Fatalf("reported zones = %d, want %d", len(routes.PollutionZones), topZoneCount)
	}
	for i := 1; i < len(routes.PollutionZones); i++ {
		if routes.PollutionZones[i].Value > routes.PollutionZones[i-1].Value {
			t.Fatalf("zones not sorted descending at %d", i)
		}
	}
	if routes.PollutionZones[0].Value != 11 {
		t.Fatalf("top zone value = %f, want 11", routes.PollutionZones[0].Value)
	}
}

func TestScoreCandidateZoneGate(t *testing.T) {
	end := RoutePoint{Lat: 1, Lng: 1}
	zone := PollutionZone{Center: Coordinate{Lat: 0.5, Lng: 0.5}, Value: 100}

	far := RoutePoint{Lat: 0.4, Lng: 0.4} // ~0.14° from the zone, no penalty
	near := RoutePoint{Lat: 0.5, Lng: 0.505}

	farScore := scoreCandidate(far, end, []PollutionZone{zone})
	wantFar := 10 * math.Hypot(0.6, 0.6)
	if !almostEqual(farScore, wantFar, 1e-9) {
		t.Fatalf("far score = %f, want %f", farScore, wantFar)
	}

	nearScore := scoreCandidate(near, end, []PollutionZone{zone})
	wantNear := 10*math.Hypot(0.5, 0.495) + 100/0.005*5
	if !almostEqual(nearScore, wantNear, 1e-6) {
		t.Fatalf("near score = %f, want %f", nearScore, wantNear)
	}
}
