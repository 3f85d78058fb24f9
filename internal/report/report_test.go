package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
	"github.com/veridata-labs/airlens-cli/internal/report"
)

func sampleResult() *pipeline.ProcessedResult {
	return &pipeline.ProcessedResult{
		PollutionZones: []pipeline.PollutionZone{
			{Center: pipeline.Coordinate{Lat: 40.63, Lng: 22.95}, Radius: 300, Value: 80, PointCount: 5},
		},
		Routes: pipeline.GeneratedRoutes{
			Standard: []pipeline.RoutePoint{{Lat: 40.63, Lng: 22.95}, {Lat: 40.64, Lng: 22.96}, {Lat: 40.65, Lng: 22.97}},
			Clean:    []pipeline.RoutePoint{{Lat: 40.63, Lng: 22.95}, {Lat: 40.65, Lng: 22.97}},
		},
		Summary: pipeline.Summary{TotalPoints: 10, ZoneCount: 1, AvgPollution: 50, MaxPollution: 80, MinPollution: 20},
		Trends: []pipeline.Trend{
			{Period: "daily", AverageValue: 50, ChangePercent: 12.5},
		},
		Correlations: []pipeline.Correlation{
			{Factor: "temperature", Strength: 0.82, Description: "temperature shows a strong positive correlation with pollution levels"},
		},
		MLInsights: []pipeline.MLInsight{
			{Type: pipeline.InsightHotspot, Description: "Identified 1 pollution hotspots with readings well above the dataset average", Confidence: 0.85, Relevance: 0.9},
		},
		Predictions: pipeline.Prediction{NextDayPrediction: 52.5, NextWeekTrend: pipeline.TrendIncreasing, Confidence: 0.9},
		DroppedRows: 2,
	}
}

func TestMarkdownSections(t *testing.T) {
	md := report.Markdown("readings.csv", sampleResult())
	for _, want := range []string{
		"[PROCESSING SUMMARY]",
		"File: readings.csv",
		"Points: 10 (dropped 2 rows)",
		"[POLLUTION ZONES]",
		"[TRENDS]",
		"- daily: avg 50, change +12.5%",
		"[CORRELATIONS]",
		"- temperature: r=0.820",
		"[INSIGHTS]",
		"[FORECAST]",
		"Next week: increasing (confidence 0.90)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	res := &pipeline.ProcessedResult{
		Predictions: pipeline.Prediction{NextWeekTrend: pipeline.TrendStable},
	}
	md := report.Markdown("", res)
	for _, absent := range []string{"[POLLUTION ZONES]", "[TRENDS]", "[CORRELATIONS]", "[INSIGHTS]", "File:"} {
		if strings.Contains(md, absent) {
			t.Fatalf("markdown should omit %q for empty result:\n%s", absent, md)
		}
	}
	if !strings.Contains(md, "Points: 0") {
		t.Fatalf("markdown missing point count:\n%s", md)
	}
}

func TestGeoJSONFeatures(t *testing.T) {
	data, err := report.GeoJSON(sampleResult())
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "FeatureCollection" {
		t.Fatalf("type = %q", doc.Type)
	}
	if len(doc.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(doc.Features))
	}
	zone := doc.Features[0]
	if zone.Geometry.Type != "Point" || zone.Properties["kind"] != "pollution_zone" {
		t.Fatalf("zone feature = %+v", zone)
	}
	var coords []float64
	if err := json.Unmarshal(zone.Geometry.Coordinates, &coords); err != nil {
		t.Fatalf("coords: %v", err)
	}
	// GeoJSON positions are lng, lat.
	if coords[0] != 22.95 || coords[1] != 40.63 {
		t.Fatalf("zone coords = %v", coords)
	}
	routes := map[string]string{}
	for _, f := range doc.Features[1:] {
		if f.Geometry.Type != "LineString" {
			t.Fatalf("route geometry = %q", f.Geometry.Type)
		}
		routes[f.Properties["route"].(string)] = f.Geometry.Type
	}
	if len(routes) != 2 {
		t.Fatalf("routes = %v, want standard and clean", routes)
	}
}

func TestGeoJSONEmptyResult(t *testing.T) {
	data, err := report.GeoJSON(&pipeline.ProcessedResult{})
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	var doc struct {
		Features []any `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Features) != 0 {
		t.Fatalf("features = %v, want none", doc.Features)
	}
}
