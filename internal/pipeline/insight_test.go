package pipeline

import (
	"testing"
	"time"
)

func insightTypes(insights []MLInsight) []string {
	types := make([]string, len(insights))
	for i, in := range insights {
		types[i] = in.Type
	}
	return types
}

func hasInsight(insights []MLInsight, typ string) bool {
	for _, in := range insights {
		if in.Type == typ {
			return true
		}
	}
	return false
}

func TestGenerateInsightsEmpty(t *testing.T) {
	if insights := GenerateInsights(nil, nil); len(insights) != 0 {
		t.Fatalf("insights = %+v, want none", insights)
	}
}

func TestGenerateInsightsHotspot(t *testing.T) {
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	points := []Point{
		pointAt(day, 80), pointAt(day, 80),
		pointAt(day, 20), pointAt(day, 20),
	}
	// avg 50; the 80-value zone exceeds 1.5x.
	zones := []PollutionZone{
		{Center: Coordinate{Lat: 40.63, Lng: 22.95}, Value: 80, PointCount: 3},
		{Center: Coordinate{Lat: 40.65, Lng: 22.97}, Value: 20, PointCount: 3},
	}
	insights := GenerateInsights(points, zones)
	if !hasInsight(insights, InsightHotspot) {
		t.Fatalf("insights = %v, want hotspot", insightTypes(insights))
	}
	for _, in := range insights {
		if in.Type == InsightHotspot {
			if in.Confidence != 0.85 || in.Relevance != 0.9 {
				t.Fatalf("hotspot scores = %f/%f", in.Confidence, in.Relevance)
			}
		}
	}
	if hasInsight(insights, InsightSeasonal) {
		t.Fatalf("single-month data emitted seasonal pattern")
	}
}

func TestGenerateInsightsSeasonal(t *testing.T) {
	points := []Point{
		pointAt(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 10),
		pointAt(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 10),
	}
	insights := GenerateInsights(points, nil)
	if !hasInsight(insights, InsightSeasonal) {
		t.Fatalf("insights = %v, want seasonal", insightTypes(insights))
	}
}

func TestGenerateInsightsAnomaly(t *testing.T) {
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	points := make([]Point, 0, 10)
	for i := 0; i < 9; i++ {
		points = append(points, pointAt(day, 10))
	}
	points = append(points, pointAt(day, 100))
	// mean 19, sigma 27: the outlier deviates by 81 > 54.
	insights := GenerateInsights(points, nil)
	if !hasInsight(insights, InsightAnomaly) {
		t.Fatalf("insights = %v, want anomaly", insightTypes(insights))
	}
}

func TestGenerateInsightsNoAnomalyOnUniformData(t *testing.T) {
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	points := []Point{pointAt(day, 10), pointAt(day, 10), pointAt(day, 10)}
	if insights := GenerateInsights(points, nil); hasInsight(insights, InsightAnomaly) {
		t.Fatalf("uniform data emitted anomaly")
	}
}

func TestGenerateInsightsDailyPattern(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for h := 0; h < 6; h++ {
		v := 10.0
		if h == 5 {
			v = 13 // 30% swing over the hourly minimum
		}
		points = append(points, pointAt(day.Add(time.Duration(h)*time.Hour), v))
	}
	insights := GenerateInsights(points, nil)
	if !hasInsight(insights, InsightDaily) {
		t.Fatalf("insights = %v, want daily pattern", insightTypes(insights))
	}
}

func TestGenerateInsightsDailyPatternNeedsHours(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for h := 0; h < 5; h++ {
		points = append(points, pointAt(day.Add(time.Duration(h)*time.Hour), float64(10+h)))
	}
	if insights := GenerateInsights(points, nil); hasInsight(insights, InsightDaily) {
		t.Fatalf("daily pattern emitted with only 5 distinct hours")
	}
}

func TestGenerateInsightsEmissionOrder(t *testing.T) {
	// Construct data triggering all four heuristics at once.
	var points []Point
	for h := 0; h < 6; h++ {
		v := 10.0
		if h == 5 {
			v = 13
		}
		points = append(points, pointAt(time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC), v))
	}
	points = append(points, pointAt(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), 10))
	zones := []PollutionZone{{Value: 100, PointCount: 3}}

	insights := GenerateInsights(points, zones)
	got := insightTypes(insights)
	want := []string{InsightHotspot, InsightSeasonal, InsightAnomaly, InsightDaily}
	if len(got) != len(want) {
		t.Fatalf("insights = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insights = %v, want %v", got, want)
		}
	}
}
