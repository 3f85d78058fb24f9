package pipeline

import (
	"time"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

// Processor orchestrates the full pipeline. The zero value is not usable;
// call NewProcessor. Now is injectable so recency weighting and timestamp
// defaults are reproducible in tests.
type Processor struct {
	Now func() time.Time
}

func NewProcessor() *Processor {
	return &Processor{Now: time.Now}
}

// Process runs the whole pipeline over parsed records and returns one
// immutable result. It never fails on data quality: an empty or garbage input
// yields a well-formed result with empty collections and zeroed summary.
func (pr *Processor) Process(records dataset.RecordSet) *ProcessedResult {
	now := pr.Now()
	points, dropped := ExtractPoints(records, now)
	zones := ClusterZones(points, now)

	result := &ProcessedResult{
		PollutionZones: zones,
		Routes:         SynthesizeRoutes(points, zones),
		Summary:        summarize(points, zones),
		Trends:         AnalyzeTrends(points),
		Correlations:   FindCorrelations(records),
		MLInsights:     GenerateInsights(points, zones),
		Predictions:    Forecast(points),
		DroppedRows:    dropped,
	}
	return result
}

func summarize(points []Point, zones []PollutionZone) Summary {
	s := Summary{TotalPoints: len(points), ZoneCount: len(zones)}
	if len(points) == 0 {
		return s
	}
	s.MinPollution = points[0].Value
	s.MaxPollution = points[0].Value
	var sum float64
	for _, p := range points {
		sum += p.Value
		if p.Value < s.MinPollution {
			s.MinPollution = p.Value
		}
		if p.Value > s.MaxPollution {
			s.MaxPollution = p.Value
		}
	}
	s.AvgPollution = sum / float64(len(points))
	return s
}
